package common

// SessionCookieName is the HTTP-only cookie that carries the session token.
const SessionCookieName = "session_token"

// Record id prefixes.
const (
	UserIDPrefix         = "user"
	IntroductionIDPrefix = "intro"
)

// MinGraduationClass is the first class accepted at registration.
const MinGraduationClass = 1
