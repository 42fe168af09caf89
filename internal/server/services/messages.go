package services

// User-facing messages.
const (
	MsgServerError   = "서버 오류가 발생했습니다."
	MsgLoginRequired = "로그인이 필요합니다."

	MsgRegisterMissingFields = "모든 필드를 입력해주세요."
	MsgRegisterInvalidClass  = "기수는 1기부터 50기까지 입력 가능합니다."
	MsgRegisterDuplicate     = "이미 등록된 이메일입니다."
	MsgRegistered            = "회원가입이 완료되었습니다. 관리자의 승인을 기다려주세요."

	MsgLoginMissingFields = "이메일과 비밀번호를 입력해주세요."
	MsgLoginUnknownEmail  = "등록되지 않은 이메일입니다."
	MsgLoginWrongPassword = "비밀번호가 일치하지 않습니다."
	MsgLoginNotAllowed    = "로그인할 수 없습니다."
	MsgLoginPending       = "아직 관리자의 승인을 기다리고 있습니다."
	MsgLoginRejected      = "회원가입이 거부되었습니다. 관리자에게 문의해주세요."
	MsgLoggedIn           = "로그인되었습니다."
	MsgLoggedOut          = "로그아웃되었습니다."

	MsgAdminRequired = "관리자 권한이 필요합니다."
	MsgUserNotFound  = "사용자를 찾을 수 없습니다."
	MsgUserApproved  = "사용자가 승인되었습니다."
	MsgUserRejected  = "사용자가 거부되었습니다."

	MsgIntroCreateNotApproved = "승인된 회원만 자기소개를 작성할 수 있습니다."
	MsgIntroExists            = "이미 자기소개를 작성하셨습니다. 수정을 원하시면 수정 버튼을 이용해주세요."
	MsgIntroMissingFields     = "필수 정보를 모두 입력해주세요."
	MsgIntroCreated           = "자기소개가 등록되었습니다."
	MsgIntroNotFound          = "자기소개를 찾을 수 없습니다."
	MsgIntroUpdateNotApproved = "승인된 회원만 자기소개를 수정할 수 있습니다."
	MsgIntroUpdateNotOwner    = "본인의 자기소개만 수정할 수 있습니다."
	MsgIntroUpdated           = "자기소개가 수정되었습니다."
	MsgIntroDeleteNotOwner    = "본인의 자기소개만 삭제할 수 있습니다."
	MsgIntroDeleteFailed      = "삭제에 실패했습니다."
	MsgIntroDeleted           = "자기소개가 삭제되었습니다."
	MsgInvalidGraduationClass = "기수는 숫자로 입력해주세요."
)
