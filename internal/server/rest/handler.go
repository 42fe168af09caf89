package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/alumni/internal/common"
	"github.com/dmitrijs2005/alumni/internal/logging"
	"github.com/dmitrijs2005/alumni/internal/server/auth"
	"github.com/dmitrijs2005/alumni/internal/server/models"
	"github.com/dmitrijs2005/alumni/internal/server/services"
)

// Users is the account service used by the handlers.
type Users interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, token string) (auth.Identity, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
	ListPending(ctx context.Context, adminID string) ([]*models.User, error)
	Approve(ctx context.Context, adminID, userID string) (*models.User, error)
	Reject(ctx context.Context, adminID, userID string) (*models.User, error)
}

// Introductions is the introduction service used by the handlers.
type Introductions interface {
	List(ctx context.Context, q services.ListQuery) ([]*models.Introduction, error)
	Get(ctx context.Context, id string) (*models.Introduction, error)
	CheckCreate(ctx context.Context, userID string) error
	Create(ctx context.Context, userID string, in *models.IntroductionPatch) (*models.Introduction, error)
	CheckUpdate(ctx context.Context, userID, id string) error
	Update(ctx context.Context, userID, id string, in *models.IntroductionPatch) (*models.Introduction, error)
	Delete(ctx context.Context, userID, id string) error
}

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

type Handler struct {
	users  Users
	intros Introductions
	logger logging.Logger
	cookie CookieConfig
}

func NewHandler(u Users, i Introductions, l logging.Logger, c CookieConfig) *Handler {
	return &Handler{users: u, intros: i, logger: l.With("module", "rest"), cookie: c}
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// callerID returns the authenticated user id, or "" for anonymous requests.
func callerID(r *http.Request) string {
	id, _ := auth.IdentityFromContext(r.Context())
	return id.UserID
}
