// Package services contains server-side business logic. UserService handles
// registration, login sessions and member approval; IntroductionService
// enforces the posting rules for self-introductions.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/alumni/internal/common"
	"github.com/dmitrijs2005/alumni/internal/cryptox"
	"github.com/dmitrijs2005/alumni/internal/server/auth"
	"github.com/dmitrijs2005/alumni/internal/server/config"
	"github.com/dmitrijs2005/alumni/internal/server/models"
	"github.com/dmitrijs2005/alumni/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/alumni/internal/server/repositories/sessions"
)

// AdminID is the fixed id of the seeded administrator account.
const AdminID = "admin-1"

const adminName = "관리자"

// RegisterInput is the registration form.
type RegisterInput struct {
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	Name            string `json:"name" validate:"required"`
	GraduationClass int    `json:"graduationClass" validate:"required,min=1,max=50"`
}

// LoginResult carries the authenticated user and the signed session token.
type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	sessions        sessions.Repository
	jwtSecret       []byte
	sessionValidity time.Duration
	adminEmail      string
	adminPassword   string
	now             func() time.Time
}

// NewUserService constructs a UserService. db may be nil for in-memory storage.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, s sessions.Repository, cfg *config.Config) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		sessions:        s,
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
		adminEmail:      cfg.AdminEmail,
		adminPassword:   cfg.AdminPassword,
		now:             time.Now,
	}
}

// SeedAdmin creates the administrator account unless its email is taken.
func (s *UserService) SeedAdmin(ctx context.Context) error {
	hash, err := cryptox.HashPassword(s.adminPassword)
	if err != nil {
		return err
	}
	now := s.now()
	return s.repomanager.Users(s.db).Seed(ctx, &models.User{
		ID:              AdminID,
		Email:           s.adminEmail,
		PasswordHash:    hash,
		Name:            adminName,
		GraduationClass: common.MinGraduationClass,
		Status:          models.UserStatusApproved,
		CreatedAt:       now,
		ApprovedAt:      &now,
		IsAdmin:         true,
	})
}

// Register creates a pending, non-admin member.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	tags, err := failedTags(in)
	if err != nil {
		return nil, internalError(err)
	}
	if anyTag(tags, "required") {
		return nil, newError(KindValidation, MsgRegisterMissingFields)
	}
	if len(tags) > 0 {
		return nil, newError(KindValidation, MsgRegisterInvalidClass)
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return nil, internalError(err)
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		Email:           in.Email,
		PasswordHash:    hash,
		Name:            in.Name,
		GraduationClass: in.GraduationClass,
		Status:          models.UserStatusPending,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, newError(KindConflict, MsgRegisterDuplicate)
		}
		return nil, internalError(err)
	}
	return u, nil
}

// VerifyCredentials checks the password against the stored hash and that the
// account is approved.
func (s *UserService) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, newError(KindValidation, MsgLoginMissingFields)
	}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, newError(KindUnauthenticated, MsgLoginUnknownEmail)
		}
		return nil, internalError(err)
	}

	ok, err := cryptox.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, internalError(err)
	}
	if !ok {
		return nil, newError(KindUnauthenticated, MsgLoginWrongPassword)
	}

	switch user.Status {
	case models.UserStatusApproved:
		return user, nil
	case models.UserStatusPending:
		return nil, newError(KindForbidden, MsgLoginPending)
	case models.UserStatusRejected:
		return nil, newError(KindForbidden, MsgLoginRejected)
	default:
		return nil, newError(KindForbidden, MsgLoginNotAllowed)
	}
}

// Login verifies credentials and opens a new session.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &models.Session{
		ID:        auth.NewSessionID(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionValidity),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, internalError(err)
	}

	token, err := auth.GenerateToken(session.ID, user.ID, s.jwtSecret, now, session.ExpiresAt)
	if err != nil {
		return nil, internalError(err)
	}

	return &LoginResult{User: user, Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Logout revokes the session. Revoking an unknown session is not an error.
func (s *UserService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return internalError(err)
	}
	return nil
}

// Authenticate resolves a session token to the caller identity. Invalid,
// expired and revoked tokens are all reported as unauthenticated.
func (s *UserService) Authenticate(ctx context.Context, token string) (auth.Identity, error) {
	if token == "" {
		return auth.Identity{}, newError(KindUnauthenticated, MsgLoginRequired)
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return auth.Identity{}, &Error{Kind: KindUnauthenticated, Message: MsgLoginRequired, Err: err}
	}

	session, err := s.sessions.Find(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return auth.Identity{}, &Error{Kind: KindUnauthenticated, Message: MsgLoginRequired, Err: common.ErrSessionRevoked}
		}
		return auth.Identity{}, internalError(err)
	}
	if session.UserID != claims.UserID || session.Expired(s.now()) {
		return auth.Identity{}, &Error{Kind: KindUnauthenticated, Message: MsgLoginRequired, Err: common.ErrInvalidToken}
	}

	return auth.Identity{SessionID: session.ID, UserID: session.UserID}, nil
}

// CurrentUser returns the account behind an authenticated identity.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, newError(KindUnauthenticated, MsgLoginRequired)
	}
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, newError(KindUnauthenticated, MsgLoginRequired)
		}
		return nil, internalError(err)
	}
	return user, nil
}

func (s *UserService) requireAdmin(ctx context.Context, userID string) error {
	if userID == "" {
		return newError(KindUnauthenticated, MsgLoginRequired)
	}
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return newError(KindForbidden, MsgAdminRequired)
		}
		return internalError(err)
	}
	if !user.IsAdmin {
		return newError(KindForbidden, MsgAdminRequired)
	}
	return nil
}

// ListPending returns members awaiting approval. Admin only.
func (s *UserService) ListPending(ctx context.Context, adminID string) ([]*models.User, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	users, err := s.repomanager.Users(s.db).GetPending(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return users, nil
}

// Approve marks the target member approved. Admin only.
func (s *UserService) Approve(ctx context.Context, adminID, userID string) (*models.User, error) {
	return s.setStatus(ctx, adminID, userID, models.UserStatusApproved)
}

// Reject marks the target member rejected. Admin only.
func (s *UserService) Reject(ctx context.Context, adminID, userID string) (*models.User, error) {
	return s.setStatus(ctx, adminID, userID, models.UserStatusRejected)
}

func (s *UserService) setStatus(ctx context.Context, adminID, userID string, status models.UserStatus) (*models.User, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	user, err := s.repomanager.Users(s.db).UpdateStatus(ctx, userID, status)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, newError(KindNotFound, MsgUserNotFound)
		}
		return nil, internalError(err)
	}
	return user, nil
}
