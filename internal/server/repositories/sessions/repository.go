// Package sessions stores login sessions so that logout can revoke a
// session token before it expires.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/alumni/internal/server/models"
)

// Repository persists sessions. Find returns common.ErrorNotFound for
// unknown or expired sessions.
type Repository interface {
	Create(ctx context.Context, session *models.Session) error
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}
