// Package users stores member accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/alumni/internal/server/models"
)

// Repository persists users. Lookups of absent records return
// common.ErrorNotFound; a duplicate email on Create or Seed returns
// common.ErrorAlreadyExists.
type Repository interface {
	// Create assigns the id and creation time and stores the user.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// UpdateStatus sets the status and stamps approvedAt or rejectedAt.
	// Unknown statuses are rejected without touching the record.
	UpdateStatus(ctx context.Context, id string, status models.UserStatus) (*models.User, error)
	GetPending(ctx context.Context) ([]*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	// Seed stores a fully formed user as is. It is a no-op when the email
	// is already registered.
	Seed(ctx context.Context, user *models.User) error
}
