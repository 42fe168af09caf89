// Package introductions stores member self-introductions. A user owns at
// most one introduction.
package introductions

import (
	"context"

	"github.com/dmitrijs2005/alumni/internal/server/models"
)

type Repository interface {
	// Create assigns id and timestamps. It returns common.ErrorAlreadyExists
	// when the user already has an introduction.
	Create(ctx context.Context, intro *models.Introduction) (*models.Introduction, error)
	GetByUserID(ctx context.Context, userID string) (*models.Introduction, error)
	GetByID(ctx context.Context, id string) (*models.Introduction, error)
	// Update merges the non-nil patch fields and refreshes updatedAt.
	Update(ctx context.Context, id string, patch *models.IntroductionPatch) (*models.Introduction, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, id string) (bool, error)
	// GetAll returns introductions newest first.
	GetAll(ctx context.Context) ([]*models.Introduction, error)
	GetByGraduationClass(ctx context.Context, class int) ([]*models.Introduction, error)
	// Search matches query case-insensitively against the author name,
	// field, organization and introduction text. An empty query matches all.
	Search(ctx context.Context, query string) ([]*models.Introduction, error)
}
