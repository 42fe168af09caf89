package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/alumni/internal/dbx"
	"github.com/dmitrijs2005/alumni/internal/server/repositories/introductions"
	"github.com/dmitrijs2005/alumni/internal/server/repositories/users"
)

// InMemoryRepositoryManager hands out process-wide in-memory repositories.
// The db handle passed to the factories is ignored and may be nil.
type InMemoryRepositoryManager struct {
	users         *users.InMemoryRepository
	introductions *introductions.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:         users.NewInMemoryRepository(),
		introductions: introductions.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Introductions(dbx.DBTX) introductions.Repository {
	return m.introductions
}

// RunMigrations is a no-op for in-memory storage.
func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}
