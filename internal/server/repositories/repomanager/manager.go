// Package repomanager vends repository implementations for the configured
// storage backend and runs schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/alumni/internal/dbx"
	"github.com/dmitrijs2005/alumni/internal/server/repositories/introductions"
	"github.com/dmitrijs2005/alumni/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Introductions(db dbx.DBTX) introductions.Repository
}
