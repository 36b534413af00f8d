// Package repomanager binds the users and documents repositories to a store
// and exposes scoped transactions over them.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/doclife/internal/server/repositories/documents"
	"github.com/dmitrijs2005/doclife/internal/server/repositories/users"
)

// Repositories is the set of repositories bound to one store handle,
// either the shared pool or a single transaction.
type Repositories interface {
	Users() users.Repository
	Documents() documents.Repository
}

type RepositoryManager interface {
	Repositories

	// WithTx runs fn against repositories bound to a new transaction.
	// The transaction is committed when fn returns nil and rolled back otherwise.
	WithTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, r Repositories) error) error

	RunMigrations(ctx context.Context) error
	Close() error
}

// New returns the Postgres manager for a non-empty dsn and the in-memory
// manager otherwise.
func New(dsn string) (RepositoryManager, error) {
	if dsn == "" {
		return NewInMemoryRepositoryManager(), nil
	}
	return NewPostgresRepositoryManager(dsn)
}
