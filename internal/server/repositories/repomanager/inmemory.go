package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/doclife/internal/server/repositories/documents"
	"github.com/dmitrijs2005/doclife/internal/server/repositories/memory"
	"github.com/dmitrijs2005/doclife/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves development runs without a database and
// the property tests. Its transactions give no isolation: fn runs directly
// against the shared store.
type InMemoryRepositoryManager struct {
	store *memory.Store
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{store: memory.NewStore()}
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.store.Users()
}

func (m *InMemoryRepositoryManager) Documents() documents.Repository {
	return m.store.Documents()
}

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, _ *sql.TxOptions, fn func(ctx context.Context, r Repositories) error) error {
	return fn(ctx, m)
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}
