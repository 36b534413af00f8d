package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/doclife/internal/dbx"
	"github.com/dmitrijs2005/doclife/internal/server/migrations"
	"github.com/dmitrijs2005/doclife/internal/server/repositories/documents"
	"github.com/dmitrijs2005/doclife/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// gooseUp is swapped in tests.
var gooseUp = goose.UpContext

type txRepositories struct {
	users     users.Repository
	documents documents.Repository
}

func (r txRepositories) Users() users.Repository         { return r.users }
func (r txRepositories) Documents() documents.Repository { return r.documents }

type PostgresRepositoryManager struct {
	db        *sql.DB
	users     users.Repository
	documents documents.Repository
}

func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return newPostgresRepositoryManager(db), nil
}

func newPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{
		db:        db,
		users:     users.NewPostgresRepository(db),
		documents: documents.NewPostgresRepository(db),
	}
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Documents() documents.Repository {
	return m.documents
}

func (m *PostgresRepositoryManager) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, r Repositories) error) error {
	return dbx.WithTx(ctx, m.db, opts, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, txRepositories{
			users:     users.NewPostgresRepository(tx),
			documents: documents.NewPostgresRepository(tx),
		})
	})
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := gooseUp(ctx, m.db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
