// Package repositories holds the storage layer of doclife: one sub-package
// per entity plus the repository managers that bind them to a store.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/doclife/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
)

// MapError turns driver errors into common sentinels where the caller can act
// on them and wraps everything else as "db error".
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", common.ErrorNotFound, pgErr.ConstraintName)
		case pgInvalidTextRepr:
			// malformed uuid in a lookup
			return common.ErrorNotFound
		}
	}

	return fmt.Errorf("db error: %w", err)
}

// ExpectAffected returns common.ErrorNotFound when res reports no affected rows.
func ExpectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
