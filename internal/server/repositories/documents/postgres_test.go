package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/doclife/internal/common"
	"github.com/dmitrijs2005/doclife/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var docColumns = []string{"id", "user_id", "document_type", "expiry_date", "created_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	q := `(?s)^INSERT\s+INTO\s+documents\s*\(user_id,\s*document_type,\s*expiry_date\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at$`
	mock.ExpectQuery(q).
		WithArgs("u-1", "Passport", "2026-10-18").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("d-10", created))

	got, err := repo.Create(context.Background(), &models.Document{
		UserID: "u-1", DocumentType: "Passport", ExpiryDate: day(2026, 10, 18),
	})
	require.NoError(t, err)
	assert.Equal(t, "d-10", got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UnknownOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO documents`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "documents_user_id_fkey"})

	_, err := repo.Create(context.Background(), &models.Document{UserID: "ghost", ExpiryDate: day(2026, 1, 1)})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FROM\s+documents\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs("d-10").
		WillReturnRows(sqlmock.NewRows(docColumns).AddRow("d-10", "u-1", "Passport", day(2026, 10, 18), time.Now()))

	got, err := repo.GetByID(context.Background(), "d-10")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.UserID)
	assert.Equal(t, day(2026, 10, 18), got.ExpiryDate)
}

func TestListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+expiry_date,\s*id$`
	mock.ExpectQuery(q).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(docColumns).
			AddRow("d-1", "u-1", "Visa", day(2026, 10, 16), time.Now()).
			AddRow("d-2", "u-1", "Licence", day(2027, 1, 1), time.Now()))

	got, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "d-1", got[0].ID)
	assert.Equal(t, "d-2", got[1].ID)
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM documents`).WithArgs("u-1").WillReturnRows(sqlmock.NewRows(docColumns))

	got, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	q := `(?s)^DELETE\s+FROM\s+documents\s+WHERE\s+id\s*=\s*\$1$`
	mock.ExpectExec(q).WithArgs("d-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("d-2").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "d-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "d-2"), common.ErrorNotFound)
}

func TestSelectExpiring(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	q := `(?s)JOIN\s+users\s+u\s+ON\s+u\.id\s*=\s*d\.user_id\s+WHERE\s+d\.expiry_date\s*>=\s*\$1\s+AND\s+d\.expiry_date\s*<=\s*\$2\s+ORDER\s+BY\s+d\.expiry_date,\s*d\.id$`
	mock.ExpectQuery(q).
		WithArgs("2026-10-15", "2026-10-22").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "document_type", "expiry_date", "created_at",
			"id", "name", "mobile_number", "email", "created_at",
		}).
			AddRow("d-10", "u-1", "Passport", day(2026, 10, 18), time.Now(), "u-1", "Alice", "5550100", "a@x.com", time.Now()).
			AddRow("d-11", "u-1", "Visa", day(2026, 10, 22), time.Now(), "u-1", "Alice", "5550100", "a@x.com", time.Now()))

	from := time.Date(2026, 10, 15, 0, 0, 0, 0, kolkata)
	got, err := repo.SelectExpiring(context.Background(), from, from.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "d-10", got[0].Document.ID)
	assert.Equal(t, "a@x.com", got[0].User.Email)
	assert.Equal(t, "d-11", got[1].Document.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectExpiring_StoreUnavailable(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM documents d`).WillReturnError(errors.New("connection refused"))

	_, err := repo.SelectExpiring(context.Background(), day(2026, 10, 15), day(2026, 10, 22))
	assert.EqualError(t, err, "db error: connection refused")
}
