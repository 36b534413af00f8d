package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/doclife/internal/common"
	"github.com/dmitrijs2005/doclife/internal/dbx"
	"github.com/dmitrijs2005/doclife/internal/server/models"
	"github.com/dmitrijs2005/doclife/internal/server/repositories"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Dates travel as YYYY-MM-DD text so the session time zone never shifts them.
func date(t time.Time) string {
	return t.Format(common.DateLayout)
}

func (r *PostgresRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	query :=
		`INSERT INTO documents (user_id, document_type, expiry_date)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		doc.UserID, doc.DocumentType, date(doc.ExpiryDate)).Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		return nil, repositories.MapError(err)
	}

	return doc, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query :=
		`SELECT id, user_id, document_type, expiry_date, created_at FROM documents
		 WHERE id = $1
		 `

	doc := &models.Document{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID, &doc.UserID, &doc.DocumentType, &doc.ExpiryDate, &doc.CreatedAt)
	if err != nil {
		return nil, repositories.MapError(err)
	}
	return doc, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Document, error) {
	query :=
		`SELECT id, user_id, document_type, expiry_date, created_at FROM documents
		 WHERE user_id = $1
		 ORDER BY expiry_date, id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, repositories.MapError(err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.UserID, &d.DocumentType, &d.ExpiryDate, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return docs, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return repositories.MapError(err)
	}
	return repositories.ExpectAffected(res)
}

func (r *PostgresRepository) SelectExpiring(ctx context.Context, from, to time.Time) ([]models.ExpiringDocument, error) {
	query :=
		`SELECT d.id, d.user_id, d.document_type, d.expiry_date, d.created_at,
		        u.id, u.name, u.mobile_number, u.email, u.created_at
		 FROM documents d
		 JOIN users u ON u.id = d.user_id
		 WHERE d.expiry_date >= $1 AND d.expiry_date <= $2
		 ORDER BY d.expiry_date, d.id
		 `

	rows, err := r.db.QueryContext(ctx, query, date(from), date(to))
	if err != nil {
		return nil, repositories.MapError(err)
	}
	defer rows.Close()

	result := make([]models.ExpiringDocument, 0)
	for rows.Next() {
		var e models.ExpiringDocument
		if err := rows.Scan(
			&e.Document.ID, &e.Document.UserID, &e.Document.DocumentType, &e.Document.ExpiryDate, &e.Document.CreatedAt,
			&e.User.ID, &e.User.Name, &e.User.MobileNumber, &e.User.Email, &e.User.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
