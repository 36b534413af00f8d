package documents

import (
	"context"
	"time"

	"github.com/dmitrijs2005/doclife/internal/server/models"
)

type Repository interface {
	// Create stores a document. An unknown owner yields common.ErrorNotFound.
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)
	GetByID(ctx context.Context, id string) (*models.Document, error)
	ListByUser(ctx context.Context, userID string) ([]models.Document, error)
	Delete(ctx context.Context, id string) error

	// SelectExpiring joins documents to their owners and returns one pair per
	// document whose expiry date lies in [from, to], both ends inclusive,
	// ordered by expiry date and then document id. Only the calendar date of
	// from and to is used.
	SelectExpiring(ctx context.Context, from, to time.Time) ([]models.ExpiringDocument, error)
}
