package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/doclife/internal/common"
	"github.com/dmitrijs2005/doclife/internal/server/models"
	"github.com/dmitrijs2005/doclife/internal/server/repositories/repomanager"
)

// DocumentService manages the documents a user tracks.
type DocumentService struct {
	repomanager repomanager.RepositoryManager
}

func NewDocumentService(m repomanager.RepositoryManager) *DocumentService {
	return &DocumentService{repomanager: m}
}

// Create stores a document for userID. An unknown owner yields
// common.ErrorNotFound.
func (s *DocumentService) Create(ctx context.Context, userID, documentType string, expiry time.Time) (*models.Document, error) {
	documentType = strings.TrimSpace(documentType)
	if documentType == "" {
		return nil, fmt.Errorf("%w: document type is required", common.ErrorValidation)
	}
	if expiry.IsZero() {
		return nil, fmt.Errorf("%w: expiry date is required", common.ErrorValidation)
	}

	doc := &models.Document{UserID: userID, DocumentType: documentType, ExpiryDate: expiry}
	return s.repomanager.Documents().Create(ctx, doc)
}

// Delete removes a document owned by ownerID. Documents of other users
// yield common.ErrorForbidden.
func (s *DocumentService) Delete(ctx context.Context, ownerID, id string) error {
	return s.repomanager.WithTx(ctx, nil, func(ctx context.Context, r repomanager.Repositories) error {
		doc, err := r.Documents().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if doc.UserID != ownerID {
			return common.ErrorForbidden
		}
		return r.Documents().Delete(ctx, id)
	})
}

func (s *DocumentService) ListByUser(ctx context.Context, userID string) ([]models.Document, error) {
	return s.repomanager.Documents().ListByUser(ctx, userID)
}
