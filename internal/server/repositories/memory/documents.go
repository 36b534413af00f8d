package memory

import (
	"context"
	"time"

	"github.com/dmitrijs2005/doclife/internal/common"
	"github.com/dmitrijs2005/doclife/internal/server/models"
	"github.com/google/uuid"
)

type DocumentRepository struct {
	s *Store
}

func (r *DocumentRepository) Create(_ context.Context, doc *models.Document) (*models.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[doc.UserID]; !ok {
		return nil, common.ErrorNotFound
	}

	doc.ID = uuid.NewString()
	doc.ExpiryDate = civil(doc.ExpiryDate)
	doc.CreatedAt = r.s.now().UTC()
	r.s.documents[doc.ID] = *doc

	return doc, nil
}

func (r *DocumentRepository) GetByID(_ context.Context, id string) (*models.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.documents[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &d, nil
}

func (r *DocumentRepository) ListByUser(_ context.Context, userID string) ([]models.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	docs := make([]models.Document, 0)
	for _, d := range r.s.documents {
		if d.UserID == userID {
			docs = append(docs, d)
		}
	}
	sortDocuments(docs)
	return docs, nil
}

func (r *DocumentRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.documents[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.documents, id)
	return nil
}

func (r *DocumentRepository) SelectExpiring(_ context.Context, from, to time.Time) ([]models.ExpiringDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	lo, hi := civil(from), civil(to)

	docs := make([]models.Document, 0)
	for _, d := range r.s.documents {
		if d.ExpiryDate.Before(lo) || d.ExpiryDate.After(hi) {
			continue
		}
		docs = append(docs, d)
	}
	sortDocuments(docs)

	result := make([]models.ExpiringDocument, 0, len(docs))
	for _, d := range docs {
		owner, ok := r.s.users[d.UserID]
		if !ok {
			// unreachable while Create and Delete keep referential integrity
			continue
		}
		owner.PasswordHash = ""
		result = append(result, models.ExpiringDocument{Document: d, User: owner})
	}
	return result, nil
}
