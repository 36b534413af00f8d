// Package memory is an in-process store implementing the users and
// documents repositories. It enforces the same integrity rules as the
// PostgreSQL schema: unique emails, existing owners and cascading deletes.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/doclife/internal/server/models"
)

type Store struct {
	mu        sync.RWMutex
	users     map[string]models.User
	documents map[string]models.Document
	now       func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]models.User),
		documents: make(map[string]models.Document),
		now:       time.Now,
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func (s *Store) Documents() *DocumentRepository {
	return &DocumentRepository{s: s}
}

// sortDocuments orders by expiry date, then id, matching the SQL ORDER BY.
func sortDocuments(docs []models.Document) {
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].ExpiryDate.Equal(docs[j].ExpiryDate) {
			return docs[i].ExpiryDate.Before(docs[j].ExpiryDate)
		}
		return docs[i].ID < docs[j].ID
	})
}

// civil strips the time of day and location, keeping the calendar date.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
