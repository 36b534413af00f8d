package reminders

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/doclife/internal/server/models"
	"github.com/dmitrijs2005/doclife/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newStore() *repomanager.InMemoryRepositoryManager {
	return repomanager.NewInMemoryRepositoryManager()
}

func addUser(t *testing.T, m repomanager.RepositoryManager, name, email string) *models.User {
	t.Helper()
	u, err := m.Users().Create(context.Background(), &models.User{Name: name, Email: email, PasswordHash: "h"})
	require.NoError(t, err)
	return u
}

func addDoc(t *testing.T, m repomanager.RepositoryManager, userID, typ string, expiry time.Time) *models.Document {
	t.Helper()
	d, err := m.Documents().Create(context.Background(), &models.Document{UserID: userID, DocumentType: typ, ExpiryDate: expiry})
	require.NoError(t, err)
	return d
}

type dispatchCall struct {
	UserID     string
	DocumentID string
}

// recordingNotifier records every call and fails for the configured emails.
type recordingNotifier struct {
	mu     sync.Mutex
	calls  []dispatchCall
	failOn map[string]bool
}

func (n *recordingNotifier) Dispatch(_ context.Context, user models.User, doc models.Document) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, dispatchCall{UserID: user.ID, DocumentID: doc.ID})
	if n.failOn[user.Email] {
		return errors.New("relay refused recipient")
	}
	return nil
}

func (n *recordingNotifier) Calls() []dispatchCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]dispatchCall(nil), n.calls...)
}

// failingStore fails every transaction.
type failingStore struct{ err error }

func (s failingStore) WithTx(context.Context, *sql.TxOptions, func(context.Context, repomanager.Repositories) error) error {
	return s.err
}
