package reminders

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/doclife/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectExpiring_BoundaryInclusivity(t *testing.T) {
	m := newStore()
	u := addUser(t, m, "alice", "alice@example.com")

	tests := []struct {
		offset int
		want   bool
	}{
		{offset: -1, want: false},
		{offset: 0, want: true},
		{offset: 3, want: true},
		{offset: 7, want: true},
		{offset: 8, want: false},
	}

	ids := map[int]string{}
	for _, tt := range tests {
		ids[tt.offset] = addDoc(t, m, u.ID, "doc", today.AddDate(0, 0, tt.offset)).ID
	}

	got, err := SelectExpiring(context.Background(), m.Documents(), today, 7)
	require.NoError(t, err)

	selected := map[string]bool{}
	for _, p := range got {
		selected[p.Document.ID] = true
		assert.Equal(t, u.ID, p.User.ID)
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, selected[ids[tt.offset]], "offset %d", tt.offset)
	}
}

func TestSelectExpiring_IgnoresTimeOfDay(t *testing.T) {
	m := newStore()
	u := addUser(t, m, "alice", "alice@example.com")
	d := addDoc(t, m, u.ID, "Passport", today)

	lateEvening := today.Add(23*time.Hour + 59*time.Minute)
	got, err := SelectExpiring(context.Background(), m.Documents(), lateEvening, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, d.ID, got[0].Document.ID)
}

func TestSelectExpiring_UsesLocalCalendarDate(t *testing.T) {
	m := newStore()
	u := addUser(t, m, "alice", "alice@example.com")
	addDoc(t, m, u.ID, "Passport", today.AddDate(0, 0, -1))

	kolkata := time.FixedZone("IST", 5*3600+1800)
	// 01:00 on the 15th in Kolkata is still the 14th in UTC.
	now := time.Date(2026, 10, 15, 1, 0, 0, 0, kolkata)

	got, err := SelectExpiring(context.Background(), m.Documents(), now, 7)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelectExpiring_Deterministic(t *testing.T) {
	m := newStore()
	u := addUser(t, m, "alice", "alice@example.com")
	for i := 0; i < 5; i++ {
		addDoc(t, m, u.ID, "doc", today.AddDate(0, 0, i%3))
	}

	first, err := SelectExpiring(context.Background(), m.Documents(), today, 7)
	require.NoError(t, err)
	second, err := SelectExpiring(context.Background(), m.Documents(), today, 7)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 5)
}

func TestSelectExpiring_EmptyStore(t *testing.T) {
	got, err := SelectExpiring(context.Background(), newStore().Documents(), today, 7)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelectExpiring_NegativeWindow(t *testing.T) {
	_, err := SelectExpiring(context.Background(), newStore().Documents(), today, -1)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestSelectExpiring_CascadeRemovesDocuments(t *testing.T) {
	m := newStore()
	ctx := context.Background()
	u := addUser(t, m, "alice", "alice@example.com")
	addDoc(t, m, u.ID, "Passport", today.AddDate(0, 0, 2))

	require.NoError(t, m.Users().Delete(ctx, u.ID))

	got, err := SelectExpiring(ctx, m.Documents(), today, 7)
	require.NoError(t, err)
	assert.Empty(t, got)
}
