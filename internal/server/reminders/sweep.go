package reminders

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/doclife/internal/common"
	"github.com/dmitrijs2005/doclife/internal/dbx"
	"github.com/dmitrijs2005/doclife/internal/logging"
	"github.com/dmitrijs2005/doclife/internal/server/models"
	"github.com/dmitrijs2005/doclife/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/doclife/internal/timex"
)

// Report summarizes one sweep. Sent counts dispatches that returned nil,
// which includes the no-op when mail is not configured.
type Report struct {
	Date    time.Time
	Matched int
	Sent    int
	Failed  int
}

// TxRunner is the part of repomanager.RepositoryManager a sweep needs.
type TxRunner interface {
	WithTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, r repomanager.Repositories) error) error
}

// Sweep is one pass over the store. It holds no state between runs, so
// concurrent calls to Run are independent.
type Sweep struct {
	store      TxRunner
	notifier   Notifier
	windowDays int
	loc        *time.Location
	logger     logging.Logger
	now        func() time.Time
}

func NewSweep(store TxRunner, notifier Notifier, windowDays int, loc *time.Location, logger logging.Logger) *Sweep {
	return &Sweep{
		store:      store,
		notifier:   notifier,
		windowDays: windowDays,
		loc:        loc,
		logger:     logger,
		now:        time.Now,
	}
}

// Run selects the expiring documents inside a read-only transaction, then
// dispatches one reminder per pair after the transaction is closed.
// Dispatch failures are logged and counted; only a store failure aborts
// the sweep. Cancelling ctx after Run has started has no effect.
func (s *Sweep) Run(ctx context.Context) (Report, error) {
	ctx = context.WithoutCancel(ctx)

	today := timex.DateIn(s.now(), s.loc)
	report := Report{Date: today}

	var pairs []models.ExpiringDocument
	err := s.store.WithTx(ctx, dbx.ReadOnly, func(ctx context.Context, r repomanager.Repositories) error {
		var err error
		pairs, err = SelectExpiring(ctx, r.Documents(), today, s.windowDays)
		return err
	})
	if err != nil {
		s.logger.Error(ctx, "reminder sweep aborted", "date", today.Format(common.DateLayout), "error", err)
		return report, fmt.Errorf("select expiring documents: %w", err)
	}

	report.Matched = len(pairs)
	for _, p := range pairs {
		if err := s.notifier.Dispatch(ctx, p.User, p.Document); err != nil {
			report.Failed++
			s.logger.Error(ctx, "failed to send reminder",
				"recipient", p.User.Email,
				"user_id", p.User.ID,
				"document_id", p.Document.ID,
				"error", err)
			continue
		}
		report.Sent++
	}

	s.logger.Info(ctx, "reminder sweep finished",
		"date", today.Format(common.DateLayout),
		"matched", report.Matched,
		"sent", report.Sent,
		"failed", report.Failed)

	return report, nil
}
