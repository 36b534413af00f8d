// Package reminders implements the expiry-reminder subsystem: selecting
// documents close to expiry, mailing their owners and running that sweep
// on a daily schedule or on demand.
package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/doclife/internal/common"
	"github.com/dmitrijs2005/doclife/internal/server/models"
	"github.com/dmitrijs2005/doclife/internal/server/repositories/documents"
	"github.com/dmitrijs2005/doclife/internal/timex"
)

// DefaultWindowDays is the forward window used when none is configured.
const DefaultWindowDays = 7

// SelectExpiring returns every document whose expiry date lies in
// [today, today+windowDays], paired with its owner. Only the calendar date of
// today, as seen in its own location, is used.
func SelectExpiring(ctx context.Context, repo documents.Repository, today time.Time, windowDays int) ([]models.ExpiringDocument, error) {
	if windowDays < 0 {
		return nil, fmt.Errorf("%w: reminder window must not be negative, got %d", common.ErrorValidation, windowDays)
	}

	from := timex.DateIn(today, today.Location())
	to := timex.AddDays(from, windowDays)

	return repo.SelectExpiring(ctx, from, to)
}
