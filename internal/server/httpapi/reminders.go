package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/doclife/internal/webutil"
)

// handleSendRemindersNow runs a sweep synchronously. Per-recipient failures
// do not change the response; only a failed selection does.
func (a *API) handleSendRemindersNow(w http.ResponseWriter, r *http.Request) error {
	if _, err := a.reminders.TriggerNow(r.Context()); err != nil {
		return webutil.ErrInternalServerWrap("manual reminder sweep", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Manual reminders sent successfully"})
	return nil
}
