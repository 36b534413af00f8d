package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/doclife/internal/common"
	"github.com/dmitrijs2005/doclife/internal/server/auth"
	"github.com/dmitrijs2005/doclife/internal/webutil"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// userIDFromContext returns the id of the authenticated caller.
func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// accessTokenMiddleware requires a valid bearer token and stores its user id
// in the request context.
func (a *API) accessTokenMiddleware(next http.Handler) http.Handler {
	return webutil.MakeHandler(a.logger, func(w http.ResponseWriter, r *http.Request) error {
		header := r.Header.Get(webutil.HeaderAuthorization)
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, common.AuthorizationScheme) || strings.TrimSpace(token) == "" {
			return webutil.ErrUnauthorized("missing token")
		}

		userID, err := auth.GetUserIDFromToken(strings.TrimSpace(token), a.jwtSecret)
		if err != nil {
			return err
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		return nil
	})
}

// requireSelf rejects callers acting on another user's resources.
func requireSelf(r *http.Request, userID string) error {
	caller, ok := userIDFromContext(r.Context())
	if !ok {
		return common.ErrorUnauthorized
	}
	if caller != userID {
		return common.ErrorForbidden
	}
	return nil
}
