// Package webutil holds the JSON helpers and error-returning handler adapter
// shared by the HTTP API.
package webutil

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/doclife/internal/common"
	"github.com/dmitrijs2005/doclife/internal/logging"
	"github.com/go-chi/chi/v5/middleware"
)

// AppHandler is a handler that reports failure by returning an error.
type AppHandler func(w http.ResponseWriter, r *http.Request) error

// classify maps err to a status code and a public message. Common sentinels
// get their natural status; everything unknown is a 500.
func classify(err error) (int, string) {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, httpErr.Message
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, msgConflict
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, msgForbidden
	default:
		return http.StatusInternalServerError, msgInternalServer
	}
}

// MakeHandler adapts an AppHandler to http.HandlerFunc. A returned error is
// logged and written as {"error": "..."} unless the handler already wrote
// a status line.
func MakeHandler(logger logging.Logger, handler AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		err := handler(ww, r)
		if err == nil {
			return
		}

		code, msg := classify(err)
		args := []any{"code", code, "path", r.URL.Path, "method", r.Method, "error", err}
		if code >= http.StatusInternalServerError {
			logger.Error(r.Context(), "request failed", args...)
		} else {
			logger.Warn(r.Context(), "client error response", args...)
		}

		if ww.Status() != 0 {
			logger.Warn(r.Context(), "handler returned error after writing response", "path", r.URL.Path)
			return
		}

		RespondWithJSON(ww, code, map[string]string{"error": msg})
	}
}
