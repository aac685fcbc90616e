// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/hybridrank/internal/logging"
	"github.com/tomtom215/hybridrank/internal/recommend/recerr"
)

// Error kinds produced by the HTTP layer itself. Engine errors use the
// recerr kinds.
const (
	KindRateLimited      = "RateLimited"
	KindMethodNotAllowed = "MethodNotAllowed"
)

// ErrNoEngine is returned by handlers when the service started without a model.
var ErrNoEngine = recerr.New(recerr.KindModelUnavailable, "recommendation model is not loaded")

// statusForKind maps an error kind to an HTTP status code.
func statusForKind(kind recerr.Kind) int {
	switch kind {
	case recerr.KindInvalidRequest:
		return http.StatusBadRequest
	case recerr.KindNotFound:
		return http.StatusNotFound
	case recerr.KindModelUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an error envelope. Classified errors carry
// their own message; anything else is logged and reported as Internal.
func respondError(w http.ResponseWriter, r *http.Request, err error, details any) {
	kind := recerr.KindOf(err)
	status := statusForKind(kind)

	message := "internal error"
	var classified *recerr.Error
	if errors.As(err, &classified) && kind != recerr.KindInternal {
		message = classified.Message
		if message == "" {
			message = string(kind)
		}
	}

	event := logging.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = logging.Ctx(r.Context()).Error()
	}
	event.Err(err).
		Str("kind", string(kind)).
		Str("method", r.Method).
		Str("path", sanitizeLogValue(r.URL.Path)).
		Int("status", status).
		Msg("API error")

	NewResponseWriter(w, r).ErrorWithDetails(status, string(kind), message, details)
}
