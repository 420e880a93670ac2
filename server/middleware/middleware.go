package middleware

import (
	"encoding/json"
	"net/http"

	gwerrors "github.com/kbukum/validator-gateway/errors"
)

// Middleware wraps an http.Handler with additional behavior. Server-level
// middleware runs before gin routing, so it sees every request including
// unknown routes.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middleware. The first in the list is the outermost
// (runs first on a request, last on a response).
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// writeError renders err as the gateway's JSON error body.
func writeError(w http.ResponseWriter, err *gwerrors.GatewayError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err.Retryable() {
		w.Header().Set("Retry-After", "1")
	}
	w.WriteHeader(err.HTTPStatus())
	_ = json.NewEncoder(w).Encode(err.Render())
}
