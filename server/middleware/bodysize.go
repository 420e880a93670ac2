package middleware

import (
	"net/http"
	"strconv"

	gwerrors "github.com/kbukum/validator-gateway/errors"
)

// BodySizeLimit rejects requests that declare a body larger than maxSize
// with RequestBodyTooLarge and caps the bytes readable from all others.
func BodySizeLimit(maxSize int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxSize {
				writeError(w, gwerrors.New(gwerrors.RequestBodyTooLarge).
					WithDetail(strconv.FormatInt(maxSize, 10)))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxSize)
			}
			next.ServeHTTP(w, r)
		})
	}
}
