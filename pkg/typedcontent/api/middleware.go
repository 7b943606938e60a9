package api

import (
	"net/http"
)

// RequestSizeLimit caps request body size. The store handler reads whole
// payloads into memory for classification, so unbounded bodies are not an
// option; oversized bodies surface as http.MaxBytesError from the read.
func RequestSizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
