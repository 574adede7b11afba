// Package api implements the HTTP surface the mobile client consumes, backed
// by the emulator store.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/azhovnerik/personal-finance-mobile/internal/emulator/store"
)

// ErrorResponse is the error envelope the client decodes.
type ErrorResponse struct {
	Message string `json:"message"`
}

// writeJSONError writes the error envelope.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Message: message})
}

// writeJSON writes a success payload.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// AuthMiddleware validates the bearer token against the tokens issued by the
// login endpoint.
func AuthMiddleware(s *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "Missing Authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeJSONError(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			if _, err := s.GetString(store.BucketTokens, parts[1]); err != nil {
				if err == store.ErrNotFound {
					writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
					return
				}
				writeJSONError(w, http.StatusInternalServerError, "Failed to validate token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
