package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/azhovnerik/personal-finance-mobile/internal/emulator/store"
	"github.com/azhovnerik/personal-finance-mobile/pkg/models"
)

// AuthHandler handles the login endpoint.
type AuthHandler struct {
	store *store.Store
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(s *store.Store) *AuthHandler {
	return &AuthHandler{store: s}
}

// Login handles POST /api/v2/user/auth/login. The emulator accepts any
// password for the seeded user's email and issues a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.store.GetUser()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}
	if req.Email != user.Email {
		writeJSONError(w, http.StatusUnauthorized, "Unknown email or wrong password")
		return
	}

	token := uuid.NewString()
	if err := h.store.PutString(store.BucketTokens, token, user.Email); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{Token: token})
}
