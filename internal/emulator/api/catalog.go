package api

import (
	"net/http"

	"github.com/azhovnerik/personal-finance-mobile/internal/emulator/store"
	"github.com/azhovnerik/personal-finance-mobile/pkg/models"
)

// AccountsHandler handles account-related API endpoints.
type AccountsHandler struct {
	store *store.Store
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(s *store.Store) *AccountsHandler {
	return &AccountsHandler{store: s}
}

// List handles GET /api/v2/accounts.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.store.ListAccounts()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	writeJSON(w, http.StatusOK, accounts)
}

// CategoriesHandler handles category-related API endpoints.
type CategoriesHandler struct {
	store *store.Store
}

// NewCategoriesHandler creates a new CategoriesHandler.
func NewCategoriesHandler(s *store.Store) *CategoriesHandler {
	return &CategoriesHandler{store: s}
}

// Tree handles GET /api/v2/categories/tree with an optional type filter.
func (h *CategoriesHandler) Tree(w http.ResponseWriter, r *http.Request) {
	categoryType := models.CategoryType(r.URL.Query().Get("type"))

	tree, err := h.store.CategoryTree(categoryType)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to build category tree")
		return
	}
	if tree == nil {
		tree = []models.CategoryNode{}
	}
	writeJSON(w, http.StatusOK, tree)
}
