package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/azhovnerik/personal-finance-mobile/internal/emulator/store"
	"github.com/azhovnerik/personal-finance-mobile/pkg/filter"
	"github.com/azhovnerik/personal-finance-mobile/pkg/models"
)

// TransactionsHandler handles transaction-related API endpoints.
type TransactionsHandler struct {
	store *store.Store
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(s *store.Store) *TransactionsHandler {
	return &TransactionsHandler{store: s}
}

// List handles GET /api/v2/transactions. Query parameter presence is a
// constraint; absent parameters leave that dimension unfiltered.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	f := filter.Filter{
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
		AccountID: query.Get("accountId"),
		Type:      models.TransactionType(query.Get("type")),
	}

	transactions, err := h.store.ListTransactions(f)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}

// Create handles POST /api/v2/transactions.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	// Validate required fields
	if req.CategoryID == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing categoryId")
		return
	}
	if req.AccountID == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing accountId")
		return
	}
	if req.Date == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing date")
		return
	}
	if req.Amount <= 0 {
		writeJSONError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}

	txn, err := h.store.CreateTransaction(&req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusBadRequest, "Unknown category or account")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	writeJSON(w, http.StatusCreated, txn)
}

// Delete handles DELETE /api/v2/transactions/{id}/delete.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteTransaction(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
