package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/azhovnerik/personal-finance-mobile/internal/emulator/store"
)

// NewRouter assembles the emulator's full route table. It is shared by the
// server binary and the integration tests.
func NewRouter(s *store.Store) http.Handler {
	authHandler := NewAuthHandler(s)
	transactionsHandler := NewTransactionsHandler(s)
	accountsHandler := NewAccountsHandler(s)
	categoriesHandler := NewCategoriesHandler(s)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Login endpoint (no authentication required).
	r.Post("/api/v2/user/auth/login", authHandler.Login)

	// API endpoints (authentication required).
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s))

		r.Route("/api/v2/transactions", func(r chi.Router) {
			r.Get("/", transactionsHandler.List)
			r.Post("/", transactionsHandler.Create)
			r.Delete("/{id}/delete", transactionsHandler.Delete)
		})

		r.Get("/api/v2/accounts", accountsHandler.List)
		r.Get("/api/v2/categories/tree", categoriesHandler.Tree)
	})

	// Health check endpoint.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
