// Package memory provides the mock-mode backend: an in-memory repository
// standing in for the remote API during development and tests. It is an
// explicit object constructed once per session and shared by reference, so
// several views observe the same data.
package memory

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/azhovnerik/personal-finance-mobile/pkg/filter"
	"github.com/azhovnerik/personal-finance-mobile/pkg/models"
)

// mockToken is what Login hands out; mock mode performs no real
// authentication but the session gate still requires a stored token.
const mockToken = "mock-token"

// Repository holds the fixture data set. All methods are safe for use from
// multiple views sharing one repository.
type Repository struct {
	mu           sync.Mutex
	user         models.User
	accounts     []models.Account
	categories   []models.Category
	transactions []models.Transaction
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{}
}

// SetUser sets the owning user of the fixture data.
func (r *Repository) SetUser(user models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = user
}

// AddAccount registers an account.
func (r *Repository) AddAccount(account models.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = append(r.accounts, account)
}

// AddCategory registers a category.
func (r *Repository) AddCategory(category models.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = append(r.categories, category)
}

// AddTransaction prepends a transaction, keeping the list most-recent-first.
func (r *Repository) AddTransaction(txn models.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append([]models.Transaction{txn}, r.transactions...)
}

// Login stores nothing server-side; any non-empty credentials are accepted
// and a fixed token is returned.
func (r *Repository) Login(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", &models.APIError{Status: 400, Message: "email and password are required"}
	}
	return mockToken, nil
}

// ListTransactions returns a filtered copy of the transaction list.
func (r *Repository) ListTransactions(f filter.Filter) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return f.Apply(r.transactions), nil
}

// CreateTransaction resolves the referenced category and account, synthesizes
// a record with a generated id and prepends it to the list.
func (r *Repository) CreateTransaction(req models.CreateTransactionRequest) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	category, ok := r.findCategory(req.CategoryID)
	if !ok {
		return nil, fmt.Errorf("category %s: %w", req.CategoryID, models.ErrNotFound)
	}
	account, ok := r.findAccount(req.AccountID)
	if !ok {
		return nil, fmt.Errorf("account %s: %w", req.AccountID, models.ErrNotFound)
	}

	amountInBase := req.Amount
	if req.AmountInBase != nil {
		amountInBase = *req.AmountInBase
	}
	currency := req.Currency
	if currency == "" {
		currency = account.Currency
	}
	if currency == "" {
		currency = r.user.BaseCurrency
	}

	txn := models.Transaction{
		ID:           uuid.NewString(),
		Date:         req.Date,
		Category:     category,
		Account:      account,
		Direction:    req.Direction,
		Type:         req.Type,
		Amount:       req.Amount,
		AmountInBase: &amountInBase,
		Currency:     currency,
		Comment:      req.Comment,
	}
	if r.user.ID != "" {
		user := r.user
		txn.User = &user
	}

	r.transactions = append([]models.Transaction{txn}, r.transactions...)
	return &txn, nil
}

// DeleteTransaction removes the matching record by identity.
func (r *Repository) DeleteTransaction(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, txn := range r.transactions {
		if txn.ID == id {
			r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("transaction %s: %w", id, models.ErrNotFound)
}

// ListAccounts returns a copy of the account list.
func (r *Repository) ListAccounts() ([]models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts := make([]models.Account, len(r.accounts))
	copy(accounts, r.accounts)
	return accounts, nil
}

// CategoryTree returns top-level categories with their subcategories nested,
// optionally restricted to one category type.
func (r *Repository) CategoryTree(categoryType models.CategoryType) ([]models.CategoryNode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return models.BuildCategoryTree(r.categories, categoryType), nil
}

func (r *Repository) findCategory(id string) (models.Category, bool) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

func (r *Repository) findAccount(id string) (models.Account, bool) {
	for _, a := range r.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return models.Account{}, false
}
