// Package models defines the wire-level data types of the personal-finance
// API, shared by the HTTP client, the in-memory mock repository and the
// development emulator.
package models

// AccountType classifies an account.
type AccountType string

// Account types.
const (
	AccountCash AccountType = "CASH"
	AccountCard AccountType = "CARD"
	AccountBank AccountType = "BANK_ACCOUNT"
	AccountDebt AccountType = "DEBT"
)

// CategoryType classifies a category.
type CategoryType string

// Category types.
const (
	CategoryIncome   CategoryType = "INCOME"
	CategoryExpenses CategoryType = "EXPENSES"
	CategoryTransfer CategoryType = "TRANSFER"
)

// TransactionType classifies a transaction.
type TransactionType string

// Transaction types.
const (
	TypeExpense       TransactionType = "EXPENSE"
	TypeIncome        TransactionType = "INCOME"
	TypeChangeBalance TransactionType = "CHANGE_BALANCE"
	TypeTransfer      TransactionType = "TRANSFER"
)

// Direction tells whether a transaction increases or decreases the account
// balance. The amount itself is always positive; direction encodes the sign.
type Direction string

// Directions.
const (
	DirectionIncrease Direction = "INCREASE"
	DirectionDecrease Direction = "DECREASE"
)

// CurrencyCode is an ISO 4217 currency code, e.g. "UAH" or "USD".
type CurrencyCode string

// User represents the owning user of accounts and transactions.
type User struct {
	ID           string       `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string       `json:"name,omitempty" yaml:"name,omitempty"`
	Email        string       `json:"email,omitempty" yaml:"email,omitempty"`
	BaseCurrency CurrencyCode `json:"baseCurrency,omitempty" yaml:"baseCurrency,omitempty"`
}

// Account is a money store (card, cash, bank account or debt).
type Account struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	UserID      string       `json:"userId,omitempty" yaml:"userId,omitempty"`
	Type        AccountType  `json:"type" yaml:"type"`
	Currency    CurrencyCode `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// Category is an income/expense category. Subcategories reference their
// parent through ParentID.
type Category struct {
	ID          string       `json:"id" yaml:"id"`
	ParentID    string       `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	UserID      string       `json:"userId,omitempty" yaml:"userId,omitempty"`
	Type        CategoryType `json:"type" yaml:"type"`
	Disabled    bool         `json:"disabled" yaml:"disabled"`
	Icon        string       `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// CategoryNode is a category with its nested subcategories, as returned by
// the category-tree endpoint.
type CategoryNode struct {
	Category      `yaml:",inline"`
	Subcategories []CategoryNode `json:"subcategories,omitempty" yaml:"subcategories,omitempty"`
}

// Transaction represents one recorded money movement.
type Transaction struct {
	ID           string          `json:"id" yaml:"id"`
	Date         string          `json:"date" yaml:"date"` // YYYY-MM-DD, optionally with a time suffix
	Category     Category        `json:"category" yaml:"category"`
	Account      Account         `json:"account" yaml:"account"`
	Direction    Direction       `json:"direction" yaml:"direction"`
	Type         TransactionType `json:"type" yaml:"type"`
	Amount       float64         `json:"amount" yaml:"amount"`
	AmountInBase *float64        `json:"amountInBase,omitempty" yaml:"amountInBase,omitempty"`
	Currency     CurrencyCode    `json:"currency,omitempty" yaml:"currency,omitempty"`
	User         *User           `json:"user,omitempty" yaml:"user,omitempty"`
	Comment      string          `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// CreateTransactionRequest is the request body for transaction creation.
// IdempotencyKey is generated client-side so a resubmitted request cannot
// create a duplicate record.
type CreateTransactionRequest struct {
	Date           string          `json:"date"`
	Timezone       string          `json:"timezone,omitempty"`
	CategoryID     string          `json:"categoryId"`
	AccountID      string          `json:"accountId"`
	Direction      Direction       `json:"direction"`
	Type           TransactionType `json:"type"`
	Amount         float64         `json:"amount"`
	AmountInBase   *float64        `json:"amountInBase,omitempty"`
	Currency       CurrencyCode    `json:"currency,omitempty"`
	Comment        string          `json:"comment,omitempty"`
	IdempotencyKey string          `json:"idempotencyKey,omitempty"`
}

// LoginRequest is the request body for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the success response of the login endpoint.
type LoginResponse struct {
	Token string `json:"token"`
}
