package memory

import (
	"time"

	"github.com/azhovnerik/personal-finance-mobile/pkg/filter"
	"github.com/azhovnerik/personal-finance-mobile/pkg/models"
)

// NewSeeded creates a repository preloaded with the development fixture set.
// Transaction dates are derived from now so the default month filter always
// has something to show.
func NewSeeded(now time.Time) *Repository {
	r := NewRepository()

	user := models.User{ID: "user-1", Name: "Olena", Email: "olena@example.com", BaseCurrency: "UAH"}
	r.SetUser(user)

	accounts := []models.Account{
		{ID: "acc-1", Name: "Main account", Description: "Card account for everyday spending", UserID: user.ID, Type: models.AccountBank, Currency: "UAH"},
		{ID: "acc-2", Name: "Travel card", Description: "Reserve for trips", UserID: user.ID, Type: models.AccountCard, Currency: "UAH"},
		{ID: "acc-3", Name: "Cash", Description: "Wallet", UserID: user.ID, Type: models.AccountCash, Currency: "UAH"},
	}
	for _, a := range accounts {
		r.AddAccount(a)
	}

	categories := []models.Category{
		{ID: "cat-1", Name: "Groceries", Description: "Supermarket and cafes", UserID: user.ID, Type: models.CategoryExpenses, Icon: "shopping-cart"},
		{ID: "cat-2", Name: "Home", Description: "Utilities and household", UserID: user.ID, Type: models.CategoryExpenses, Icon: "home"},
		{ID: "cat-3", Name: "Transport", Description: "Taxi and transit", UserID: user.ID, Type: models.CategoryExpenses, Icon: "truck"},
		{ID: "cat-4", Name: "Salary", Description: "Main income", UserID: user.ID, Type: models.CategoryIncome, Icon: "wallet"},
		{ID: "cat-5", Name: "Freelance", Description: "Project payouts", UserID: user.ID, Type: models.CategoryIncome, Icon: "briefcase"},
	}
	for _, c := range categories {
		r.AddCategory(c)
	}

	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(filter.DateLayout)
	}
	seedTxns := []struct {
		id         string
		date       string
		categoryID string
		accountID  string
		amount     float64
		comment    string
	}{
		{"txn-3", day(-3), "cat-5", "acc-1", 9200, "Project payout"},
		{"txn-2", day(-1), "cat-3", "acc-2", 480, "Taxi"},
		{"txn-1", day(0), "cat-1", "acc-1", 2350, "Supermarket"},
	}
	for _, s := range seedTxns {
		category, _ := r.findCategory(s.categoryID)
		account, _ := r.findAccount(s.accountID)
		direction, txnType, _ := models.ClassifyCategory(category.Type)
		amount := s.amount
		userCopy := user
		r.AddTransaction(models.Transaction{
			ID:           s.id,
			Date:         s.date,
			Category:     category,
			Account:      account,
			Direction:    direction,
			Type:         txnType,
			Amount:       s.amount,
			AmountInBase: &amount,
			Currency:     account.Currency,
			User:         &userCopy,
			Comment:      s.comment,
		})
	}

	return r
}
