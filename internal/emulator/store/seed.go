package store

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/azhovnerik/personal-finance-mobile/pkg/filter"
	"github.com/azhovnerik/personal-finance-mobile/pkg/models"
)

// SeedData is the fixture set the emulator starts from.
type SeedData struct {
	User         models.User          `yaml:"user"`
	Accounts     []models.Account     `yaml:"accounts"`
	Categories   []models.Category    `yaml:"categories"`
	Transactions []models.Transaction `yaml:"transactions"`
}

// LoadSeedFile reads a fixture set from a YAML file.
func LoadSeedFile(path string) (*SeedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedData
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return &seed, nil
}

// DefaultSeed returns the built-in fixture set, with transaction dates
// derived from now so a fresh emulator has data in the current month.
func DefaultSeed(now time.Time) *SeedData {
	user := models.User{ID: "user-1", Name: "Olena", Email: "olena@example.com", BaseCurrency: "UAH"}

	accounts := []models.Account{
		{ID: "acc-1", Name: "Main account", Description: "Card account for everyday spending", UserID: user.ID, Type: models.AccountBank, Currency: "UAH"},
		{ID: "acc-2", Name: "Travel card", Description: "Reserve for trips", UserID: user.ID, Type: models.AccountCard, Currency: "UAH"},
		{ID: "acc-3", Name: "Cash", Description: "Wallet", UserID: user.ID, Type: models.AccountCash, Currency: "UAH"},
	}

	categories := []models.Category{
		{ID: "cat-1", Name: "Groceries", Description: "Supermarket and cafes", UserID: user.ID, Type: models.CategoryExpenses, Icon: "shopping-cart"},
		{ID: "cat-2", Name: "Home", Description: "Utilities and household", UserID: user.ID, Type: models.CategoryExpenses, Icon: "home"},
		{ID: "cat-3", Name: "Transport", Description: "Taxi and transit", UserID: user.ID, Type: models.CategoryExpenses, Icon: "truck"},
		{ID: "cat-4", Name: "Salary", Description: "Main income", UserID: user.ID, Type: models.CategoryIncome, Icon: "wallet"},
		{ID: "cat-5", Name: "Freelance", Description: "Project payouts", UserID: user.ID, Type: models.CategoryIncome, Icon: "briefcase"},
	}

	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(filter.DateLayout)
	}
	amount := func(v float64) *float64 { return &v }

	transactions := []models.Transaction{
		{ID: "txn-3", Date: day(-3), Category: categories[4], Account: accounts[0], Direction: models.DirectionIncrease, Type: models.TypeIncome, Amount: 9200, AmountInBase: amount(9200), Currency: "UAH", Comment: "Project payout"},
		{ID: "txn-2", Date: day(-1), Category: categories[2], Account: accounts[1], Direction: models.DirectionDecrease, Type: models.TypeExpense, Amount: 480, AmountInBase: amount(480), Currency: "UAH", Comment: "Taxi"},
		{ID: "txn-1", Date: day(0), Category: categories[0], Account: accounts[0], Direction: models.DirectionDecrease, Type: models.TypeExpense, Amount: 2350, AmountInBase: amount(2350), Currency: "UAH", Comment: "Supermarket"},
	}

	return &SeedData{User: user, Accounts: accounts, Categories: categories, Transactions: transactions}
}

// Seed loads the fixture set into an empty store. A store that already holds
// accounts is left untouched so restarts do not duplicate data.
func (s *Store) Seed(seed *SeedData) error {
	empty, err := s.isEmpty(BucketAccounts)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	if err := s.PutUser(&seed.User); err != nil {
		return err
	}
	for i := range seed.Accounts {
		if err := s.PutAccount(&seed.Accounts[i]); err != nil {
			return err
		}
	}
	for i := range seed.Categories {
		if err := s.PutCategory(&seed.Categories[i]); err != nil {
			return err
		}
	}
	for i := range seed.Transactions {
		if err := s.putTransaction(&seed.Transactions[i]); err != nil {
			return err
		}
	}

	return nil
}
