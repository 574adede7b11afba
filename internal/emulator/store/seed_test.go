package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSeedFile(t *testing.T) {
	content := `user:
  id: user-9
  name: Test
  email: test@example.com
  baseCurrency: EUR
accounts:
  - id: acc-9
    name: Checking
    type: BANK_ACCOUNT
    currency: EUR
categories:
  - id: cat-9
    name: Books
    type: EXPENSES
transactions:
  - id: txn-9
    date: "2026-08-10"
    amount: 12.5
    direction: DECREASE
    type: EXPENSE
    currency: EUR
`
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	seed, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("LoadSeedFile() error: %v", err)
	}

	if seed.User.Email != "test@example.com" {
		t.Errorf("User.Email = %q, expected test@example.com", seed.User.Email)
	}
	if len(seed.Accounts) != 1 || seed.Accounts[0].ID != "acc-9" {
		t.Errorf("Accounts = %v, expected [acc-9]", seed.Accounts)
	}
	if len(seed.Categories) != 1 || seed.Categories[0].Name != "Books" {
		t.Errorf("Categories = %v, expected [Books]", seed.Categories)
	}
	if len(seed.Transactions) != 1 || seed.Transactions[0].Amount != 12.5 {
		t.Errorf("Transactions = %v, expected one with amount 12.5", seed.Transactions)
	}
}

func TestLoadSeedFileMissing(t *testing.T) {
	if _, err := LoadSeedFile("/nonexistent/seed.yaml"); err == nil {
		t.Error("LoadSeedFile() with a missing file should fail")
	}
}
