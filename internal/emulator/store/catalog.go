package store

import (
	"encoding/json"
	"fmt"

	"github.com/azhovnerik/personal-finance-mobile/pkg/models"
)

const metaKeyUser = "user"

// PutAccount stores an account keyed by its id.
func (s *Store) PutAccount(account *models.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}
	return s.put(BucketAccounts, []byte(account.ID), data)
}

// GetAccount retrieves an account by id.
func (s *Store) GetAccount(id string) (*models.Account, error) {
	data, err := s.get(BucketAccounts, []byte(id))
	if err != nil {
		return nil, err
	}
	var account models.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}
	return &account, nil
}

// ListAccounts retrieves all accounts.
func (s *Store) ListAccounts() ([]models.Account, error) {
	var accounts []models.Account
	err := s.forEach(BucketAccounts, func(_, v []byte) error {
		var account models.Account
		if err := json.Unmarshal(v, &account); err != nil {
			return fmt.Errorf("failed to unmarshal account: %w", err)
		}
		accounts = append(accounts, account)
		return nil
	})
	return accounts, err
}

// PutCategory stores a category keyed by its id.
func (s *Store) PutCategory(category *models.Category) error {
	data, err := json.Marshal(category)
	if err != nil {
		return fmt.Errorf("failed to marshal category: %w", err)
	}
	return s.put(BucketCategories, []byte(category.ID), data)
}

// GetCategory retrieves a category by id.
func (s *Store) GetCategory(id string) (*models.Category, error) {
	data, err := s.get(BucketCategories, []byte(id))
	if err != nil {
		return nil, err
	}
	var category models.Category
	if err := json.Unmarshal(data, &category); err != nil {
		return nil, fmt.Errorf("failed to unmarshal category: %w", err)
	}
	return &category, nil
}

// ListCategories retrieves all categories.
func (s *Store) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.forEach(BucketCategories, func(_, v []byte) error {
		var category models.Category
		if err := json.Unmarshal(v, &category); err != nil {
			return fmt.Errorf("failed to unmarshal category: %w", err)
		}
		categories = append(categories, category)
		return nil
	})
	return categories, err
}

// CategoryTree returns the nested category tree, optionally restricted to one
// category type.
func (s *Store) CategoryTree(categoryType models.CategoryType) ([]models.CategoryNode, error) {
	categories, err := s.ListCategories()
	if err != nil {
		return nil, err
	}
	return models.BuildCategoryTree(categories, categoryType), nil
}

// PutUser stores the emulator's single user.
func (s *Store) PutUser(user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	return s.put(BucketMeta, []byte(metaKeyUser), data)
}

// GetUser retrieves the emulator's single user.
func (s *Store) GetUser() (*models.User, error) {
	data, err := s.get(BucketMeta, []byte(metaKeyUser))
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}
