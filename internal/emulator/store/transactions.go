package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/azhovnerik/personal-finance-mobile/pkg/filter"
	"github.com/azhovnerik/personal-finance-mobile/pkg/models"
)

// CreateTransaction resolves the referenced account and category and stores a
// new transaction. When the request carries an idempotency key that was seen
// before, the previously created record is returned instead of a duplicate.
func (s *Store) CreateTransaction(req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if req.IdempotencyKey != "" {
		if id, err := s.GetString(BucketIdempotency, req.IdempotencyKey); err == nil {
			return s.GetTransaction(id)
		} else if err != ErrNotFound {
			return nil, err
		}
	}

	category, err := s.GetCategory(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", req.CategoryID, err)
	}
	account, err := s.GetAccount(req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", req.AccountID, err)
	}

	amountInBase := req.Amount
	if req.AmountInBase != nil {
		amountInBase = *req.AmountInBase
	}
	currency := req.Currency
	if currency == "" {
		currency = account.Currency
	}

	txn := &models.Transaction{
		ID:           uuid.NewString(),
		Date:         req.Date,
		Category:     *category,
		Account:      *account,
		Direction:    req.Direction,
		Type:         req.Type,
		Amount:       req.Amount,
		AmountInBase: &amountInBase,
		Currency:     currency,
		Comment:      req.Comment,
	}

	if err := s.putTransaction(txn); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" {
		if err := s.PutString(BucketIdempotency, req.IdempotencyKey, txn.ID); err != nil {
			return nil, fmt.Errorf("failed to record idempotency key: %w", err)
		}
	}

	return txn, nil
}

// putTransaction stores a transaction under a fresh sequence key.
func (s *Store) putTransaction(txn *models.Transaction) error {
	seq, err := s.nextSeq(BucketTransactions)
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	data, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	return s.put(BucketTransactions, itob(seq), data)
}

// GetTransaction retrieves a transaction by id.
func (s *Store) GetTransaction(id string) (*models.Transaction, error) {
	_, txn, err := s.findTransaction(id)
	return txn, err
}

// ListTransactions retrieves transactions matching the filter, newest first:
// by calendar date descending, insertion order breaking ties.
func (s *Store) ListTransactions(f filter.Filter) ([]models.Transaction, error) {
	type record struct {
		seq uint64
		txn models.Transaction
	}

	var records []record
	err := s.forEach(BucketTransactions, func(k, v []byte) error {
		var txn models.Transaction
		if err := json.Unmarshal(v, &txn); err != nil {
			return fmt.Errorf("failed to unmarshal transaction: %w", err)
		}
		if f.Matches(txn) {
			records = append(records, record{seq: btoi(k), txn: txn})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	day := func(date string) string {
		if len(date) > len(filter.DateLayout) {
			return date[:len(filter.DateLayout)]
		}
		return date
	}
	sort.Slice(records, func(i, j int) bool {
		di, dj := day(records[i].txn.Date), day(records[j].txn.Date)
		if di != dj {
			return di > dj
		}
		return records[i].seq > records[j].seq
	})

	transactions := make([]models.Transaction, 0, len(records))
	for _, r := range records {
		transactions = append(transactions, r.txn)
	}
	return transactions, nil
}

// DeleteTransaction removes a transaction by id.
func (s *Store) DeleteTransaction(id string) error {
	key, _, err := s.findTransaction(id)
	if err != nil {
		return err
	}
	return s.delete(BucketTransactions, key)
}

// findTransaction scans the bucket for a transaction id. Ids are random, so
// a scan is the lookup; the emulator's data set stays small.
func (s *Store) findTransaction(id string) ([]byte, *models.Transaction, error) {
	var (
		foundKey []byte
		found    *models.Transaction
	)
	err := s.forEach(BucketTransactions, func(k, v []byte) error {
		if found != nil {
			return nil
		}
		var txn models.Transaction
		if err := json.Unmarshal(v, &txn); err != nil {
			return fmt.Errorf("failed to unmarshal transaction: %w", err)
		}
		if txn.ID == id {
			foundKey = k
			found = &txn
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if found == nil {
		return nil, nil, ErrNotFound
	}
	return foundKey, found, nil
}

// btoi converts a sequence-ordered key back to its uint64 value.
func btoi(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
