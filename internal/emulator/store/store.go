// Package store persists the emulator's data set in a bbolt database, one
// bucket per entity kind.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// Bucket names.
const (
	BucketTokens       = "tokens"
	BucketTransactions = "transactions"
	BucketAccounts     = "accounts"
	BucketCategories   = "categories"
	BucketIdempotency  = "idempotency"
	BucketMeta         = "meta"
)

// Store represents the bbolt database wrapper.
type Store struct {
	db *bolt.DB
}

// New creates a new Store instance and initializes buckets.
func New(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		buckets := []string{BucketTokens, BucketTransactions, BucketAccounts, BucketCategories, BucketIdempotency, BucketMeta}
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// nextSeq generates the next sequence number for a bucket. Sequence-ordered
// keys keep iteration in insertion order.
func (s *Store) nextSeq(bucketName string) (uint64, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}

		next, err := b.NextSequence()
		if err != nil {
			return err
		}
		seq = next
		return nil
	})
	return seq, err
}

// put stores raw bytes in the specified bucket.
func (s *Store) put(bucketName string, key, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}
		return b.Put(key, value)
	})
}

// get retrieves raw bytes from the specified bucket.
func (s *Store) get(bucketName string, key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}

		data := b.Get(key)
		if data == nil {
			return ErrNotFound
		}

		value = make([]byte, len(data))
		copy(value, data)
		return nil
	})
	return value, err
}

// delete removes a key from the specified bucket.
func (s *Store) delete(bucketName string, key []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}
		return b.Delete(key)
	})
}

// forEach iterates all key/value pairs of a bucket. Values are copied since
// they are only valid during the transaction.
func (s *Store) forEach(bucketName string, fn func(k, v []byte) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}

		return b.ForEach(func(k, v []byte) error {
			key := make([]byte, len(k))
			copy(key, k)
			value := make([]byte, len(v))
			copy(value, v)
			return fn(key, value)
		})
	})
}

// isEmpty reports whether a bucket holds no keys.
func (s *Store) isEmpty(bucketName string) (bool, error) {
	empty := true
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}
		k, _ := b.Cursor().First()
		empty = k == nil
		return nil
	})
	return empty, err
}

// PutString stores a string value with a string key.
func (s *Store) PutString(bucketName, key, value string) error {
	return s.put(bucketName, []byte(key), []byte(value))
}

// GetString retrieves a string value with a string key.
func (s *Store) GetString(bucketName, key string) (string, error) {
	data, err := s.get(bucketName, []byte(key))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DeleteString removes a value with a string key.
func (s *Store) DeleteString(bucketName, key string) error {
	return s.delete(bucketName, []byte(key))
}

// itob converts a uint64 to a byte slice for use as a sequence-ordered key.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
