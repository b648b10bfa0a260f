// Package store contains all persistence logic for the parking application.
// The whole state is kept under one fixed key in a key-value medium; the
// StateStore handles the JSON round-trip and treats the medium as a black box
// behind the KV interface. No business logic lives here — only encoding,
// decoding, and shape validation.
package store

import (
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// KV is the minimal key-value capability the StateStore needs: read a value
// that may be absent, and atomically overwrite a value. The service layer
// depends on StateStore, which depends on this interface, so tests can swap
// in an in-memory implementation.
type KV interface {
	// Get returns the value stored under key and whether the key exists.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	// The write is all-or-nothing: a failed Set leaves the old value intact.
	Set(ctx context.Context, key string, value []byte) error
}

// bucketName is the single bbolt bucket holding all application keys.
var bucketName = []byte("gestion-parking")

// BoltKV is a KV backed by a bbolt file — durable, local, single-process.
type BoltKV struct {
	db *bolt.DB
}

// OpenBolt opens (creating if necessary) the bbolt database at path and
// ensures the application bucket exists. The returned store must be closed
// by the caller.
func OpenBolt(path string) (*BoltKV, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("store.OpenBolt: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store.OpenBolt: create bucket: %w", err)
	}
	return &BoltKV{db: db}, nil
}

// Get reads the value under key inside a read-only transaction.
// The returned slice is copied out of the transaction, so it stays valid
// after Get returns.
func (s *BoltKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("store.BoltKV.Get: %w", err)
	}
	return value, value != nil, nil
}

// Set writes the value under key in a single write transaction. bbolt
// commits are atomic, so a crash mid-write never leaves a partial value.
func (s *BoltKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("store.BoltKV.Set: %w", err)
	}
	return nil
}

// Close releases the underlying bbolt file.
func (s *BoltKV) Close() error {
	return s.db.Close()
}
