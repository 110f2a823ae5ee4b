// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package history

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"

	"github.com/cinerec/cinerec/internal/metrics"
)

// keyPrefix namespaces watch history documents in the shared database.
const keyPrefix = "history:"

// WatchHistory is the per-user watch history document. A user with no
// stored document has empty (never nil after Get) slices.
type WatchHistory struct {
	Watchlist []int `json:"watchlist"`
	Watched   []int `json:"watched"`
}

// Store persists watch history documents in BadgerDB, one document per
// user keyed by user id.
type Store struct {
	db *badger.DB
}

// NewStore wraps an open BadgerDB. The caller owns the database lifecycle.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

// Open opens a BadgerDB at path and returns a store backed by it.
// An empty path opens an in-memory database, used by tests and ephemeral
// deployments.
func Open(path string) (*Store, *badger.DB, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("open badger db for history: %w", err)
	}
	return NewStore(db), db, nil
}

func historyKey(userID string) []byte {
	return []byte(keyPrefix + userID)
}

// Get returns the watch history for userID. A missing document is not an
// error; it yields an empty history so new users need no initialization
// step.
func (s *Store) Get(userID string) (WatchHistory, error) {
	h := WatchHistory{Watchlist: []int{}, Watched: []int{}}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(historyKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &h)
		})
	})
	if err != nil {
		metrics.HistoryStoreOps.WithLabelValues("get", "failure").Inc()
		return WatchHistory{}, fmt.Errorf("get history for user %s: %w", userID, err)
	}
	if h.Watchlist == nil {
		h.Watchlist = []int{}
	}
	if h.Watched == nil {
		h.Watched = []int{}
	}

	metrics.HistoryStoreOps.WithLabelValues("get", "success").Inc()
	return h, nil
}

// Put replaces the watch history document for userID.
func (s *Store) Put(userID string, h WatchHistory) error {
	data, err := json.Marshal(h)
	if err != nil {
		metrics.HistoryStoreOps.WithLabelValues("put", "failure").Inc()
		return fmt.Errorf("marshal history for user %s: %w", userID, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(historyKey(userID), data)
	})
	if err != nil {
		metrics.HistoryStoreOps.WithLabelValues("put", "failure").Inc()
		return fmt.Errorf("put history for user %s: %w", userID, err)
	}

	metrics.HistoryStoreOps.WithLabelValues("put", "success").Inc()
	return nil
}

// Healthy reports whether the database accepts read transactions.
func (s *Store) Healthy() bool {
	err := s.db.View(func(txn *badger.Txn) error { return nil })
	return err == nil
}

// RunGC triggers one value log garbage collection cycle. Badger returns
// ErrNoRewrite when there is nothing to collect; callers treat that as
// success.
func (s *Store) RunGC(ratio float64) error {
	return s.db.RunValueLogGC(ratio)
}
