// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package catalog

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cinerec/cinerec/internal/logging"
	"github.com/cinerec/cinerec/internal/metrics"
)

// State is the catalog lifecycle state.
type State int32

// Lifecycle states. A store starts Unloaded, moves to Loading on the first
// Load, and then settles in Ready or Failed. Reloads from Ready that fail
// keep the previous snapshot and return to Ready.
const (
	StateUnloaded State = iota
	StateLoading
	StateReady
	StateFailed
)

// String returns the lowercase state name for logs and health responses.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrNotReady is returned by Snapshot before the first successful load.
var ErrNotReady = errors.New("catalog not ready")

// LoaderFunc produces a fresh catalog from the configured source.
type LoaderFunc func() (*Catalog, error)

// Store owns the live catalog snapshot. Reads go through an atomic pointer
// so request handlers never block on a reload; writes are serialized by a
// mutex so concurrent reload requests cannot interleave.
type Store struct {
	loader LoaderFunc

	mu       sync.Mutex
	state    atomic.Int32
	snapshot atomic.Pointer[Catalog]
	loadedAt atomic.Pointer[time.Time]
}

// NewStore creates an unloaded store backed by loader.
func NewStore(loader LoaderFunc) *Store {
	s := &Store{loader: loader}
	s.state.Store(int32(StateUnloaded))
	return s
}

// NewFileStore creates a store that loads from the CSV file at path.
func NewFileStore(path string) *Store {
	return NewStore(func() (*Catalog, error) {
		return LoadCSV(path)
	})
}

// Load runs the loader and, on success, atomically swaps in the new
// snapshot. On failure any previous snapshot is kept so in-flight traffic
// keeps a consistent view; only the very first load leaves the store Failed.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logging.With().Str("component", "catalog").Logger()

	prev := State(s.state.Load())
	s.state.Store(int32(StateLoading))

	start := time.Now()
	c, err := s.loader()
	if err != nil {
		metrics.CatalogLoads.WithLabelValues("failure").Inc()
		if s.snapshot.Load() != nil {
			// keep serving the old snapshot
			s.state.Store(int32(StateReady))
			log.Error().Err(err).Msg("Catalog reload failed, keeping previous snapshot")
		} else {
			s.state.Store(int32(StateFailed))
			log.Error().Err(err).Str("previous_state", prev.String()).Msg("Catalog load failed")
		}
		return err
	}

	s.snapshot.Store(c)
	now := time.Now()
	s.loadedAt.Store(&now)
	s.state.Store(int32(StateReady))

	metrics.CatalogLoads.WithLabelValues("success").Inc()
	metrics.CatalogMovies.Set(float64(c.Len()))
	log.Info().
		Int("movies", c.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Catalog snapshot swapped")
	return nil
}

// Snapshot returns the current catalog. It is safe for concurrent use and
// never blocks on a reload in progress.
func (s *Store) Snapshot() (*Catalog, error) {
	c := s.snapshot.Load()
	if c == nil {
		return nil, ErrNotReady
	}
	return c, nil
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	return State(s.state.Load())
}

// Ready reports whether a snapshot is available to serve.
func (s *Store) Ready() bool {
	return s.snapshot.Load() != nil
}

// Len returns the size of the current snapshot, 0 if not loaded.
func (s *Store) Len() int {
	if c := s.snapshot.Load(); c != nil {
		return c.Len()
	}
	return 0
}

// LoadedAt returns the time of the last successful load, zero if none.
func (s *Store) LoadedAt() time.Time {
	if t := s.loadedAt.Load(); t != nil {
		return *t
	}
	return time.Time{}
}
