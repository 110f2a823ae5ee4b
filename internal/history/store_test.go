// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package history

import (
	"reflect"
	"testing"

	"github.com/dgraph-io/badger/v4"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close badger: %v", err)
		}
	})
	return NewStore(db)
}

func TestGetMissingUserReturnsEmptyHistory(t *testing.T) {
	s := newTestStore(t)

	h, err := s.Get("nobody")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if h.Watched == nil || h.Watchlist == nil {
		t.Fatal("missing user history has nil slices")
	}
	if len(h.Watched) != 0 || len(h.Watchlist) != 0 {
		t.Errorf("missing user history not empty: %+v", h)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := WatchHistory{Watchlist: []int{5, 6}, Watched: []int{1, 2, 3}}
	if err := s.Put("alice", want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get("alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get = %+v, want %+v", got, want)
	}

	// other users unaffected
	other, err := s.Get("bob")
	if err != nil {
		t.Fatalf("Get other: %v", err)
	}
	if len(other.Watched) != 0 {
		t.Errorf("unrelated user sees history: %+v", other)
	}
}

func TestPutOverwrites(t *testing.T) {
	s := newTestStore(t)

	if err := s.Put("alice", WatchHistory{Watched: []int{1}, Watchlist: []int{}}); err != nil {
		t.Fatal(err)
	}
	want := WatchHistory{Watched: []int{2, 3}, Watchlist: []int{9}}
	if err := s.Put("alice", want); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get("alice")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get after overwrite = %+v, want %+v", got, want)
	}
}

func TestHealthy(t *testing.T) {
	s := newTestStore(t)
	if !s.Healthy() {
		t.Error("open store reported unhealthy")
	}
}

func TestOpenInMemory(t *testing.T) {
	s, db, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close() //nolint:errcheck // test cleanup

	if err := s.Put("u", WatchHistory{Watched: []int{7}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	h, err := s.Get("u")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(h.Watched) != 1 || h.Watched[0] != 7 {
		t.Errorf("round trip = %+v", h)
	}
}
