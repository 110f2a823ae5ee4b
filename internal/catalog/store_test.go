// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package catalog

import (
	"errors"
	"sync"
	"testing"
)

func TestStoreLifecycle(t *testing.T) {
	var (
		mu      sync.Mutex
		fail    bool
		loadErr = errors.New("boom")
	)
	store := NewStore(func() (*Catalog, error) {
		mu.Lock()
		defer mu.Unlock()
		if fail {
			return nil, loadErr
		}
		return New([]Movie{{ID: 1, Title: "First"}}), nil
	})

	if got := store.State(); got != StateUnloaded {
		t.Fatalf("initial state = %v, want unloaded", got)
	}
	if _, err := store.Snapshot(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Snapshot before load: err = %v, want ErrNotReady", err)
	}

	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := store.State(); got != StateReady {
		t.Fatalf("state after load = %v, want ready", got)
	}
	c, err := store.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("snapshot len = %d, want 1", c.Len())
	}
	if store.LoadedAt().IsZero() {
		t.Error("LoadedAt is zero after successful load")
	}

	// failed reload keeps the previous snapshot and stays ready
	mu.Lock()
	fail = true
	mu.Unlock()
	if err := store.Load(); !errors.Is(err, loadErr) {
		t.Fatalf("reload err = %v, want loader error", err)
	}
	if got := store.State(); got != StateReady {
		t.Fatalf("state after failed reload = %v, want ready", got)
	}
	c2, err := store.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot after failed reload: %v", err)
	}
	if c2 != c {
		t.Error("failed reload replaced the snapshot")
	}
}

func TestStoreFirstLoadFailure(t *testing.T) {
	store := NewStore(func() (*Catalog, error) {
		return nil, errors.New("no source")
	})
	if err := store.Load(); err == nil {
		t.Fatal("expected load error")
	}
	if got := store.State(); got != StateFailed {
		t.Fatalf("state = %v, want failed", got)
	}
	if store.Ready() {
		t.Error("Ready() = true after failed first load")
	}
}

func TestCatalogDuplicateIDs(t *testing.T) {
	c := New([]Movie{
		{ID: 1, Title: "First"},
		{ID: 1, Title: "Duplicate"},
		{ID: 2, Title: "Second"},
	})
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	m, _ := c.Lookup(1)
	if m.Title != "First" {
		t.Errorf("duplicate id: first occurrence should win, got %q", m.Title)
	}
	if got := c.All(); got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("All() order not load order: %v", got)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateUnloaded, "unloaded"},
		{StateLoading, "loading"},
		{StateReady, "ready"},
		{StateFailed, "failed"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
