// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package cache

import (
	"testing"
	"time"
)

func TestLRUGetSet(t *testing.T) {
	c := NewLRU[int, string](2, time.Minute)

	if _, ok := c.Get(1); ok {
		t.Fatal("empty cache returned a value")
	}

	c.Set(1, "one")
	if v, ok := c.Get(1); !ok || v != "one" {
		t.Errorf("Get(1) = %q, %v", v, ok)
	}

	c.Set(1, "uno")
	if v, _ := c.Get(1); v != "uno" {
		t.Errorf("overwrite failed: %q", v)
	}
	if c.Len() != 1 {
		t.Errorf("len = %d, want 1", c.Len())
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewLRU[int, int](2, time.Minute)

	c.Set(1, 10)
	c.Set(2, 20)
	c.Get(1) // 1 becomes most recently used
	c.Set(3, 30)

	if _, ok := c.Get(2); ok {
		t.Error("least recently used entry survived eviction")
	}
	if _, ok := c.Get(1); !ok {
		t.Error("recently used entry evicted")
	}
	if _, ok := c.Get(3); !ok {
		t.Error("new entry missing")
	}
}

func TestLRUExpiration(t *testing.T) {
	c := NewLRU[string, int](10, 10*time.Millisecond)

	c.Set("k", 1)
	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expired entry still returned")
	}
}

func TestLRUStats(t *testing.T) {
	c := NewLRU[int, int](10, time.Minute)
	c.Set(1, 1)
	c.Get(1)
	c.Get(2)

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits, %d misses, want 1/1", hits, misses)
	}
}
