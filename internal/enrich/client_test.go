// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package enrich

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cinerec/cinerec/internal/recommend"
)

func TestLookupDisabledWithoutAPIKey(t *testing.T) {
	c := NewClient(Config{})
	if c.Enabled() {
		t.Fatal("client without API key reports enabled")
	}
	if _, err := c.Lookup(context.Background(), 1); !errors.Is(err, ErrDisabled) {
		t.Fatalf("err = %v, want ErrDisabled", err)
	}
}

func TestLookupSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/42" {
			t.Errorf("path = %q, want /movie/42", r.URL.Path)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("api_key = %q, want test-key", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":42,"title":"The Answer","poster_path":"/p.jpg","vote_average":7.5,"release_date":"1979-10-12"}`)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
	d, err := c.Lookup(context.Background(), 42)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if d.Title != "The Answer" || d.PosterPath != "/p.jpg" || d.VoteAverage != 7.5 {
		t.Errorf("unexpected details: %+v", d)
	}
}

func TestLookupCachesDetails(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":42,"title":"Cached"}`)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
	for i := 0; i < 3; i++ {
		d, err := c.Lookup(context.Background(), 42)
		if err != nil {
			t.Fatalf("Lookup %d: %v", i, err)
		}
		if d.Title != "Cached" {
			t.Fatalf("Lookup %d title = %q", i, d.Title)
		}
	}
	if calls != 1 {
		t.Errorf("backend called %d times, want 1", calls)
	}
}

func TestLookupNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
	if _, err := c.Lookup(context.Background(), 42); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestEnrichPreservesOrderAndFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/movie/2" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":1,"title":"Enriched","poster_path":"/one.jpg","vote_average":8.1}`)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
	recs := []recommend.Recommendation{
		{MovieID: 1, Title: "Original One", Score: 0.9},
		{MovieID: 2, Title: "Original Two", Score: 0.4},
	}

	got := c.Enrich(context.Background(), recs)
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("order not preserved: %+v", got)
	}
	if got[0].Title != "Enriched" || got[0].PosterPath != "/one.jpg" {
		t.Errorf("item 0 not enriched: %+v", got[0])
	}
	if got[1].Title != "Original Two" || got[1].PosterPath != "" {
		t.Errorf("item 1 lost fallback fields: %+v", got[1])
	}
	if got[1].Score != 0.4 {
		t.Errorf("item 1 score = %v, want 0.4", got[1].Score)
	}
}

func TestEnrichDisabledUsesFallback(t *testing.T) {
	c := NewClient(Config{})
	recs := []recommend.Recommendation{{MovieID: 7, Title: "Plain", Score: 0.3}}

	got := c.Enrich(context.Background(), recs)
	if len(got) != 1 {
		t.Fatalf("got %d items, want 1", len(got))
	}
	if got[0].ID != 7 || got[0].Title != "Plain" || got[0].PosterPath != "" {
		t.Errorf("fallback item = %+v", got[0])
	}
}
