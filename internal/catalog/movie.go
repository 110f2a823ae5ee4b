// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package catalog

import (
	"strings"
)

// Movie is an immutable catalog record. Instances are created once at load
// and shared read-only across requests; callers must not mutate the slices.
type Movie struct {
	// ID is the unique movie identifier, the primary key for all lookups
	// and exclusion sets.
	ID int `json:"id"`

	// Title is the movie title, always non-empty for loaded rows.
	Title string `json:"title"`

	// Genres is the deduplicated genre list in source order.
	Genres []string `json:"genres"`

	// Cast is the deduplicated cast list in source order.
	Cast []string `json:"cast"`

	// Director may be empty.
	Director string `json:"director,omitempty"`

	// Overview is free text, tokenized on demand via OverviewTokens.
	Overview string `json:"overview,omitempty"`

	// Display-only metadata, never used in scoring.
	ReleaseDate string  `json:"release_date,omitempty"`
	PosterPath  string  `json:"poster_path,omitempty"`
	VoteAverage float64 `json:"vote_average,omitempty"`
}

// OverviewTokens returns the lowercase whitespace-split tokens of the
// overview with fewer than minLen characters filtered out. Tokenization is
// done on demand because the length threshold varies by caller.
func (m Movie) OverviewTokens(minLen int) []string {
	fields := strings.Fields(strings.ToLower(m.Overview))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Catalog is an immutable-after-construction movie collection providing O(1)
// lookup by id plus stable load-order iteration. The iteration order is part
// of the contract: it is the deterministic tie-break for ranking.
type Catalog struct {
	movies []Movie
	byID   map[int]int // id -> index in movies
}

// New builds a Catalog from movies in load order. Later duplicates of an id
// are ignored; the first occurrence wins.
func New(movies []Movie) *Catalog {
	c := &Catalog{
		movies: make([]Movie, 0, len(movies)),
		byID:   make(map[int]int, len(movies)),
	}
	for _, m := range movies {
		if _, exists := c.byID[m.ID]; exists {
			continue
		}
		c.byID[m.ID] = len(c.movies)
		c.movies = append(c.movies, m)
	}
	return c
}

// Lookup returns the movie with the given id.
func (c *Catalog) Lookup(id int) (Movie, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Movie{}, false
	}
	return c.movies[idx], true
}

// All returns all movies in load order. The returned slice is shared and
// must be treated as read-only.
func (c *Catalog) All() []Movie {
	return c.movies
}

// Len returns the number of movies in the catalog.
func (c *Catalog) Len() int {
	return len(c.movies)
}
