// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package recommend

import (
	"github.com/cinerec/cinerec/internal/catalog"
)

// BuildPreferences aggregates a taste profile from watched movie ids.
// Ids not present in the catalog snapshot are skipped silently: watch
// history may reference movies outside the current snapshot. Director is
// overwritten by each subsequent watched movie with a non-empty director,
// so the processing order of watchedIDs is significant.
func BuildPreferences(c *catalog.Catalog, watchedIDs []int, minKeywordLen int) UserPreferences {
	prefs := UserPreferences{
		Genres:   make(map[string]struct{}),
		Cast:     make(map[string]struct{}),
		Keywords: make(map[string]struct{}),
	}
	for _, id := range watchedIDs {
		m, ok := c.Lookup(id)
		if !ok {
			continue
		}
		for _, g := range m.Genres {
			prefs.Genres[g] = struct{}{}
		}
		for _, actor := range m.Cast {
			prefs.Cast[actor] = struct{}{}
		}
		for _, kw := range m.OverviewTokens(minKeywordLen) {
			prefs.Keywords[kw] = struct{}{}
		}
		if m.Director != "" {
			prefs.Director = m.Director
		}
	}
	return prefs
}

// ExtractFeatures computes the binary match vector for a candidate movie
// against a preference profile. A component is 1 when any overlap exists,
// regardless of how many elements overlap.
func ExtractFeatures(m catalog.Movie, prefs UserPreferences, minKeywordLen int) FeatureVector {
	var f FeatureVector
	for _, g := range m.Genres {
		if _, ok := prefs.Genres[g]; ok {
			f.Genre = 1
			break
		}
	}
	for _, actor := range m.Cast {
		if _, ok := prefs.Cast[actor]; ok {
			f.Cast = 1
			break
		}
	}
	if m.Director != "" && m.Director == prefs.Director {
		f.Director = 1
	}
	for _, kw := range m.OverviewTokens(minKeywordLen) {
		if _, ok := prefs.Keywords[kw]; ok {
			f.Keyword = 1
			break
		}
	}
	return f
}
