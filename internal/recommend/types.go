// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package recommend

// UserPreferences is the aggregated taste profile built from a user's watch
// history. Genres, cast and keywords are unioned sets; director is a scalar
// where the last watched movie with a non-empty director wins.
type UserPreferences struct {
	Genres   map[string]struct{}
	Cast     map[string]struct{}
	Director string
	Keywords map[string]struct{}
}

// Empty reports whether the profile carries no signal at all. With an empty
// profile every candidate scores zero and ranking degenerates to catalog
// order.
func (p UserPreferences) Empty() bool {
	return len(p.Genres) == 0 && len(p.Cast) == 0 && p.Director == "" && len(p.Keywords) == 0
}

// FeatureVector is the ordered per-candidate match tuple. Components are
// binary: 1 when the candidate shares at least one element with the
// corresponding preference set (exact string equality for director), else 0.
type FeatureVector struct {
	Genre    float64
	Cast     float64
	Director float64
	Keyword  float64
}

// Scorer maps a feature vector to a relevance score in [0,1]. Scoring must
// be deterministic and depend only on the feature vector.
type Scorer interface {
	// Score returns the relevance of a candidate given its features.
	Score(f FeatureVector) float64
	// Name identifies the scorer in logs and config.
	Name() string
}

// Recommendation is a scored candidate in ranked order.
type Recommendation struct {
	MovieID int
	Title   string
	Score   float64
}
