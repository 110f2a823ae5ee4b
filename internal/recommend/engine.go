// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package recommend

import (
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinerec/cinerec/internal/catalog"
	"github.com/cinerec/cinerec/internal/logging"
	"github.com/cinerec/cinerec/internal/metrics"
)

// Options tunes the recommendation pipeline.
type Options struct {
	// DefaultK is the list length used when a request does not specify k.
	DefaultK int
	// MaxK caps the requested list length.
	MaxK int
	// MinKeywordLen is the minimum overview token length that counts as a
	// keyword.
	MinKeywordLen int
}

// DefaultOptions returns the canonical pipeline settings.
func DefaultOptions() Options {
	return Options{DefaultK: 8, MaxK: 50, MinKeywordLen: 3}
}

// Engine runs the scoring and ranking pipeline over a catalog snapshot.
// It is stateless between calls and safe for concurrent use as long as the
// scorer is.
type Engine struct {
	scorer Scorer
	opts   Options
	logger zerolog.Logger
}

// NewEngine creates an engine with the given scorer and options.
func NewEngine(scorer Scorer, opts Options) *Engine {
	if opts.DefaultK <= 0 {
		opts.DefaultK = DefaultOptions().DefaultK
	}
	if opts.MaxK <= 0 {
		opts.MaxK = DefaultOptions().MaxK
	}
	if opts.MinKeywordLen <= 0 {
		opts.MinKeywordLen = DefaultOptions().MinKeywordLen
	}
	return &Engine{
		scorer: scorer,
		opts:   opts,
		logger: logging.With().Str("component", "recommend").Str("scorer", scorer.Name()).Logger(),
	}
}

// Options returns the effective pipeline settings.
func (e *Engine) Options() Options {
	return e.opts
}

// Recommend scores every catalog movie not in the user's watched or
// watchlist sets against a profile built from watchedIDs and returns the
// top k by score. Ties and equal scores keep catalog load order, so the
// result is deterministic for a fixed snapshot. k <= 0 selects the default,
// values over the cap are clamped.
func (e *Engine) Recommend(c *catalog.Catalog, watchedIDs, watchlistIDs []int, k int) []Recommendation {
	start := time.Now()
	metrics.RecommendRequests.Inc()

	if k <= 0 {
		k = e.opts.DefaultK
	}
	if k > e.opts.MaxK {
		k = e.opts.MaxK
	}

	excluded := make(map[int]struct{}, len(watchedIDs)+len(watchlistIDs))
	for _, id := range watchedIDs {
		excluded[id] = struct{}{}
	}
	for _, id := range watchlistIDs {
		excluded[id] = struct{}{}
	}

	prefs := BuildPreferences(c, watchedIDs, e.opts.MinKeywordLen)

	scored := make([]Recommendation, 0, c.Len())
	for _, m := range c.All() {
		if _, skip := excluded[m.ID]; skip {
			continue
		}
		f := ExtractFeatures(m, prefs, e.opts.MinKeywordLen)
		scored = append(scored, Recommendation{
			MovieID: m.ID,
			Title:   m.Title,
			Score:   e.scorer.Score(f),
		})
	}
	metrics.RecommendCandidates.Observe(float64(len(scored)))

	// stable keeps catalog load order for equal scores
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > k {
		scored = scored[:k]
	}

	elapsed := time.Since(start)
	metrics.RecommendDuration.Observe(elapsed.Seconds())
	e.logger.Debug().
		Int("watched", len(watchedIDs)).
		Int("watchlist", len(watchlistIDs)).
		Int("k", k).
		Int("results", len(scored)).
		Dur("elapsed", elapsed).
		Msg("Recommendations computed")
	return scored
}

// Random returns a uniformly random catalog movie, used by the unscored
// sampling endpoint. Returns false for an empty catalog.
func (e *Engine) Random(c *catalog.Catalog) (catalog.Movie, bool) {
	all := c.All()
	if len(all) == 0 {
		return catalog.Movie{}, false
	}
	return all[rand.Intn(len(all))], true //nolint:gosec // sampling, not crypto
}
