// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package recommend

import (
	"fmt"
	"math"
)

// Weights are the linear scorer coefficients. They must be non-negative and
// sum to 1 so scores stay in [0,1].
type Weights struct {
	Genre    float64 `koanf:"genre" json:"genre"`
	Cast     float64 `koanf:"cast" json:"cast"`
	Director float64 `koanf:"director" json:"director"`
	Keyword  float64 `koanf:"keyword" json:"keyword"`
}

// DefaultWeights is the canonical weighting: genre dominates, keyword
// overlap is a weak signal.
func DefaultWeights() Weights {
	return Weights{Genre: 0.4, Cast: 0.3, Director: 0.2, Keyword: 0.1}
}

// weightSumTolerance absorbs float literals like 0.1+0.2+0.3+0.4 from YAML.
const weightSumTolerance = 1e-6

// Validate checks non-negativity and that the weights sum to 1.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"genre": w.Genre, "cast": w.Cast, "director": w.Director, "keyword": w.Keyword,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s is negative: %v", name, v)
		}
	}
	sum := w.Genre + w.Cast + w.Director + w.Keyword
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1, got %v", sum)
	}
	return nil
}

// LinearScorer computes a fixed-weight linear combination of the feature
// vector. With binary features and normalized weights the result is in
// [0,1] by construction.
type LinearScorer struct {
	weights Weights
}

// NewLinearScorer returns a scorer using the given weights. Weights are
// assumed validated by config loading.
func NewLinearScorer(w Weights) *LinearScorer {
	return &LinearScorer{weights: w}
}

// Score implements Scorer.
func (s *LinearScorer) Score(f FeatureVector) float64 {
	return s.weights.Genre*f.Genre +
		s.weights.Cast*f.Cast +
		s.weights.Director*f.Director +
		s.weights.Keyword*f.Keyword
}

// Name implements Scorer.
func (s *LinearScorer) Name() string { return "linear" }
