// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package recommend

import (
	"math"
	"math/rand"
)

// neuralSeed fixes the weight initialization so the neural scorer is
// deterministic across restarts and replicas.
const neuralSeed = 42

// NeuralScorer is a small dense network (4 -> 16 -> 8 -> 1, ReLU hidden
// layers, sigmoid output) over the feature vector. It is an alternative
// scoring backend selected via config; with untrained weights it provides
// a deterministic nonlinear combination rather than learned relevance.
type NeuralScorer struct {
	w1 [16][4]float64
	b1 [16]float64
	w2 [8][16]float64
	b2 [8]float64
	w3 [8]float64
	b3 float64
}

// NewNeuralScorer builds the network with seeded Xavier-style weights.
func NewNeuralScorer() *NeuralScorer {
	rng := rand.New(rand.NewSource(neuralSeed)) //nolint:gosec // deterministic init, not crypto
	s := &NeuralScorer{}

	scale1 := math.Sqrt(2.0 / 4.0)
	for i := range s.w1 {
		for j := range s.w1[i] {
			s.w1[i][j] = rng.NormFloat64() * scale1
		}
	}
	scale2 := math.Sqrt(2.0 / 16.0)
	for i := range s.w2 {
		for j := range s.w2[i] {
			s.w2[i][j] = rng.NormFloat64() * scale2
		}
	}
	scale3 := math.Sqrt(2.0 / 8.0)
	for i := range s.w3 {
		s.w3[i] = rng.NormFloat64() * scale3
	}
	return s
}

// Score implements Scorer.
func (s *NeuralScorer) Score(f FeatureVector) float64 {
	in := [4]float64{f.Genre, f.Cast, f.Director, f.Keyword}

	var h1 [16]float64
	for i := range s.w1 {
		sum := s.b1[i]
		for j, w := range s.w1[i] {
			sum += w * in[j]
		}
		h1[i] = relu(sum)
	}

	var h2 [8]float64
	for i := range s.w2 {
		sum := s.b2[i]
		for j, w := range s.w2[i] {
			sum += w * h1[j]
		}
		h2[i] = relu(sum)
	}

	out := s.b3
	for i, w := range s.w3 {
		out += w * h2[i]
	}
	return sigmoid(out)
}

// Name implements Scorer.
func (s *NeuralScorer) Name() string { return "neural" }

func relu(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
