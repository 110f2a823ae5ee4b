// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package services

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/cinerec/cinerec/internal/history"
	"github.com/cinerec/cinerec/internal/logging"
)

// HistoryGCService periodically runs BadgerDB value log garbage
// collection for the watch history store. Badger does not reclaim value
// log space on its own; this loop keeps the on-disk footprint bounded.
type HistoryGCService struct {
	store    *history.Store
	interval time.Duration
	ratio    float64
}

// NewHistoryGCService creates the GC loop. interval defaults to 5m and
// ratio to 0.5 when unset.
func NewHistoryGCService(store *history.Store, interval time.Duration, ratio float64) *HistoryGCService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.5
	}
	return &HistoryGCService{store: store, interval: interval, ratio: ratio}
}

// Serve implements suture.Service.
func (s *HistoryGCService) Serve(ctx context.Context) error {
	log := logging.With().Str("component", "history-gc").Logger()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// one GC call rewrites at most one value log file, loop
			// until badger reports nothing left to rewrite
			for {
				err := s.store.RunGC(s.ratio)
				if errors.Is(err, badger.ErrNoRewrite) {
					break
				}
				if err != nil {
					log.Warn().Err(err).Msg("History store GC failed")
					break
				}
				log.Debug().Msg("History store GC reclaimed a value log file")
			}
		}
	}
}

// String implements fmt.Stringer for suture log messages.
func (s *HistoryGCService) String() string {
	return "history-gc"
}
