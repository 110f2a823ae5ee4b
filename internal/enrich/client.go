// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/cinerec/cinerec/internal/cache"
	"github.com/cinerec/cinerec/internal/logging"
	"github.com/cinerec/cinerec/internal/metrics"
	"github.com/cinerec/cinerec/internal/models"
	"github.com/cinerec/cinerec/internal/recommend"
)

// breakerName labels circuit breaker metrics for the movie-info backend.
const breakerName = "tmdb-api"

// ErrDisabled is returned by Lookup when no API credential is configured.
var ErrDisabled = errors.New("enrichment disabled: no API key configured")

// Config holds the movie-info backend settings.
type Config struct {
	APIKey     string        `koanf:"api_key"`
	BaseURL    string        `koanf:"base_url"`
	Timeout    time.Duration `koanf:"timeout"`
	RateLimit  float64       `koanf:"rate_limit"`
	RateBurst  int           `koanf:"rate_burst"`
	MaxRetries int           `koanf:"max_retries"`
	CacheSize  int           `koanf:"cache_size"`
	CacheTTL   time.Duration `koanf:"cache_ttl"`
}

// DefaultConfig returns production defaults. Enrichment stays disabled
// until an API key is provided.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://api.themoviedb.org/3",
		Timeout:   10 * time.Second,
		RateLimit: 20,
		RateBurst: 40,
		CacheSize: 4096,
		CacheTTL:  time.Hour,
	}
}

// Details is the subset of the movie-info response surfaced to clients.
type Details struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
}

// Client fetches movie details from the TMDB API with rate limiting and a
// circuit breaker. A client without an API key is valid and permanently
// reports ErrDisabled; enrichment then degrades to id/title fallbacks.
type Client struct {
	cfg     Config
	httpc   *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[Details]
	cache   *cache.LRU[int, Details]
}

// NewClient builds a client from cfg, wiring breaker state into metrics.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultConfig().RateLimit
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = DefaultConfig().RateBurst
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultConfig().CacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[Details](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().
				Str("breaker", name).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("Enrichment circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &Client{
		cfg:     cfg,
		httpc:   &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		cb:      cb,
		cache:   cache.NewLRU[int, Details](cfg.CacheSize, cfg.CacheTTL),
	}
}

// Enabled reports whether an API credential is configured.
func (c *Client) Enabled() bool {
	return c.cfg.APIKey != ""
}

// Lookup fetches details for one movie id through the rate limiter and
// circuit breaker.
func (c *Client) Lookup(ctx context.Context, movieID int) (Details, error) {
	if !c.Enabled() {
		metrics.EnrichmentRequests.WithLabelValues("disabled").Inc()
		return Details{}, ErrDisabled
	}
	if d, ok := c.cache.Get(movieID); ok {
		metrics.EnrichmentRequests.WithLabelValues("cached").Inc()
		return d, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		metrics.EnrichmentRequests.WithLabelValues("failure").Inc()
		return Details{}, fmt.Errorf("rate limiter: %w", err)
	}

	d, err := c.cb.Execute(func() (Details, error) {
		return c.fetch(ctx, movieID)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.EnrichmentRequests.WithLabelValues("rejected").Inc()
		} else {
			metrics.EnrichmentRequests.WithLabelValues("failure").Inc()
		}
		return Details{}, err
	}

	c.cache.Set(movieID, d)
	metrics.EnrichmentRequests.WithLabelValues("success").Inc()
	return d, nil
}

func (c *Client) fetch(ctx context.Context, movieID int) (Details, error) {
	u, err := url.Parse(fmt.Sprintf("%s/movie/%d", c.cfg.BaseURL, movieID))
	if err != nil {
		return Details{}, fmt.Errorf("build movie url: %w", err)
	}
	q := u.Query()
	q.Set("api_key", c.cfg.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Details{}, fmt.Errorf("build movie request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Details{}, fmt.Errorf("movie info request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Details{}, fmt.Errorf("movie info request: unexpected status %d", resp.StatusCode)
	}

	var d Details
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return Details{}, fmt.Errorf("decode movie info response: %w", err)
	}
	return d, nil
}

// Enrich resolves details for each recommendation concurrently, preserving
// input order. Failures degrade per item to the id/title/score fallback;
// Enrich itself never fails.
func (c *Client) Enrich(ctx context.Context, recs []recommend.Recommendation) []models.Recommendation {
	out := make([]models.Recommendation, len(recs))
	for i, r := range recs {
		out[i] = models.Recommendation{ID: r.MovieID, Title: r.Title, Score: r.Score}
	}
	if !c.Enabled() || len(recs) == 0 {
		if len(recs) > 0 {
			metrics.EnrichmentRequests.WithLabelValues("disabled").Add(float64(len(recs)))
		}
		return out
	}

	log := logging.With().Str("component", "enrich").Logger()

	var wg sync.WaitGroup
	for i, r := range recs {
		wg.Add(1)
		go func(i int, movieID int) {
			defer wg.Done()
			d, err := c.Lookup(ctx, movieID)
			if err != nil {
				log.Debug().Int("movie_id", movieID).Err(err).Msg("Enrichment fallback")
				return
			}
			out[i].PosterPath = d.PosterPath
			out[i].VoteAverage = d.VoteAverage
			out[i].ReleaseDate = d.ReleaseDate
			if d.Title != "" {
				out[i].Title = d.Title
			}
		}(i, r.MovieID)
	}
	wg.Wait()
	return out
}

func stateToString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
