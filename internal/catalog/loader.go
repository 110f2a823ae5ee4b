// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/cinerec/cinerec/internal/logging"
	"github.com/cinerec/cinerec/internal/metrics"
)

// ErrSourceUnavailable indicates the catalog source could not be opened or
// its header could not be read. Unlike per-row parse failures, this aborts
// the entire load.
var ErrSourceUnavailable = errors.New("catalog source unavailable")

// columns the loader understands. Only id and title are mandatory per row;
// missing optional columns in the header are tolerated.
const (
	colID          = "id"
	colTitle       = "title"
	colGenres      = "genres"
	colCast        = "cast"
	colDirector    = "director"
	colOverview    = "overview"
	colReleaseDate = "release_date"
	colPosterPath  = "poster_path"
	colVoteAverage = "vote_average"
)

// LoadCSV reads a movie catalog from the CSV file at path. Malformed rows
// are dropped with a logged reason and a metrics increment; a row failure
// never aborts the load. Returns ErrSourceUnavailable (wrapped) if the file
// cannot be opened or the header is unreadable.
func LoadCSV(path string) (*Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	return loadCSV(f, path)
}

func loadCSV(r io.Reader, source string) (*Catalog, error) {
	log := logging.With().Str("component", "catalog").Str("source", source).Logger()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows handled per-row, not fatally
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrSourceUnavailable, err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols[colID]; !ok {
		return nil, fmt.Errorf("%w: header missing %q column", ErrSourceUnavailable, colID)
	}
	if _, ok := cols[colTitle]; !ok {
		return nil, fmt.Errorf("%w: header missing %q column", ErrSourceUnavailable, colTitle)
	}

	var (
		movies  []Movie
		line    = 1 // header was line 1
		dropped int
	)
	for {
		line++
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn().Int("line", line).Err(err).Msg("Dropping unreadable catalog row")
			metrics.CatalogRowsDropped.Inc()
			dropped++
			continue
		}

		movie, err := parseRow(record, cols)
		if err != nil {
			log.Warn().Int("line", line).Err(err).Msg("Dropping malformed catalog row")
			metrics.CatalogRowsDropped.Inc()
			dropped++
			continue
		}
		movies = append(movies, movie)
	}

	c := New(movies)
	log.Info().
		Int("movies", c.Len()).
		Int("dropped", dropped).
		Msg("Catalog loaded")
	return c, nil
}

func parseRow(record []string, cols map[string]int) (Movie, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	id, err := strconv.Atoi(field(colID))
	if err != nil {
		return Movie{}, fmt.Errorf("invalid id %q: %w", field(colID), err)
	}
	title := field(colTitle)
	if title == "" {
		return Movie{}, errors.New("empty title")
	}

	genres, err := parseListField(field(colGenres))
	if err != nil {
		return Movie{}, fmt.Errorf("invalid genres field: %w", err)
	}
	cast, err := parseListField(field(colCast))
	if err != nil {
		return Movie{}, fmt.Errorf("invalid cast field: %w", err)
	}

	m := Movie{
		ID:          id,
		Title:       title,
		Genres:      dedupe(genres),
		Cast:        dedupe(cast),
		Director:    field(colDirector),
		Overview:    field(colOverview),
		ReleaseDate: field(colReleaseDate),
		PosterPath:  field(colPosterPath),
	}
	if raw := field(colVoteAverage); raw != "" {
		// Vote average is display-only; a bad value degrades to zero
		// rather than dropping the row.
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			m.VoteAverage = v
		}
	}
	return m, nil
}

// parseListField parses the pseudo-JSON list encoding used by common movie
// dataset exports: single-quoted Python-style lists such as
// ['Action', 'Science Fiction'], sometimes with stray backslashes. Proper
// JSON arrays and empty fields are accepted as-is.
func parseListField(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" {
		return nil, nil
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		return items, nil
	}

	normalized := normalizeListField(raw)
	if err := json.Unmarshal([]byte(normalized), &items); err != nil {
		return nil, fmt.Errorf("unparseable list %q: %w", raw, err)
	}
	return items, nil
}

// normalizeListField rewrites single-quoted list syntax into JSON. Double
// quotes inside items are escaped, single quotes become delimiters, and
// backslashes not forming a valid escape are doubled.
func normalizeListField(raw string) string {
	var b strings.Builder
	b.Grow(len(raw) + 8)
	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; c {
		case '\'':
			b.WriteByte('"')
		case '"':
			b.WriteString(`\"`)
		case '\\':
			// Keep escaped single quotes as literal apostrophes;
			// double everything else so JSON accepts it.
			if i+1 < len(raw) && raw[i+1] == '\'' {
				b.WriteByte('\'')
				i++
			} else {
				b.WriteString(`\\`)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
