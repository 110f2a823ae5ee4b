// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Recommend.Scorer != "linear" {
		t.Errorf("default scorer = %q, want linear", cfg.Recommend.Scorer)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"*"}) {
		t.Errorf("default cors origins = %v, want [*]", cfg.Security.CORSOrigins)
	}
}

func TestLoadDefaults(t *testing.T) {
	// point at an empty dir so no stray config.yaml is picked up
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Recommend.DefaultK != 8 || cfg.Recommend.MaxK != 50 {
		t.Errorf("recommend defaults = %+v", cfg.Recommend)
	}
	if cfg.TMDB.APIKey != "" {
		t.Errorf("tmdb api key should default empty, got %q", cfg.TMDB.APIKey)
	}
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
catalog:
  path: /tmp/movies.csv
recommend:
  scorer: neural
  default_k: 5
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Catalog.Path != "/tmp/movies.csv" {
		t.Errorf("catalog path = %q", cfg.Catalog.Path)
	}
	if cfg.Recommend.Scorer != "neural" || cfg.Recommend.DefaultK != 5 {
		t.Errorf("recommend = %+v", cfg.Recommend)
	}
	// untouched sections keep defaults
	if cfg.Security.RateLimit != 100 {
		t.Errorf("rate limit = %d, want default 100", cfg.Security.RateLimit)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CINEREC_SERVER_PORT", "7070")
	t.Setenv("CINEREC_TMDB_API_KEY", "secret")
	t.Setenv("CINEREC_SECURITY_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.TMDB.APIKey != "secret" {
		t.Errorf("tmdb api key = %q, want secret", cfg.TMDB.APIKey)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("cors origins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "unknown scorer", mutate: func(c *Config) { c.Recommend.Scorer = "magic" }},
		{name: "weights not summing to one", mutate: func(c *Config) { c.Recommend.Weights.Genre = 0.9 }},
		{name: "max_k below default_k", mutate: func(c *Config) { c.Recommend.MaxK = 2 }},
		{name: "gc ratio out of range", mutate: func(c *Config) { c.History.GCRatio = 1.5 }},
		{name: "empty catalog path", mutate: func(c *Config) { c.Catalog.Path = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"CINEREC_SERVER_PORT", "server.port"},
		{"CINEREC_TMDB_API_KEY", "tmdb.api_key"},
		{"CINEREC_RECOMMEND_MIN_KEYWORD_LEN", "recommend.min_keyword_len"},
		{"CINEREC_CATALOG_PATH", "catalog.path"},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestBuildScorer(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.Recommend.BuildScorer().Name(); got != "linear" {
		t.Errorf("default scorer = %q, want linear", got)
	}
	cfg.Recommend.Scorer = "neural"
	if got := cfg.Recommend.BuildScorer().Name(); got != "neural" {
		t.Errorf("scorer = %q, want neural", got)
	}
}
