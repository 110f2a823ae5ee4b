// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/cinerec/cinerec/internal/validation"
)

// DefaultConfigPaths lists where config files are searched, in priority
// order. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinerec/config.yaml",
	"/etc/cinerec/config.yml",
}

// ConfigPathEnvVar overrides the config file search entirely.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load assembles the configuration in three layers: struct defaults, an
// optional YAML file, then environment variables with highest priority.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	// CINEREC_TMDB_API_KEY -> tmdb.api_key, CINEREC_SERVER_PORT -> server.port
	if err := k.Load(env.Provider("CINEREC_", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envVarMappings handles the names whose underscores do not split cleanly
// on the first separator.
var envVarMappings = map[string]string{
	"tmdb_api_key":                "tmdb.api_key",
	"tmdb_base_url":               "tmdb.base_url",
	"tmdb_rate_limit":             "tmdb.rate_limit",
	"tmdb_rate_burst":             "tmdb.rate_burst",
	"tmdb_max_retries":            "tmdb.max_retries",
	"server_read_timeout":         "server.read_timeout",
	"server_write_timeout":        "server.write_timeout",
	"server_idle_timeout":         "server.idle_timeout",
	"server_shutdown_timeout":     "server.shutdown_timeout",
	"history_gc_interval":         "history.gc_interval",
	"history_gc_ratio":            "history.gc_ratio",
	"recommend_default_k":         "recommend.default_k",
	"recommend_max_k":             "recommend.max_k",
	"recommend_min_keyword_len":   "recommend.min_keyword_len",
	"security_cors_origins":       "security.cors_origins",
	"security_rate_limit":         "security.rate_limit",
	"security_rate_limit_enabled": "security.rate_limit_enabled",
	"security_rate_limit_window":  "security.rate_limit_window",
}

// envTransformFunc maps CINEREC_SECTION_FIELD to section.field koanf
// paths. Irregular names are table-driven; the rest split on the first
// underscore.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, "CINEREC_"))

	if path, ok := envVarMappings[key]; ok {
		return path
	}
	if idx := strings.Index(key, "_"); idx > 0 {
		return key[:idx] + "." + key[idx+1:]
	}
	return key
}

// processSliceFields converts comma-separated env strings into slices so
// CINEREC_SECURITY_CORS_ORIGINS="a,b" unmarshal cleanly.
func processSliceFields(k *koanf.Koanf) error {
	const path = "security.cors_origins"
	if raw, ok := k.Get(path).(string); ok {
		parts := strings.Split(raw, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		if err := k.Set(path, origins); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}

func validateStruct(c *Config) error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	return nil
}
