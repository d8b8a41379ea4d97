// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/orquideira/internal/search"
	"github.com/pdiddy/orquideira/internal/server"
	"github.com/pdiddy/orquideira/pkg/types"
)

// setDefaults registers a default for every config key so that
// environment overrides reach viper.Unmarshal. Empty API URLs select the
// public endpoints.
func setDefaults() {
	viper.SetDefault("search.timeout", 30*time.Second)
	viper.SetDefault("search.user_agent", "orquideira/"+version)
	viper.SetDefault("search.semantic_scholar_url", "")
	viper.SetDefault("search.orcid_url", "")
	viper.SetDefault("search.semantic_scholar_api_key", "")
	viper.SetDefault("search.orcid_token", "")
	viper.SetDefault("search.max_results", 0)
	viper.SetDefault("search.max_enrichment_concurrency", search.DefaultEnrichmentConcurrency)
	viper.SetDefault("search.requests_per_second", 0)
	viper.SetDefault("search.rate_limit_retries", 0)

	viper.SetDefault("session.state_dir", "~/.config/orquideira/state")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.jwt_secret", "")
	viper.SetDefault("server.token_ttl", server.DefaultTokenTTL)

	viper.SetDefault("catalog.fixture", "")

	viper.SetDefault("log.level", "info")
}

// loadAppConfig decodes viper's merged settings into an AppConfig.
func loadAppConfig() (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	dir, err := expandHome(cfg.Session.StateDir)
	if err != nil {
		return cfg, err
	}
	cfg.Session.StateDir = dir
	return cfg, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
