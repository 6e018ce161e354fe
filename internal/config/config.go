package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/hexzhou/ygocdb/internal/domain"
)

const (
	defaultAPIBaseURL    = "https://ygocdb.com/api/v0"
	defaultImageBaseURL  = "https://cdn.233.momobako.com"
	defaultPreReleaseURL = "https://cdntx.moecube.com/ygopro-super-pre/data/test-release-v2.json"
	defaultUserAgent     = "ygocdb/1.0 (go; github.com/hexzhou/ygocdb)"
)

// Load builds configuration from two sources:
// 1. Config file (config.yaml, optional)
// 2. Environment variables (YGOCDB_*)
func Load() (*domain.Config, error) {
	viper.SetDefault("data_dir", ".")
	viper.SetDefault("api_base_url", defaultAPIBaseURL)
	viper.SetDefault("image_base_url", defaultImageBaseURL)
	viper.SetDefault("prerelease_url", defaultPreReleaseURL)
	viper.SetDefault("user_agent", defaultUserAgent)
	viper.SetDefault("request_timeout_sec", 60)
	viper.SetDefault("download_timeout_sec", 300)
	viper.SetDefault("max_concurrent_downloads", 6)

	cfg := &domain.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url is required (set via config.yaml or YGOCDB_API_BASE_URL)")
	}
	if cfg.RequestTimeoutSec <= 0 {
		return nil, fmt.Errorf("request_timeout_sec must be positive, got %d", cfg.RequestTimeoutSec)
	}
	if cfg.DownloadTimeoutSec <= 0 {
		return nil, fmt.Errorf("download_timeout_sec must be positive, got %d", cfg.DownloadTimeoutSec)
	}
	if cfg.MaxConcurrentDownloads <= 0 {
		return nil, fmt.Errorf("max_concurrent_downloads must be positive, got %d", cfg.MaxConcurrentDownloads)
	}

	return cfg, nil
}

// WriteDefault writes a starter config file with all defaults filled in.
// Fails if the file already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	cfg := domain.Config{
		DataDir:                ".",
		APIBaseURL:             defaultAPIBaseURL,
		ImageBaseURL:           defaultImageBaseURL,
		PreReleaseURL:          defaultPreReleaseURL,
		UserAgent:              defaultUserAgent,
		RequestTimeoutSec:      60,
		DownloadTimeoutSec:     300,
		MaxConcurrentDownloads: 6,
	}

	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return os.WriteFile(path, b, 0644)
}
