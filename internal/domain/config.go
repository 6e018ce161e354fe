package domain

import "time"

// Config holds all runtime configuration, loaded from config.yaml and
// YGOCDB_* environment variables.
type Config struct {
	DataDir       string `yaml:"data_dir" mapstructure:"data_dir"`
	ImageCacheDir string `yaml:"image_cache_dir" mapstructure:"image_cache_dir"`

	APIBaseURL    string `yaml:"api_base_url" mapstructure:"api_base_url"`
	ImageBaseURL  string `yaml:"image_base_url" mapstructure:"image_base_url"`
	PreReleaseURL string `yaml:"prerelease_url" mapstructure:"prerelease_url"`

	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// RequestTimeoutSec bounds small transfers, DownloadTimeoutSec the bulk
	// archive transfer.
	RequestTimeoutSec  int `yaml:"request_timeout_sec" mapstructure:"request_timeout_sec"`
	DownloadTimeoutSec int `yaml:"download_timeout_sec" mapstructure:"download_timeout_sec"`

	MaxConcurrentDownloads int `yaml:"max_concurrent_downloads" mapstructure:"max_concurrent_downloads"`
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

func (c *Config) DownloadTimeout() time.Duration {
	return time.Duration(c.DownloadTimeoutSec) * time.Second
}
