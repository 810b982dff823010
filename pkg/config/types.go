package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Scraper     ScraperConfig     `mapstructure:"scraper"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
	Translation TranslationConfig `mapstructure:"translation"`
	Speech      SpeechConfig      `mapstructure:"speech"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Processing  ProcessingConfig  `mapstructure:"processing"`
	Cache       CacheConfig       `mapstructure:"cache"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	LogQueries bool   `mapstructure:"log_queries"`
}

// ScraperConfig contains documentation fetcher settings
type ScraperConfig struct {
	UserAgent         string        `mapstructure:"user_agent"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
	RetryBackoff      time.Duration `mapstructure:"retry_backoff"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	SeedURLs          []string      `mapstructure:"seed_urls"`
}

// SchedulerConfig contains scheduled scrape settings
type SchedulerConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Interval   time.Duration `mapstructure:"interval"`
	LockFile   string        `mapstructure:"lock_file"`
	RunOnStart bool          `mapstructure:"run_on_start"`
}

// TranslationConfig contains translation service settings
type TranslationConfig struct {
	Endpoint          string        `mapstructure:"endpoint"`
	APIKey            string        `mapstructure:"api_key"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	MaxConcurrent     int           `mapstructure:"max_concurrent"`
}

// SpeechConfig contains text-to-speech service settings
type SpeechConfig struct {
	Endpoint          string        `mapstructure:"endpoint"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	Pregenerate       bool          `mapstructure:"pregenerate"`
}

// StorageConfig contains audio storage settings
type StorageConfig struct {
	AudioDir        string        `mapstructure:"audio_dir"`
	MaxAudioAgeDays int           `mapstructure:"max_audio_age_days"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// ProcessingConfig contains background worker settings
type ProcessingConfig struct {
	Workers      int           `mapstructure:"workers"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	RetryDelay   time.Duration `mapstructure:"retry_delay"`
}

// CacheConfig contains response cache settings
type CacheConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	MaxSizeMB  int64         `mapstructure:"max_size_mb"`
	SearchTTL  time.Duration `mapstructure:"search_ttl"`
	SectionTTL time.Duration `mapstructure:"section_ttl"`
}
