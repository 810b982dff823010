package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system.
// This should be called once at application startup.
func Init() error {
	once.Do(func() {
		setDefaults()

		// Environment variable overrides, e.g. DJVOICE_SERVER_PORT=9090
		viper.SetEnvPrefix("DJVOICE")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// A missing config file is fine, defaults and env vars apply.
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct.
// Init() must be called before using this.
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// GetStringSlice returns a string slice config value
func GetStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1<<20)

	// Database
	viper.SetDefault("database.path", "./data/django-voice.db")
	viper.SetDefault("database.log_queries", false)

	// Scraper
	viper.SetDefault("scraper.user_agent", "DjangoVoiceAssistant/1.0 (Educational Project)")
	viper.SetDefault("scraper.timeout", 30*time.Second)
	viper.SetDefault("scraper.max_retries", 3)
	viper.SetDefault("scraper.retry_backoff", time.Second)
	viper.SetDefault("scraper.requests_per_minute", 30)
	viper.SetDefault("scraper.seed_urls", []string{
		"https://docs.djangoproject.com/en/5.2/",
		"https://docs.djangoproject.com/en/5.2/intro/overview/",
		"https://docs.djangoproject.com/en/5.2/topics/db/models/",
		"https://docs.djangoproject.com/en/5.2/topics/http/views/",
		"https://docs.djangoproject.com/en/5.2/topics/templates/",
		"https://docs.djangoproject.com/en/5.2/howto/custom-management-commands/",
		"https://docs.djangoproject.com/en/5.2/topics/i18n/translation/",
		"https://docs.djangoproject.com/en/5.2/ref/settings/",
	})

	// Scheduler
	viper.SetDefault("scheduler.enabled", true)
	viper.SetDefault("scheduler.interval", 168*time.Hour)
	viper.SetDefault("scheduler.lock_file", "./data/scrape.lock")
	viper.SetDefault("scheduler.run_on_start", false)

	// Translation
	viper.SetDefault("translation.endpoint", "")
	viper.SetDefault("translation.api_key", "")
	viper.SetDefault("translation.timeout", 30*time.Second)
	viper.SetDefault("translation.requests_per_minute", 60)
	viper.SetDefault("translation.max_concurrent", 4)

	// Speech
	viper.SetDefault("speech.endpoint", "https://translate.google.com/translate_tts")
	viper.SetDefault("speech.timeout", 30*time.Second)
	viper.SetDefault("speech.requests_per_minute", 60)
	viper.SetDefault("speech.pregenerate", false)

	// Storage
	viper.SetDefault("storage.audio_dir", "./data/audio")
	viper.SetDefault("storage.max_audio_age_days", 90)
	viper.SetDefault("storage.cleanup_interval", 24*time.Hour)

	// Processing
	viper.SetDefault("processing.workers", 2)
	viper.SetDefault("processing.poll_interval", 5*time.Second)
	viper.SetDefault("processing.retry_delay", 30*time.Second)

	// Cache
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size_mb", 64)
	viper.SetDefault("cache.search_ttl", 5*time.Minute)
	viper.SetDefault("cache.section_ttl", 30*time.Minute)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("database.path") == "" {
		return fmt.Errorf("database.path must be configured")
	}

	if viper.GetDuration("scheduler.interval") < time.Minute {
		return fmt.Errorf("scheduler.interval must be at least one minute")
	}

	// Auto-correct invalid worker count
	if viper.GetInt("processing.workers") <= 0 {
		viper.Set("processing.workers", 2)
	}

	return nil
}
