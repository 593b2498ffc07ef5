package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config contains runtime settings for the search pipeline. Defaults are
// overlaid first by an optional YAML file (JOBLENS_CONFIG) and then by
// environment variables, so env always wins.
type Config struct {
	LogLevel string `yaml:"log_level"`
	Host     string `yaml:"host"` // default 0.0.0.0
	Port     string `yaml:"port"` // default PORT env or 8080

	Provider struct {
		BaseURL  string        `yaml:"base_url"`
		Category string        `yaml:"category"`
		Timeout  time.Duration `yaml:"timeout"`
		PageSize int           `yaml:"page_size"`
	} `yaml:"provider"`

	CatalogPath string `yaml:"catalog_path"` // empty means the embedded seed
	RedisURL    string `yaml:"redis_url"`    // empty means in-memory cache

	Client struct {
		ServerURL   string        `yaml:"server_url"`
		Debounce    time.Duration `yaml:"debounce"`
		StaleAfter  time.Duration `yaml:"stale_after"`
		EvictAfter  time.Duration `yaml:"evict_after"`
		MaxAttempts int           `yaml:"max_attempts"`
		RetryBase   time.Duration `yaml:"retry_base"`
		RetryCap    time.Duration `yaml:"retry_cap"`
	} `yaml:"client"`
}

// Load populates config from the optional YAML file and environment.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("JOBLENS_CONFIG"); path != "" {
		if err := overlayFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func defaults() Config {
	cfg := Config{
		LogLevel: "info",
		Host:     "0.0.0.0",
		Port:     "8080",
	}
	cfg.Provider.Timeout = 4 * time.Second
	cfg.Provider.PageSize = 50
	cfg.Client.ServerURL = "http://localhost:8080"
	cfg.Client.Debounce = 500 * time.Millisecond
	cfg.Client.StaleAfter = 5 * time.Minute
	cfg.Client.EvictAfter = 10 * time.Minute
	cfg.Client.MaxAttempts = 4
	cfg.Client.RetryBase = time.Second
	cfg.Client.RetryCap = 30 * time.Second
	return cfg
}

// overlayFile merges settings from a YAML file over the defaults. A
// missing file is not an error; an unreadable or unparseable one is.
func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Host, "HOST")
	setString(&cfg.Port, "PORT")
	setString(&cfg.Provider.BaseURL, "PROVIDER_BASE_URL")
	setString(&cfg.Provider.Category, "PROVIDER_CATEGORY")
	setDuration(&cfg.Provider.Timeout, "PROVIDER_TIMEOUT")
	setInt(&cfg.Provider.PageSize, "PROVIDER_PAGE_SIZE")
	setString(&cfg.CatalogPath, "CATALOG_PATH")
	setString(&cfg.RedisURL, "REDIS_URL")
	setString(&cfg.Client.ServerURL, "SERVER_URL")
	setDuration(&cfg.Client.Debounce, "CLIENT_DEBOUNCE")
	setDuration(&cfg.Client.StaleAfter, "CLIENT_STALE_AFTER")
	setDuration(&cfg.Client.EvictAfter, "CLIENT_EVICT_AFTER")
	setInt(&cfg.Client.MaxAttempts, "CLIENT_MAX_ATTEMPTS")
	setDuration(&cfg.Client.RetryBase, "CLIENT_RETRY_BASE")
	setDuration(&cfg.Client.RetryCap, "CLIENT_RETRY_CAP")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
