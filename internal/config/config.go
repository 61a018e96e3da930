// Package config loads runtime configuration for the briefing pipeline
// from the environment, and the source list from an optional YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ew616/project-dailyupdate/internal/deduplication"
)

// Config holds everything the pipeline needs at runtime. Secrets and the
// original operator knobs use bare environment names (ANTHROPIC_API_KEY,
// EMAIL_TO, ...); everything added since is namespaced under DU_.
type Config struct {
	// DatabasePath is where the SQLite database lives. The parent
	// directory is created on first open.
	// Default: data/briefing.db
	DatabasePath string `json:"database_path"`

	// SourcesPath points at the YAML source list. A missing file is not
	// an error; the built-in source list is used instead.
	// Default: sources.yaml
	SourcesPath string `json:"sources_path"`

	// EmailTo is the briefing recipient. Empty disables delivery, which
	// only makes sense together with DryRun.
	EmailTo string `json:"email_to"`

	// EmailFrom is the sender shown on the briefing.
	// Default: Daily Briefing <briefing@example.com>
	EmailFrom string `json:"email_from"`

	// ResendAPIKey authenticates against the Resend API.
	ResendAPIKey string `json:"-"`

	// AnthropicAPIKey authenticates against the Anthropic API. Only used
	// when UseLLM is set.
	AnthropicAPIKey string `json:"-"`

	// UseLLM switches topic synthesis from plain headline lists to
	// Claude-written summaries. Requires AnthropicAPIKey.
	// Default: false
	UseLLM bool `json:"use_llm"`

	// Model is the Anthropic model used for synthesis.
	// Default: claude-sonnet-4-20250514
	Model string `json:"model"`

	// MaxTokens caps the synthesis response size.
	// Default: 4096
	MaxTokens int64 `json:"max_tokens"`

	// MaxArticleAge drops articles published longer than this before the
	// run. Articles without a publication date are kept.
	// Default: 168h (one week)
	MaxArticleAge time.Duration `json:"max_article_age"`

	// HTTPTimeout bounds each feed fetch.
	// Default: 30s
	HTTPTimeout time.Duration `json:"http_timeout"`

	// FetchConcurrency is how many sources are fetched at once.
	// Higher values finish collection faster but hit publishers harder.
	// Default: 5
	FetchConcurrency int `json:"fetch_concurrency"`

	// RequestsPerSecond rate-limits outbound feed fetches across all
	// workers combined.
	// Default: 2.0
	RequestsPerSecond float64 `json:"requests_per_second"`

	// WeatherLocation is the city shown in the briefing header.
	// Default: New York
	WeatherLocation string `json:"weather_location"`

	// DryRun prints the briefing to stdout instead of emailing it.
	// Default: false
	DryRun bool `json:"dry_run"`

	// LogLevel is one of DEBUG, INFO, WARNING, ERROR.
	// Default: INFO
	LogLevel string `json:"log_level"`

	// Dedup configures the deduplication engine.
	Dedup deduplication.Config `json:"dedup"`
}

// DefaultConfig returns the configuration used when no environment
// variables are set.
func DefaultConfig() *Config {
	return &Config{
		DatabasePath:      "data/briefing.db",
		SourcesPath:       "sources.yaml",
		EmailFrom:         "Daily Briefing <briefing@example.com>",
		Model:             "claude-sonnet-4-20250514",
		MaxTokens:         4096,
		MaxArticleAge:     7 * 24 * time.Hour,
		HTTPTimeout:       30 * time.Second,
		FetchConcurrency:  5,
		RequestsPerSecond: 2.0,
		WeatherLocation:   "New York",
		LogLevel:          "INFO",
		Dedup:             deduplication.DefaultConfig(),
	}
}

// Load reads configuration from the environment on top of the defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	cfg.EmailTo = os.Getenv("EMAIL_TO")
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		cfg.EmailFrom = val
	}
	cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.UseLLM = envBool("USE_LLM")
	cfg.DryRun = envBool("DRY_RUN")
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}

	if val := os.Getenv("DU_DATABASE_PATH"); val != "" {
		cfg.DatabasePath = val
	}
	if val := os.Getenv("DU_SOURCES_PATH"); val != "" {
		cfg.SourcesPath = val
	}
	if val := os.Getenv("DU_CLAUDE_MODEL"); val != "" {
		cfg.Model = val
	}
	if val := os.Getenv("DU_WEATHER_LOCATION"); val != "" {
		cfg.WeatherLocation = val
	}
	if err := parseEnvInt64("DU_CLAUDE_MAX_TOKENS", &cfg.MaxTokens); err != nil {
		return nil, err
	}
	if err := parseEnvDuration("DU_MAX_ARTICLE_AGE", &cfg.MaxArticleAge); err != nil {
		return nil, err
	}
	if err := parseEnvDuration("DU_HTTP_TIMEOUT", &cfg.HTTPTimeout); err != nil {
		return nil, err
	}
	if err := parseEnvInt("DU_FETCH_CONCURRENCY", &cfg.FetchConcurrency); err != nil {
		return nil, err
	}
	if err := parseEnvFloat("DU_REQUESTS_PER_SECOND", &cfg.RequestsPerSecond); err != nil {
		return nil, err
	}

	dedup, err := deduplication.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	cfg.Dedup = dedup

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration from environment: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.MaxArticleAge <= 0 {
		return fmt.Errorf("max article age must be positive, got %v", c.MaxArticleAge)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %v", c.HTTPTimeout)
	}
	if c.FetchConcurrency < 1 {
		return fmt.Errorf("fetch concurrency must be at least 1, got %d", c.FetchConcurrency)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests per second must be positive, got %.2f", c.RequestsPerSecond)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if err := c.Dedup.Validate(); err != nil {
		return fmt.Errorf("dedup: %w", err)
	}
	return nil
}

// LLMEnabled reports whether synthesis should call Claude. The flag alone
// is not enough; a key must be present too.
func (c *Config) LLMEnabled() bool {
	return c.UseLLM && c.AnthropicAPIKey != ""
}

// SlogLevel maps the configured log level name onto a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	return ParseLevel(c.LogLevel)
}

// ParseLevel maps a log level name onto a slog level. The empty string
// means INFO.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want DEBUG, INFO, WARNING or ERROR)", name)
	}
}

// envBool treats "true" (any case) as true and everything else,
// including unset, as false.
func envBool(key string) bool {
	return strings.EqualFold(os.Getenv(key), "true")
}

func parseEnvInt(key string, dst *int) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	*dst = parsed
	return nil
}

func parseEnvInt64(key string, dst *int64) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	*dst = parsed
	return nil
}

func parseEnvFloat(key string, dst *float64) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	*dst = parsed
	return nil
}

func parseEnvDuration(key string, dst *time.Duration) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	*dst = parsed
	return nil
}
