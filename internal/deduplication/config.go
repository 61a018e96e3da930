package deduplication

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultStripParams are the query parameter names removed during URL
// normalization. These are tracking/campaign/referrer/click-id style
// parameters that vary between syndicated copies of the same link without
// changing the resource it points at.
var DefaultStripParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"ref", "source", "fbclid", "gclid", "mc_cid", "mc_eid",
}

// Config holds configuration for the deduplication engine
type Config struct {
	// SimilarityThreshold is the minimum title similarity ratio (0.0-1.0)
	// at which two articles are considered the same story
	// Higher values = more conservative (near-duplicates slip through)
	// Lower values = more aggressive (distinct stories get merged)
	// Default: 0.85 (reworded duplicate headlines across outlets land above this)
	SimilarityThreshold float64

	// StripParams is the deny-list of query parameter names removed during
	// URL normalization. Names are matched case-insensitively.
	// Default: DefaultStripParams
	StripParams []string
}

// DefaultConfig returns the default deduplication configuration
//
// The threshold errs high: a false positive silently drops a legitimate
// story from the briefing, while a false negative only shows the reader
// the same headline twice.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: 0.85,
		StripParams:         DefaultStripParams,
	}
}

// Validate checks if the configuration has valid values
func (c Config) Validate() error {
	if c.SimilarityThreshold < 0.0 || c.SimilarityThreshold > 1.0 {
		return fmt.Errorf("similarity_threshold must be between 0.0 and 1.0 (got %.2f)",
			c.SimilarityThreshold)
	}
	for _, p := range c.StripParams {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("strip_params contains an empty parameter name")
		}
	}
	return nil
}

// String returns a human-readable representation of the config
func (c Config) String() string {
	return fmt.Sprintf("Config{Threshold: %.2f, StripParams: %d names}",
		c.SimilarityThreshold, len(c.StripParams))
}

// ConfigFromEnv creates a Config from environment variables, falling back to defaults
//
// Environment variables:
//   - DU_DEDUP_SIMILARITY_THRESHOLD: Minimum ratio (0.0-1.0) to treat titles as the same story (default: 0.85)
//   - DU_DEDUP_STRIP_PARAMS: Comma-separated parameter names to strip, replacing the default list
//
// Returns an error if any environment variable has an invalid value.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if err := parseEnvFloat("DU_DEDUP_SIMILARITY_THRESHOLD", &cfg.SimilarityThreshold); err != nil {
		return cfg, err
	}
	if err := parseEnvList("DU_DEDUP_STRIP_PARAMS", &cfg.StripParams); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration from environment: %w", err)
	}

	return cfg, nil
}

// parseEnvFloat parses a float64 from an environment variable
func parseEnvFloat(key string, dest *float64) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvList parses a comma-separated list from an environment variable
func parseEnvList(key string, dest *[]string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("invalid value for %s: no parameter names in %q", key, value)
	}
	*dest = names
	return nil
}
