package config

import "fmt"

// RetentionConfig holds configuration for database cleanup.
//
// The articles table doubles as the cross-run dedup history, so pruning
// it trades disk space against re-collecting a story that gets
// republished after the retention window. Feeds only serve recent
// items, which is why the article floor is a week rather than a day.
type RetentionConfig struct {
	// ArticleRetentionDays is how long article rows are kept (in days).
	// Default: 90, Range: 7-730
	ArticleRetentionDays int

	// BriefingRetentionDays is how long briefing rows are kept (in days).
	// Briefings store their rendered HTML, so this is the knob that
	// matters for database size.
	// Default: 365, Range: 30-3650
	BriefingRetentionDays int

	// KeepBriefings is the minimum number of briefings kept regardless
	// of age, so an aggressive retention setting cannot erase all
	// delivery history.
	// Default: 10, Range: 0-1000
	KeepBriefings int

	// SourceHealthRetentionDays is how long health-check rows are kept
	// (in days). Every run writes one row per source, making this the
	// fastest-growing table.
	// Default: 30, Range: 1-365
	SourceHealthRetentionDays int

	// Vacuum controls whether VACUUM runs after cleanup. It reclaims
	// disk space but locks the database while it runs.
	// Default: false
	Vacuum bool
}

// DefaultRetentionConfig returns the default retention configuration.
func DefaultRetentionConfig() RetentionConfig {
	return RetentionConfig{
		ArticleRetentionDays:      90,
		BriefingRetentionDays:     365,
		KeepBriefings:             10,
		SourceHealthRetentionDays: 30,
	}
}

// Validate checks if the configuration has valid values.
func (c RetentionConfig) Validate() error {
	if c.ArticleRetentionDays < 7 || c.ArticleRetentionDays > 730 {
		return fmt.Errorf("article retention must be between 7 and 730 days, got %d", c.ArticleRetentionDays)
	}
	if c.BriefingRetentionDays < 30 || c.BriefingRetentionDays > 3650 {
		return fmt.Errorf("briefing retention must be between 30 and 3650 days, got %d", c.BriefingRetentionDays)
	}
	if c.KeepBriefings < 0 || c.KeepBriefings > 1000 {
		return fmt.Errorf("keep briefings must be between 0 and 1000, got %d", c.KeepBriefings)
	}
	if c.SourceHealthRetentionDays < 1 || c.SourceHealthRetentionDays > 365 {
		return fmt.Errorf("source health retention must be between 1 and 365 days, got %d", c.SourceHealthRetentionDays)
	}
	return nil
}

// RetentionConfigFromEnv reads the retention configuration from the
// environment on top of the defaults:
//
//   - DU_ARTICLE_RETENTION_DAYS: days to keep article rows (default: 90)
//   - DU_BRIEFING_RETENTION_DAYS: days to keep briefing rows (default: 365)
//   - DU_CLEANUP_KEEP_BRIEFINGS: briefings kept regardless of age (default: 10)
//   - DU_SOURCE_HEALTH_RETENTION_DAYS: days to keep health rows (default: 30)
//   - DU_CLEANUP_VACUUM: run VACUUM after cleanup (default: false)
func RetentionConfigFromEnv() (RetentionConfig, error) {
	cfg := DefaultRetentionConfig()

	if err := parseEnvInt("DU_ARTICLE_RETENTION_DAYS", &cfg.ArticleRetentionDays); err != nil {
		return cfg, err
	}
	if err := parseEnvInt("DU_BRIEFING_RETENTION_DAYS", &cfg.BriefingRetentionDays); err != nil {
		return cfg, err
	}
	if err := parseEnvInt("DU_CLEANUP_KEEP_BRIEFINGS", &cfg.KeepBriefings); err != nil {
		return cfg, err
	}
	if err := parseEnvInt("DU_SOURCE_HEALTH_RETENTION_DAYS", &cfg.SourceHealthRetentionDays); err != nil {
		return cfg, err
	}
	cfg.Vacuum = envBool("DU_CLEANUP_VACUUM")

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid retention configuration from environment: %w", err)
	}
	return cfg, nil
}
