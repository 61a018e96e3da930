package storage

import (
	"context"

	"github.com/ew616/project-dailyupdate/internal/storage/sqlite"
	"github.com/ew616/project-dailyupdate/internal/types"
)

// Store defines the interface for briefing storage backends
type Store interface {
	// Articles
	SeenArticle(ctx context.Context, url string) (bool, error)
	SaveArticle(ctx context.Context, article *types.Article, briefingID *int64) (int64, error)
	ClearArticles(ctx context.Context) (int64, error)

	// Briefings
	CreateBriefing(ctx context.Context, topicsJSON, htmlContent string) (int64, error)
	MarkBriefingSent(ctx context.Context, id int64) error
	MarkBriefingFailed(ctx context.Context, id int64) error
	ListBriefings(ctx context.Context, limit int) ([]*types.Briefing, error)

	// Source health
	LogSourceHealth(ctx context.Context, sourceName string, status types.HealthStatus, errorMessage string) error
	FailedSourcesToday(ctx context.Context) ([]string, error)
	RecentSourceHealth(ctx context.Context, limit int) ([]*types.SourceHealth, error)

	// Maintenance. Prune methods return how many rows were deleted, or
	// would be deleted when dryRun is set.
	PruneArticles(ctx context.Context, retentionDays int, dryRun bool) (int64, error)
	PruneBriefings(ctx context.Context, retentionDays, keep int, dryRun bool) (int64, error)
	PruneSourceHealth(ctx context.Context, retentionDays int, dryRun bool) (int64, error)
	Vacuum(ctx context.Context) error

	// Lifecycle
	Close() error
}

// Config holds database configuration
type Config struct {
	// Path is the SQLite database file path
	// Default: "data/briefing.db"
	// Special value ":memory:" creates an in-memory database (useful for tests)
	Path string
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Path: "data/briefing.db",
	}
}

// NewStore creates a new SQLite storage backend
func NewStore(ctx context.Context, cfg *Config) (Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if cfg.Path == "" {
		cfg.Path = "data/briefing.db"
	}

	return sqlite.New(cfg.Path)
}
