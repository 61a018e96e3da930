package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/ew616/project-dailyupdate/internal/types"
)

// SQLiteStore implements the storage.Store interface using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLite storage backend
func New(path string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// WAL keeps a run and an ad-hoc CLI query from blocking each other;
	// the sqlite time format lines up with CURRENT_TIMESTAMP defaults.
	dsn := "file:" + path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_timefmt=sqlite"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SeenArticle reports whether an article with this exact URL was already
// collected by a previous run.
func (s *SQLiteStore) SeenArticle(ctx context.Context, url string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM articles WHERE url = ?", url).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check article: %w", err)
	}
	return true, nil
}

// SaveArticle inserts an article, ignoring URLs that already exist.
// Returns the new row ID, or 0 when the article was already present.
func (s *SQLiteStore) SaveArticle(ctx context.Context, article *types.Article, briefingID *int64) (int64, error) {
	if err := article.Validate(); err != nil {
		return 0, fmt.Errorf("invalid article: %w", err)
	}

	topic := sql.NullString{String: article.Topic, Valid: article.Topic != ""}
	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO articles (url, title, source, topic, included_in_briefing_id)
		VALUES (?, ?, ?, ?, ?)
	`, article.URL, article.Title, article.Source, topic, briefingID)
	if err != nil {
		return 0, fmt.Errorf("failed to save article: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return 0, nil
	}
	return res.LastInsertId()
}

// ClearArticles deletes the whole seen-article history and returns how
// many rows were removed.
func (s *SQLiteStore) ClearArticles(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM articles")
	if err != nil {
		return 0, fmt.Errorf("failed to clear articles: %w", err)
	}
	return res.RowsAffected()
}

// CreateBriefing records a rendered briefing and returns its ID.
func (s *SQLiteStore) CreateBriefing(ctx context.Context, topicsJSON, htmlContent string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO briefings (topics_json, html_content, status)
		VALUES (?, ?, 'created')
	`, topicsJSON, htmlContent)
	if err != nil {
		return 0, fmt.Errorf("failed to create briefing: %w", err)
	}
	return res.LastInsertId()
}

// MarkBriefingSent stamps the briefing as delivered.
func (s *SQLiteStore) MarkBriefingSent(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE briefings
		SET sent_at = CURRENT_TIMESTAMP, status = 'sent'
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to mark briefing sent: %w", err)
	}
	return requireRow(res, id)
}

// MarkBriefingFailed records that delivery did not happen.
func (s *SQLiteStore) MarkBriefingFailed(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE briefings
		SET status = 'failed'
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to mark briefing failed: %w", err)
	}
	return requireRow(res, id)
}

// ListBriefings returns the most recent briefings, newest first.
func (s *SQLiteStore) ListBriefings(ctx context.Context, limit int) ([]*types.Briefing, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, topics_json, html_content, sent_at, status
		FROM briefings
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list briefings: %w", err)
	}
	defer rows.Close()

	var briefings []*types.Briefing
	for rows.Next() {
		var b types.Briefing
		var sentAt sql.NullTime
		if err := rows.Scan(&b.ID, &b.CreatedAt, &b.TopicsJSON, &b.HTMLContent, &sentAt, &b.Status); err != nil {
			return nil, fmt.Errorf("failed to scan briefing: %w", err)
		}
		if sentAt.Valid {
			t := sentAt.Time
			b.SentAt = &t
		}
		briefings = append(briefings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate briefings: %w", err)
	}
	return briefings, nil
}

// LogSourceHealth appends a health check row for a source.
func (s *SQLiteStore) LogSourceHealth(ctx context.Context, sourceName string, status types.HealthStatus, errorMessage string) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid health status: %s", status)
	}

	msg := sql.NullString{String: errorMessage, Valid: errorMessage != ""}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO source_health (source_name, status, error_message)
		VALUES (?, ?, ?)
	`, sourceName, string(status), msg)
	if err != nil {
		return fmt.Errorf("failed to log source health: %w", err)
	}
	return nil
}

// FailedSourcesToday returns the names of sources with at least one
// non-ok check today (UTC, matching CURRENT_TIMESTAMP).
func (s *SQLiteStore) FailedSourcesToday(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT source_name FROM source_health
		WHERE status != 'ok'
		AND date(checked_at) = date('now')
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query failed sources: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan source name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate failed sources: %w", err)
	}
	return names, nil
}

// RecentSourceHealth returns the latest health checks, newest first.
func (s *SQLiteStore) RecentSourceHealth(ctx context.Context, limit int) ([]*types.SourceHealth, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_name, checked_at, status, error_message
		FROM source_health
		ORDER BY checked_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query source health: %w", err)
	}
	defer rows.Close()

	var checks []*types.SourceHealth
	for rows.Next() {
		var h types.SourceHealth
		var msg sql.NullString
		if err := rows.Scan(&h.ID, &h.SourceName, &h.CheckedAt, &h.Status, &msg); err != nil {
			return nil, fmt.Errorf("failed to scan health check: %w", err)
		}
		h.ErrorMessage = msg.String
		checks = append(checks, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate health checks: %w", err)
	}
	return checks, nil
}

// PruneArticles deletes article rows collected more than retentionDays
// ago. Pruned URLs drop out of the seen-article history, so the window
// must stay well past the max article age.
func (s *SQLiteStore) PruneArticles(ctx context.Context, retentionDays int, dryRun bool) (int64, error) {
	return s.prune(ctx, dryRun,
		"FROM articles WHERE collected_at < datetime('now', ?)",
		fmt.Sprintf("-%d days", retentionDays))
}

// PruneBriefings deletes briefing rows created more than retentionDays
// ago, always keeping the keep most recent ones.
func (s *SQLiteStore) PruneBriefings(ctx context.Context, retentionDays, keep int, dryRun bool) (int64, error) {
	return s.prune(ctx, dryRun, `
		FROM briefings
		WHERE created_at < datetime('now', ?)
		AND id NOT IN (SELECT id FROM briefings ORDER BY created_at DESC, id DESC LIMIT ?)
	`, fmt.Sprintf("-%d days", retentionDays), keep)
}

// PruneSourceHealth deletes health-check rows older than retentionDays.
func (s *SQLiteStore) PruneSourceHealth(ctx context.Context, retentionDays int, dryRun bool) (int64, error) {
	return s.prune(ctx, dryRun,
		"FROM source_health WHERE checked_at < datetime('now', ?)",
		fmt.Sprintf("-%d days", retentionDays))
}

// prune runs DELETE over the clause, or SELECT COUNT(*) when dryRun is
// set, and returns the affected row count either way.
func (s *SQLiteStore) prune(ctx context.Context, dryRun bool, clause string, args ...any) (int64, error) {
	if dryRun {
		var count int64
		err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) "+clause, args...).Scan(&count)
		if err != nil {
			return 0, fmt.Errorf("failed to count prunable rows: %w", err)
		}
		return count, nil
	}

	res, err := s.db.ExecContext(ctx, "DELETE "+clause, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to prune rows: %w", err)
	}
	return res.RowsAffected()
}

// Vacuum rebuilds the database file to reclaim space after large
// deletes. Holds an exclusive lock while it runs.
func (s *SQLiteStore) Vacuum(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// requireRow turns a zero-row update into a not-found error.
func requireRow(res sql.Result, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("briefing %d not found", id)
	}
	return nil
}
