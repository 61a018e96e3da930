// Package collect fetches articles from configured news sources and
// filters out articles already stored by earlier runs.
package collect

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ew616/project-dailyupdate/internal/types"
)

const (
	userAgent = "DailyBriefing/1.0"

	// maxSummaryLen caps feed summaries; most feeds ship a paragraph but
	// some inline the whole article.
	maxSummaryLen = 500
)

// Collector fetches articles from a single source.
type Collector interface {
	// Name identifies the source in logs, health records and the digest.
	Name() string

	// Collect fetches the source's current articles. Implementations
	// return an error for transport or parse failures; per-source
	// failure isolation is the runner's job.
	Collect(ctx context.Context) ([]*types.Article, error)
}

// NewHTTPClient builds the shared client used by all collectors.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// FromSources builds a collector per source. Callers filter disabled
// sources first.
func FromSources(sources []types.Source, client *http.Client) []Collector {
	collectors := make([]Collector, 0, len(sources))
	for _, s := range sources {
		switch s.Kind {
		case types.SourceRSS:
			collectors = append(collectors, NewRSSCollector(s.Name, s.URL, client))
		case types.SourceReddit:
			collectors = append(collectors, NewRedditCollector(s.Name, s.Subreddit, client))
		}
	}
	return collectors
}

// stripHTML reduces feed-provided HTML to plain text with single spaces.
func stripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// truncate caps s at limit runes, ellipsized.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
