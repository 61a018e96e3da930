package collect

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmcdole/gofeed"

	"github.com/ew616/project-dailyupdate/internal/types"
)

// RSSCollector fetches articles from an RSS or Atom feed.
type RSSCollector struct {
	name   string
	url    string
	client *http.Client
}

// NewRSSCollector creates a collector for one feed.
func NewRSSCollector(name, feedURL string, client *http.Client) *RSSCollector {
	return &RSSCollector{name: name, url: feedURL, client: client}
}

// Name returns the source name.
func (c *RSSCollector) Name() string {
	return c.name
}

// Collect fetches and parses the feed.
func (c *RSSCollector) Collect(ctx context.Context) ([]*types.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	articles := make([]*types.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if article := c.parseItem(item); article != nil {
			articles = append(articles, article)
		}
	}
	return articles, nil
}

// parseItem maps a feed item onto an Article. Items without a link or a
// title are dropped.
func (c *RSSCollector) parseItem(item *gofeed.Item) *types.Article {
	if item.Link == "" || item.Title == "" {
		return nil
	}

	summary := item.Description
	if summary == "" {
		summary = item.Content
	}
	if summary != "" {
		summary = truncate(stripHTML(summary), maxSummaryLen)
	}

	published := item.PublishedParsed
	if published == nil {
		published = item.UpdatedParsed
	}

	author := ""
	if item.Author != nil {
		author = item.Author.Name
	}

	tags := make([]string, len(item.Categories))
	copy(tags, item.Categories)

	return &types.Article{
		URL:         item.Link,
		Title:       item.Title,
		Source:      c.name,
		Summary:     summary,
		Author:      author,
		PublishedAt: published,
		Tags:        tags,
	}
}
