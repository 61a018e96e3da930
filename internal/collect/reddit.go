package collect

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/ew616/project-dailyupdate/internal/types"
)

const redditBaseURL = "https://www.reddit.com"

// RedditCollector fetches hot posts from a subreddit through Reddit's
// Atom feeds, which hold up better from cloud providers than the JSON
// API does.
type RedditCollector struct {
	name      string
	subreddit string
	baseURL   string
	client    *http.Client
}

// NewRedditCollector creates a collector for one subreddit.
func NewRedditCollector(name, subreddit string, client *http.Client) *RedditCollector {
	return &RedditCollector{
		name:      name,
		subreddit: subreddit,
		baseURL:   redditBaseURL,
		client:    client,
	}
}

// Name returns the source name with the subreddit prefix.
func (c *RedditCollector) Name() string {
	return "r/" + c.name
}

// Collect fetches the subreddit's hot feed.
func (c *RedditCollector) Collect(ctx context.Context) ([]*types.Article, error) {
	url := fmt.Sprintf("%s/r/%s/hot.rss?limit=25", c.baseURL, c.subreddit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent+" (Personal news aggregator)")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching subreddit feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("subreddit feed returned status %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing subreddit feed: %w", err)
	}

	articles := make([]*types.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if article := c.parseItem(item); article != nil {
			articles = append(articles, article)
		}
	}
	return articles, nil
}

// parseItem maps an Atom entry onto an Article. Posts are tagged as
// sports up front since every configured subreddit is a team feed.
func (c *RedditCollector) parseItem(item *gofeed.Item) *types.Article {
	if item.Link == "" || item.Title == "" {
		return nil
	}

	published := item.UpdatedParsed
	if published == nil {
		published = item.PublishedParsed
	}

	author := ""
	if item.Author != nil {
		author = strings.TrimPrefix(item.Author.Name, "/u/")
		if author == "[deleted]" {
			author = ""
		}
	}

	summary := truncate(stripHTML(item.Content), maxSummaryLen)
	if summary == "" {
		summary = fmt.Sprintf("[Post from %s]", c.Name())
	}

	return &types.Article{
		URL:         item.Link,
		Title:       item.Title,
		Source:      c.Name(),
		Summary:     summary,
		Author:      author,
		PublishedAt: published,
		Topic:       types.TopicSports,
	}
}
