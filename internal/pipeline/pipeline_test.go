package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ew616/project-dailyupdate/internal/collect"
	"github.com/ew616/project-dailyupdate/internal/config"
	"github.com/ew616/project-dailyupdate/internal/digest"
	"github.com/ew616/project-dailyupdate/internal/types"
)

var runTime = time.Date(2026, time.January, 17, 9, 0, 0, 0, time.UTC)

type savedArticle struct {
	article    *types.Article
	briefingID *int64
}

type fakeBriefing struct {
	topics string
	html   string
	status types.BriefingStatus
}

// fakeStore records writes and serves the seen-article check from a map.
type fakeStore struct {
	mu        sync.Mutex
	seen      map[string]bool
	saved     []savedArticle
	briefings map[int64]*fakeBriefing
	nextID    int64

	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		seen:      make(map[string]bool),
		briefings: make(map[int64]*fakeBriefing),
	}
}

func (f *fakeStore) SeenArticle(ctx context.Context, url string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[url], nil
}

func (f *fakeStore) SaveArticle(ctx context.Context, article *types.Article, briefingID *int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, savedArticle{article: article, briefingID: briefingID})
	return int64(len(f.saved)), nil
}

func (f *fakeStore) ClearArticles(ctx context.Context) (int64, error) { return 0, nil }

func (f *fakeStore) CreateBriefing(ctx context.Context, topicsJSON, htmlContent string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	f.briefings[f.nextID] = &fakeBriefing{
		topics: topicsJSON,
		html:   htmlContent,
		status: types.BriefingCreated,
	}
	return f.nextID, nil
}

func (f *fakeStore) MarkBriefingSent(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.briefings[id].status = types.BriefingSent
	return nil
}

func (f *fakeStore) MarkBriefingFailed(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.briefings[id].status = types.BriefingFailed
	return nil
}

func (f *fakeStore) ListBriefings(ctx context.Context, limit int) ([]*types.Briefing, error) {
	return nil, nil
}

func (f *fakeStore) LogSourceHealth(ctx context.Context, sourceName string, status types.HealthStatus, errorMessage string) error {
	return nil
}

func (f *fakeStore) FailedSourcesToday(ctx context.Context) ([]string, error) { return nil, nil }

func (f *fakeStore) RecentSourceHealth(ctx context.Context, limit int) ([]*types.SourceHealth, error) {
	return nil, nil
}

func (f *fakeStore) PruneArticles(ctx context.Context, retentionDays int, dryRun bool) (int64, error) {
	return 0, nil
}

func (f *fakeStore) PruneBriefings(ctx context.Context, retentionDays, keep int, dryRun bool) (int64, error) {
	return 0, nil
}

func (f *fakeStore) PruneSourceHealth(ctx context.Context, retentionDays int, dryRun bool) (int64, error) {
	return 0, nil
}

func (f *fakeStore) Vacuum(ctx context.Context) error { return nil }

func (f *fakeStore) Close() error { return nil }

type stubCollector struct {
	name     string
	articles []*types.Article
	err      error
}

func (s *stubCollector) Name() string { return s.name }

func (s *stubCollector) Collect(ctx context.Context) ([]*types.Article, error) {
	return s.articles, s.err
}

type fakeSender struct {
	mu    sync.Mutex
	calls int
	html  string
	at    time.Time
	err   error
}

func (f *fakeSender) SendBriefing(ctx context.Context, now time.Time, html string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.html = html
	f.at = now
	if f.err != nil {
		return "", f.err
	}
	return "email-123", nil
}

type fakeWeather string

func (w fakeWeather) Current(ctx context.Context) string { return string(w) }

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.EmailTo = "elias@example.com"
	cfg.RequestsPerSecond = 1000
	return cfg
}

func newTestPipeline(t *testing.T, opts Options) *Pipeline {
	t.Helper()
	p, err := New(opts)
	require.NoError(t, err)
	p.now = func() time.Time { return runTime }
	return p
}

func testArticle(url, title string, published time.Time) *types.Article {
	return &types.Article{
		URL:         url,
		Title:       title,
		Source:      "Test Feed",
		PublishedAt: &published,
	}
}

func TestRunSendsBriefing(t *testing.T) {
	recent := runTime.Add(-24 * time.Hour)
	store := newFakeStore()
	sender := &fakeSender{}

	collectors := []collect.Collector{
		&stubCollector{name: "BBC News", articles: []*types.Article{
			testArticle("https://example.com/budget", "Senate passes sweeping budget bill", recent),
			testArticle("https://example.com/knicks", "Knicks beat the Celtics at the Garden", recent),
		}},
		// Same URL as the BBC story above; deduplication should drop it.
		&stubCollector{name: "r/nyknicks", articles: []*types.Article{
			testArticle("https://example.com/knicks", "Knicks beat the Celtics at the Garden", recent),
		}},
		&stubCollector{name: "ESPN", err: errors.New("connection reset")},
	}

	p := newTestPipeline(t, Options{
		Config:     testConfig(),
		Store:      store,
		Collectors: collectors,
		Sender:     sender,
		Weather:    fakeWeather("New York ☀️ +72°F"),
	})

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Articles)
	assert.Equal(t, 2, result.Sections)
	assert.Equal(t, int64(1), result.BriefingID)
	assert.Equal(t, "email-123", result.EmailID)
	assert.Equal(t, []string{"ESPN"}, result.Unavailable)

	require.Len(t, store.saved, 2)
	assert.Equal(t, types.TopicPolitics, store.saved[0].article.Topic)
	assert.Equal(t, types.TopicSports, store.saved[1].article.Topic)
	assert.Nil(t, store.saved[0].briefingID)

	briefing := store.briefings[1]
	require.NotNil(t, briefing)
	assert.Equal(t, types.BriefingSent, briefing.status)

	var topics map[string]string
	require.NoError(t, json.Unmarshal([]byte(briefing.topics), &topics))
	assert.Contains(t, topics, types.TopicSports)
	assert.Contains(t, topics, types.TopicPolitics)

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, runTime, sender.at)
	assert.Contains(t, sender.html, ">SPORTS</h2>")
	assert.Contains(t, sender.html, "New York ☀️ +72°F")
	assert.Contains(t, sender.html, "Unavailable sources: ESPN")
	assert.Contains(t, sender.html, "Compiled from 2 articles.")
}

func TestRunDryRunSavesWithoutSending(t *testing.T) {
	recent := runTime.Add(-time.Hour)
	store := newFakeStore()
	cfg := testConfig()
	cfg.DryRun = true

	p := newTestPipeline(t, Options{
		Config: cfg,
		Store:  store,
		Collectors: []collect.Collector{
			&stubCollector{name: "BBC News", articles: []*types.Article{
				testArticle("https://example.com/vote", "Congress schedules the vote", recent),
			}},
		},
	})

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.BriefingID)
	assert.Empty(t, result.EmailID)

	briefing := store.briefings[1]
	require.NotNil(t, briefing)
	assert.Equal(t, types.BriefingCreated, briefing.status)
}

func TestRunNoNewArticles(t *testing.T) {
	store := newFakeStore()
	store.seen["https://example.com/old"] = true
	sender := &fakeSender{}

	p := newTestPipeline(t, Options{
		Config: testConfig(),
		Store:  store,
		Collectors: []collect.Collector{
			&stubCollector{name: "BBC News", articles: []*types.Article{
				testArticle("https://example.com/old", "Already seen story", runTime),
			}},
		},
		Sender: sender,
	})

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, result.BriefingID)
	assert.Zero(t, result.Articles)
	assert.Empty(t, store.saved)
	assert.Empty(t, store.briefings)
	assert.Zero(t, sender.calls)
}

func TestRunDropsStaleArticles(t *testing.T) {
	stale := runTime.Add(-8 * 24 * time.Hour)
	store := newFakeStore()
	sender := &fakeSender{}

	p := newTestPipeline(t, Options{
		Config: testConfig(),
		Store:  store,
		Collectors: []collect.Collector{
			&stubCollector{name: "BBC News", articles: []*types.Article{
				testArticle("https://example.com/stale", "Last week's election recap", stale),
			}},
		},
		Sender: sender,
	})

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, result.Articles)
	assert.Empty(t, store.saved)
	assert.Zero(t, sender.calls)
}

func TestRunSendFailureMarksBriefingFailed(t *testing.T) {
	recent := runTime.Add(-time.Hour)
	store := newFakeStore()
	sender := &fakeSender{err: errors.New("resend unavailable")}

	p := newTestPipeline(t, Options{
		Config: testConfig(),
		Store:  store,
		Collectors: []collect.Collector{
			&stubCollector{name: "BBC News", articles: []*types.Article{
				testArticle("https://example.com/vote", "Senate schedules the vote", recent),
			}},
		},
		Sender: sender,
	})

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending briefing")

	briefing := store.briefings[1]
	require.NotNil(t, briefing)
	assert.Equal(t, types.BriefingFailed, briefing.status)
}

func TestNewValidatesOptions(t *testing.T) {
	store := newFakeStore()

	_, err := New(Options{Store: store, Sender: &fakeSender{}})
	assert.ErrorContains(t, err, "config")

	_, err = New(Options{Config: testConfig(), Sender: &fakeSender{}})
	assert.ErrorContains(t, err, "store")

	_, err = New(Options{Config: testConfig(), Store: store})
	assert.ErrorContains(t, err, "sender")

	dry := testConfig()
	dry.DryRun = true
	_, err = New(Options{Config: dry, Store: store})
	assert.NoError(t, err)
}

func TestFilterRecent(t *testing.T) {
	maxAge := 7 * 24 * time.Hour
	cutoff := runTime.Add(-maxAge)

	fresh := testArticle("https://example.com/a", "Fresh", runTime.Add(-time.Hour))
	atCutoff := testArticle("https://example.com/b", "At cutoff", cutoff)
	stale := testArticle("https://example.com/c", "Stale", cutoff.Add(-time.Minute))
	undated := &types.Article{URL: "https://example.com/d", Title: "Undated", Source: "Test Feed"}

	kept := filterRecent([]*types.Article{fresh, atCutoff, stale, undated}, runTime, maxAge)

	require.Len(t, kept, 3)
	assert.Same(t, fresh, kept[0])
	assert.Same(t, atCutoff, kept[1])
	assert.Same(t, undated, kept[2])
}

func TestTopicsJSON(t *testing.T) {
	encoded, err := topicsJSON([]digest.Section{
		{Topic: types.TopicSports, Content: "**Knicks**\n• [Win](https://example.com/w)"},
		{Topic: types.TopicPolitics, Content: "• [Vote](https://example.com/v)"},
	})
	require.NoError(t, err)

	var topics map[string]string
	require.NoError(t, json.Unmarshal([]byte(encoded), &topics))
	assert.Len(t, topics, 2)
	assert.Equal(t, "• [Vote](https://example.com/v)", topics[types.TopicPolitics])
}
