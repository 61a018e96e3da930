// Package pipeline runs the daily briefing sequence end to end:
// collect, deduplicate, classify, synthesize, render, deliver.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ew616/project-dailyupdate/internal/classify"
	"github.com/ew616/project-dailyupdate/internal/collect"
	"github.com/ew616/project-dailyupdate/internal/config"
	"github.com/ew616/project-dailyupdate/internal/deduplication"
	"github.com/ew616/project-dailyupdate/internal/delivery"
	"github.com/ew616/project-dailyupdate/internal/digest"
	"github.com/ew616/project-dailyupdate/internal/storage"
	"github.com/ew616/project-dailyupdate/internal/types"
)

// Sender delivers a rendered briefing and returns the provider's email ID.
type Sender interface {
	SendBriefing(ctx context.Context, now time.Time, html string) (string, error)
}

// Weather supplies the conditions line for the briefing header. An empty
// string means no weather; the header renders without it.
type Weather interface {
	Current(ctx context.Context) string
}

// Options bundles the pipeline's collaborators. Synthesizer may be nil
// to build headline-only sections, Weather may be nil to skip the
// header line, and Sender may be nil when Config.DryRun is set.
type Options struct {
	Config      *config.Config
	Store       storage.Store
	Collectors  []collect.Collector
	Sender      Sender
	Weather     Weather
	Synthesizer digest.Synthesizer
}

// Pipeline executes one briefing run. Construct a fresh one per run;
// the deduplication history it owns must not leak across runs.
type Pipeline struct {
	cfg        *config.Config
	store      storage.Store
	collectors []collect.Collector
	runner     *collect.Runner
	deduper    *deduplication.Deduper
	builder    *digest.Builder
	sender     Sender
	weather    Weather

	// now is replaceable in tests; everything date-sensitive in a run
	// (staleness cutoff, briefing subject) goes through it.
	now func() time.Time
}

// New assembles a pipeline from the given collaborators.
func New(opts Options) (*Pipeline, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("pipeline requires a config")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("pipeline requires a store")
	}
	if opts.Sender == nil && !opts.Config.DryRun {
		return nil, fmt.Errorf("pipeline requires a sender unless dry-run is set")
	}

	deduper, err := deduplication.New(opts.Config.Dedup)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:        opts.Config,
		store:      opts.Store,
		collectors: opts.Collectors,
		runner:     collect.NewRunner(opts.Store, opts.Config.FetchConcurrency, opts.Config.RequestsPerSecond),
		deduper:    deduper,
		builder:    digest.NewBuilder(opts.Synthesizer),
		sender:     opts.Sender,
		weather:    opts.Weather,
		now:        time.Now,
	}, nil
}

// Result summarizes a completed run. A run with no new articles is
// still a success: Articles is zero and no briefing row exists.
type Result struct {
	// BriefingID is the stored briefing row, 0 when the run produced none.
	BriefingID int64

	// EmailID is the provider's ID for the sent email, empty on dry runs.
	EmailID string

	// Articles is how many articles made it into the briefing.
	Articles int

	// Sections is how many topic sections the briefing has.
	Sections int

	// Unavailable lists sources that failed during collection.
	Unavailable []string
}

// Run executes the pipeline once. Collection failures for individual
// sources are tolerated and reported in the result; anything after
// collection that fails aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	log := slog.With("run", uuid.New().String()[:8])
	log.Info("starting briefing run",
		"sources", len(p.collectors),
		"dry_run", p.cfg.DryRun)

	collected, err := p.runner.Collect(ctx, p.collectors)
	if err != nil {
		return nil, fmt.Errorf("collecting articles: %w", err)
	}
	log.Info("collected new articles",
		"count", len(collected.Articles),
		"unavailable", len(collected.Unavailable))

	if len(collected.Articles) == 0 {
		log.Warn("no new articles to process")
		return &Result{Unavailable: collected.Unavailable}, nil
	}

	deduped := p.deduper.Deduplicate(collected.Articles)
	log.Info("deduplicated articles",
		"kept", deduped.Stats.Accepted,
		"by_url", deduped.Stats.RejectedByURL,
		"by_title", deduped.Stats.RejectedByTitle)

	articles := filterRecent(deduped.Unique, p.now(), p.cfg.MaxArticleAge)
	if dropped := len(deduped.Unique) - len(articles); dropped > 0 {
		log.Info("dropped stale articles", "dropped", dropped, "max_age", p.cfg.MaxArticleAge)
	}
	if len(articles) == 0 {
		log.Warn("no recent articles to process")
		return &Result{Unavailable: collected.Unavailable}, nil
	}

	classify.Articles(articles)

	for _, article := range articles {
		if _, err := p.store.SaveArticle(ctx, article, nil); err != nil {
			return nil, fmt.Errorf("saving article %q: %w", article.URL, err)
		}
	}

	sections := p.builder.Build(ctx, articles)

	var conditions string
	if p.weather != nil {
		conditions = p.weather.Current(ctx)
	}

	now := p.now()
	html, err := delivery.RenderBriefing(now, sections, conditions, collected.Unavailable, len(articles))
	if err != nil {
		return nil, err
	}
	topics, err := topicsJSON(sections)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Articles:    len(articles),
		Sections:    len(sections),
		Unavailable: collected.Unavailable,
	}

	if p.cfg.DryRun {
		printBriefing(sections, collected.Unavailable)
		result.BriefingID, err = p.store.CreateBriefing(ctx, topics, html)
		if err != nil {
			return nil, fmt.Errorf("recording briefing: %w", err)
		}
		log.Info("briefing saved without sending", "briefing", result.BriefingID)
		return result, nil
	}

	result.BriefingID, err = p.store.CreateBriefing(ctx, topics, html)
	if err != nil {
		return nil, fmt.Errorf("recording briefing: %w", err)
	}

	result.EmailID, err = p.sender.SendBriefing(ctx, now, html)
	if err != nil {
		if markErr := p.store.MarkBriefingFailed(ctx, result.BriefingID); markErr != nil {
			log.Error("failed to mark briefing failed",
				"briefing", result.BriefingID, "error", markErr)
		}
		return nil, fmt.Errorf("sending briefing: %w", err)
	}
	if err := p.store.MarkBriefingSent(ctx, result.BriefingID); err != nil {
		return nil, fmt.Errorf("marking briefing sent: %w", err)
	}

	log.Info("briefing sent",
		"briefing", result.BriefingID,
		"email", result.EmailID,
		"articles", result.Articles)
	return result, nil
}

// filterRecent drops articles published before the cutoff. Articles
// without a publication date are kept; their age cannot be determined.
func filterRecent(articles []*types.Article, now time.Time, maxAge time.Duration) []*types.Article {
	cutoff := now.Add(-maxAge)
	recent := make([]*types.Article, 0, len(articles))
	for _, article := range articles {
		if article.PublishedAt == nil || !article.PublishedAt.Before(cutoff) {
			recent = append(recent, article)
		}
	}
	return recent
}

// topicsJSON encodes the sections as a topic-to-content object for the
// briefing row.
func topicsJSON(sections []digest.Section) (string, error) {
	topics := make(map[string]string, len(sections))
	for _, section := range sections {
		topics[section.Topic] = section.Content
	}
	data, err := json.Marshal(topics)
	if err != nil {
		return "", fmt.Errorf("encoding topics: %w", err)
	}
	return string(data), nil
}

// printBriefing writes the dry-run briefing to stdout.
func printBriefing(sections []digest.Section, unavailable []string) {
	banner := strings.Repeat("=", 60)
	fmt.Println("\n" + banner)
	fmt.Println("DAILY BRIEFING (DRY RUN)")
	fmt.Println(banner)
	for _, section := range sections {
		fmt.Printf("\n## %s\n\n", strings.ToUpper(section.Topic))
		fmt.Println(section.Content)
	}
	fmt.Println("\n" + banner)
	if len(unavailable) > 0 {
		fmt.Printf("\nUnavailable sources: %s\n", strings.Join(unavailable, ", "))
	}
}
