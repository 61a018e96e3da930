package collect

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/ew616/project-dailyupdate/internal/storage"
	"github.com/ew616/project-dailyupdate/internal/types"
)

// Runner fetches all sources in parallel with bounded concurrency.
// A failing source never fails the batch: it is logged, recorded in
// source health, and reported as unavailable.
type Runner struct {
	store   storage.Store
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// Result is the outcome of one collection pass.
type Result struct {
	// Articles holds every new article in source order, already
	// filtered against the seen-article history.
	Articles []*types.Article

	// Unavailable lists sources that failed this pass, in source order.
	Unavailable []string
}

// NewRunner creates a runner. Concurrency bounds how many sources are
// in flight at once; requestsPerSecond spaces the fetches out so a run
// does not hammer publishers.
func NewRunner(store storage.Store, concurrency int, requestsPerSecond float64) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		store:   store,
		sem:     semaphore.NewWeighted(int64(concurrency)),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Collect runs every collector and aggregates their articles in
// collector order. The only error it returns is context cancellation;
// per-source failures end up in Result.Unavailable.
func (r *Runner) Collect(ctx context.Context, collectors []Collector) (*Result, error) {
	slog.Info("fetching sources", "count", len(collectors))

	perSource := make([][]*types.Article, len(collectors))
	failed := make([]bool, len(collectors))

	var wg sync.WaitGroup
	for i, c := range collectors {
		wg.Add(1)
		go func(i int, c Collector) {
			defer wg.Done()

			if err := r.sem.Acquire(ctx, 1); err != nil {
				failed[i] = true
				return
			}
			defer r.sem.Release(1)

			if err := r.limiter.Wait(ctx); err != nil {
				failed[i] = true
				return
			}

			articles, err := r.collectSource(ctx, c)
			if err != nil {
				slog.Error("collection failed", "source", c.Name(), "error", err)
				r.recordHealth(ctx, c.Name(), types.HealthError, err.Error())
				failed[i] = true
				return
			}

			r.recordHealth(ctx, c.Name(), types.HealthOK, "")
			perSource[i] = articles
		}(i, c)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{}
	for i, c := range collectors {
		result.Articles = append(result.Articles, perSource[i]...)
		if failed[i] {
			result.Unavailable = append(result.Unavailable, c.Name())
		}
	}
	return result, nil
}

// collectSource fetches one source and drops articles already stored by
// earlier runs.
func (r *Runner) collectSource(ctx context.Context, c Collector) ([]*types.Article, error) {
	collected, err := c.Collect(ctx)
	if err != nil {
		return nil, err
	}

	fresh := make([]*types.Article, 0, len(collected))
	for _, article := range collected {
		seen, err := r.store.SeenArticle(ctx, article.URL)
		if err != nil {
			return nil, fmt.Errorf("checking seen articles: %w", err)
		}
		if !seen {
			fresh = append(fresh, article)
		}
	}

	slog.Info("collected source", "source", c.Name(), "new", len(fresh), "fetched", len(collected))
	return fresh, nil
}

// recordHealth writes a health row; a storage hiccup here is worth a
// warning, not a failed source.
func (r *Runner) recordHealth(ctx context.Context, name string, status types.HealthStatus, msg string) {
	if err := r.store.LogSourceHealth(ctx, name, status, msg); err != nil {
		slog.Warn("failed to record source health", "source", name, "error", err)
	}
}
