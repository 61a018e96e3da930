package deduplication

import (
	"fmt"
	"strings"

	"github.com/ew616/project-dailyupdate/internal/types"
)

// Deduper rejects articles that duplicate something already accepted,
// either by normalized URL or by title similarity.
//
// A Deduper owns its accept/reject history and is constructed fresh per
// run. It is not safe for concurrent use: the batch contract is order
// dependent, so callers must serialize candidates into one deterministic
// sequence before handing them over.
//
// Example usage:
//
//	dedup, err := deduplication.New(deduplication.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	result := dedup.Deduplicate(articles)
//	slog.Info("deduplicated batch",
//	    "kept", result.Stats.Accepted,
//	    "total", result.Stats.TotalCandidates)
type Deduper struct {
	cfg   Config
	strip map[string]struct{}

	seenURLs   map[string]struct{}
	seenTitles []string
}

// New creates a Deduper with the given configuration.
func New(cfg Config) (*Deduper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deduplication config: %w", err)
	}

	strip := make(map[string]struct{}, len(cfg.StripParams))
	for _, p := range cfg.StripParams {
		strip[strings.ToLower(p)] = struct{}{}
	}

	return &Deduper{
		cfg:      cfg,
		strip:    strip,
		seenURLs: make(map[string]struct{}),
	}, nil
}

// Result describes one batch pass
type Result struct {
	// Unique holds the accepted articles in their original relative order
	Unique []*types.Article `json:"unique"`

	// Stats describes how the batch split
	Stats Stats `json:"stats"`
}

// Stats provides counters for one batch pass
type Stats struct {
	// TotalCandidates is the number of articles evaluated
	TotalCandidates int `json:"total_candidates"`

	// Accepted is the number of articles that survived
	Accepted int `json:"accepted"`

	// RejectedByURL counts articles whose normalized URL was already seen
	RejectedByURL int `json:"rejected_by_url"`

	// RejectedByTitle counts articles too similar to an accepted title
	RejectedByTitle int `json:"rejected_by_title"`

	// URLParseFailures counts articles whose URL could not be parsed and
	// was compared as a raw string instead
	URLParseFailures int `json:"url_parse_failures,omitempty"`
}

// Validate checks if the result counters are internally consistent
func (r *Result) Validate() error {
	if len(r.Unique) != r.Stats.Accepted {
		return fmt.Errorf("stats.accepted (%d) does not match unique length (%d)",
			r.Stats.Accepted, len(r.Unique))
	}
	sum := r.Stats.Accepted + r.Stats.RejectedByURL + r.Stats.RejectedByTitle
	if r.Stats.TotalCandidates != sum {
		return fmt.Errorf("stats.total_candidates (%d) does not match accepted + rejected (%d)",
			r.Stats.TotalCandidates, sum)
	}
	return nil
}

// Deduplicate performs a single ordered pass over the batch. A candidate
// is rejected when its normalized URL was already accepted, or when its
// title is similar to any previously accepted title at or above the
// configured threshold. Accepted candidates are recorded before the next
// candidate is evaluated, so the first occurrence of a duplicated story
// always wins and the output preserves the input's relative order.
//
// The engine performs no I/O and never fails a batch: a URL parse failure
// degrades to raw-string comparison and shows up in the stats.
func (d *Deduper) Deduplicate(articles []*types.Article) *Result {
	result := &Result{Unique: make([]*types.Article, 0, len(articles))}

	for _, article := range articles {
		result.Stats.TotalCandidates++

		normalized, parsed := d.normalizeURL(article.URL)
		if !parsed {
			result.Stats.URLParseFailures++
		}

		if _, seen := d.seenURLs[normalized]; seen {
			result.Stats.RejectedByURL++
			continue
		}
		if d.similarToSeen(article.Title) {
			result.Stats.RejectedByTitle++
			continue
		}

		d.seenURLs[normalized] = struct{}{}
		d.seenTitles = append(d.seenTitles, article.Title)
		result.Unique = append(result.Unique, article)
		result.Stats.Accepted++
	}

	return result
}

// IsDuplicate reports whether the article would be rejected against the
// current history, without recording it.
func (d *Deduper) IsDuplicate(article *types.Article) bool {
	normalized, _ := d.normalizeURL(article.URL)
	if _, seen := d.seenURLs[normalized]; seen {
		return true
	}
	return d.similarToSeen(article.Title)
}

// MarkSeen records the article in the history without emitting it.
// Useful for seeding a run with articles accepted elsewhere.
func (d *Deduper) MarkSeen(article *types.Article) {
	normalized, _ := d.normalizeURL(article.URL)
	d.seenURLs[normalized] = struct{}{}
	d.seenTitles = append(d.seenTitles, article.Title)
}

// SeedURLs adds already-accepted URLs to the seen-URL set without adding
// anything to the title history. Cross-run state only persists URLs, so
// this is the seeding path for history loaded from storage.
func (d *Deduper) SeedURLs(urls []string) {
	for _, u := range urls {
		normalized, _ := d.normalizeURL(u)
		d.seenURLs[normalized] = struct{}{}
	}
}

// Reset clears the accept/reject history. This is an operator action for
// starting fresh; the engine never does it on its own.
func (d *Deduper) Reset() {
	d.seenURLs = make(map[string]struct{})
	d.seenTitles = d.seenTitles[:0]
}

// similarToSeen scans the accepted-title history in order. O(accepted)
// per candidate, O(n²) per batch; fine at a few hundred articles per run.
func (d *Deduper) similarToSeen(title string) bool {
	for _, seen := range d.seenTitles {
		if d.TitleSimilarity(title, seen) >= d.cfg.SimilarityThreshold {
			return true
		}
	}
	return false
}
