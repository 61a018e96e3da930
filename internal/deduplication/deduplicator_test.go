package deduplication

import (
	"testing"

	"github.com/ew616/project-dailyupdate/internal/types"
)

func article(url, title string) *types.Article {
	return &types.Article{URL: url, Title: title, Source: "test"}
}

func checkResult(t *testing.T, result *Result, wantURLs ...string) {
	t.Helper()
	if err := result.Validate(); err != nil {
		t.Fatalf("Result.Validate() error = %v", err)
	}
	if len(result.Unique) != len(wantURLs) {
		t.Fatalf("got %d unique articles, want %d", len(result.Unique), len(wantURLs))
	}
	for i, want := range wantURLs {
		if result.Unique[i].URL != want {
			t.Errorf("Unique[%d].URL = %q, want %q", i, result.Unique[i].URL, want)
		}
	}
}

func TestDeduplicateEmptyBatch(t *testing.T) {
	d := newTestDeduper(t)

	result := d.Deduplicate(nil)
	checkResult(t, result)
	if result.Stats.TotalCandidates != 0 {
		t.Errorf("TotalCandidates = %d, want 0", result.Stats.TotalCandidates)
	}
}

func TestDeduplicateRejectsByURL(t *testing.T) {
	d := newTestDeduper(t)

	// Same story link with tracking noise, completely different wording:
	// URL identity alone rejects it.
	first := article("https://example.com/story?utm_source=x", "Giants stun Cowboys late")
	second := article("https://example.com/story", "An unrelated phrasing nobody would match")

	result := d.Deduplicate([]*types.Article{first, second})
	checkResult(t, result, first.URL)
	if result.Stats.RejectedByURL != 1 {
		t.Errorf("RejectedByURL = %d, want 1", result.Stats.RejectedByURL)
	}
	if result.Stats.RejectedByTitle != 0 {
		t.Errorf("RejectedByTitle = %d, want 0", result.Stats.RejectedByTitle)
	}
	if result.Unique[0] != first {
		t.Error("expected the first occurrence to be kept")
	}
}

func TestDeduplicateRejectsByTitle(t *testing.T) {
	d := newTestDeduper(t)

	tests := []struct {
		name   string
		first  string
		second string
	}{
		{"identical after normalization", "Giants Win Big", "Giants win big!"},
		{"near duplicate wording", "Knicks beat Celtics in overtime", "Knicks beat Celtics in OT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d.Reset()
			a := article("https://a.example.com/1", tt.first)
			b := article("https://b.example.com/2", tt.second)

			result := d.Deduplicate([]*types.Article{a, b})
			checkResult(t, result, a.URL)
			if result.Stats.RejectedByTitle != 1 {
				t.Errorf("RejectedByTitle = %d, want 1", result.Stats.RejectedByTitle)
			}
		})
	}
}

func TestDeduplicateDistinctSurvive(t *testing.T) {
	d := newTestDeduper(t)

	batch := []*types.Article{
		article("https://example.com/politics/1", "Senate passes budget bill"),
		article("https://example.com/sports/2", "Liverpool top the table"),
		article("https://example.com/crypto/3", "Bitcoin steadies after selloff"),
	}

	result := d.Deduplicate(batch)
	checkResult(t, result,
		"https://example.com/politics/1",
		"https://example.com/sports/2",
		"https://example.com/crypto/3",
	)
	if result.Stats.Accepted != 3 {
		t.Errorf("Accepted = %d, want 3", result.Stats.Accepted)
	}
}

func TestDeduplicateMixedBatch(t *testing.T) {
	d := newTestDeduper(t)

	batch := []*types.Article{
		article("https://example.com/story", "Knicks beat Celtics in overtime"),
		article("https://example.com/story?utm_medium=social", "Same link, different share card"),
		article("https://syndicator.example.net/x", "Knicks beat Celtics in OT"),
		article("https://example.com/other", "Fed holds rates steady"),
	}

	result := d.Deduplicate(batch)
	checkResult(t, result,
		"https://example.com/story",
		"https://example.com/other",
	)

	want := Stats{TotalCandidates: 4, Accepted: 2, RejectedByURL: 1, RejectedByTitle: 1}
	if result.Stats != want {
		t.Errorf("Stats = %+v, want %+v", result.Stats, want)
	}
}

func TestDeduplicateAcrossBatches(t *testing.T) {
	d := newTestDeduper(t)

	first := d.Deduplicate([]*types.Article{
		article("https://example.com/story", "Mets walk off in the ninth"),
	})
	checkResult(t, first, "https://example.com/story")

	// History carries across calls on the same engine.
	second := d.Deduplicate([]*types.Article{
		article("https://example.com/story?ref=homepage", "Anything at all"),
		article("https://example.com/recap", "Mets walk off in ninth"),
	})
	checkResult(t, second)
	if second.Stats.RejectedByURL != 1 || second.Stats.RejectedByTitle != 1 {
		t.Errorf("Stats = %+v, want one URL and one title rejection", second.Stats)
	}
}

func TestDeduplicateMalformedURLs(t *testing.T) {
	d := newTestDeduper(t)

	// Unparseable URLs still flow through on raw-string identity.
	batch := []*types.Article{
		article("://broken", "Senate passes budget bill"),
		article("://broken", "Liverpool top the table"),
		article("https://example.com/fine", "Bitcoin steadies after selloff"),
	}

	result := d.Deduplicate(batch)
	checkResult(t, result, "://broken", "https://example.com/fine")

	if result.Stats.URLParseFailures != 2 {
		t.Errorf("URLParseFailures = %d, want 2", result.Stats.URLParseFailures)
	}
	if result.Stats.RejectedByURL != 1 {
		t.Errorf("RejectedByURL = %d, want 1", result.Stats.RejectedByURL)
	}
}

func TestReset(t *testing.T) {
	d := newTestDeduper(t)

	a := article("https://example.com/story", "Giants Win Big")
	checkResult(t, d.Deduplicate([]*types.Article{a}), a.URL)
	checkResult(t, d.Deduplicate([]*types.Article{a}))

	d.Reset()

	// A previously-rejected duplicate is fresh again.
	result := d.Deduplicate([]*types.Article{a})
	checkResult(t, result, a.URL)
}

func TestSimilarityThresholdConfigurable(t *testing.T) {
	batch := func() []*types.Article {
		return []*types.Article{
			article("https://a.example.com/1", "Knicks beat Celtics in overtime"),
			article("https://b.example.com/2", "Knicks beat Celtics in OT"),
		}
	}

	// The pair sits at ~0.893, between the two thresholds.
	strict := DefaultConfig()
	strict.SimilarityThreshold = 0.90
	d, err := New(strict)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	result := d.Deduplicate(batch())
	checkResult(t, result, "https://a.example.com/1", "https://b.example.com/2")

	d = newTestDeduper(t)
	result = d.Deduplicate(batch())
	checkResult(t, result, "https://a.example.com/1")
}

func TestSimilarityThresholdIsInclusive(t *testing.T) {
	// "abcd" vs "bcde" scores exactly 0.75; a candidate at the threshold
	// is a duplicate.
	batch := func() []*types.Article {
		return []*types.Article{
			article("https://a.example.com/1", "abcd"),
			article("https://b.example.com/2", "bcde"),
		}
	}

	cfg := DefaultConfig()
	cfg.SimilarityThreshold = 0.75
	d, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	checkResult(t, d.Deduplicate(batch()), "https://a.example.com/1")

	cfg.SimilarityThreshold = 0.76
	d, err = New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	checkResult(t, d.Deduplicate(batch()), "https://a.example.com/1", "https://b.example.com/2")
}

func TestIsDuplicateDoesNotRecord(t *testing.T) {
	d := newTestDeduper(t)

	a := article("https://example.com/story", "Giants Win Big")
	if d.IsDuplicate(a) {
		t.Error("IsDuplicate() = true on a fresh engine")
	}
	if d.IsDuplicate(a) {
		t.Error("IsDuplicate() recorded state on a previous probe")
	}

	checkResult(t, d.Deduplicate([]*types.Article{a}), a.URL)

	if !d.IsDuplicate(a) {
		t.Error("IsDuplicate() = false after the article was accepted")
	}
	if !d.IsDuplicate(article("https://example.com/story?utm_source=x", "Other")) {
		t.Error("IsDuplicate() = false for an equivalent URL")
	}
	if !d.IsDuplicate(article("https://other.example.com/x", "Giants win big!")) {
		t.Error("IsDuplicate() = false for a near-duplicate title")
	}
	if d.IsDuplicate(article("https://other.example.com/y", "Fed holds rates steady")) {
		t.Error("IsDuplicate() = true for a distinct article")
	}
}

func TestMarkSeen(t *testing.T) {
	d := newTestDeduper(t)

	d.MarkSeen(article("https://example.com/story", "Giants Win Big"))

	result := d.Deduplicate([]*types.Article{
		article("https://example.com/story?gclid=z", "Whatever"),
		article("https://other.example.com/x", "Giants win big!"),
	})
	checkResult(t, result)
}

func TestSeedURLs(t *testing.T) {
	d := newTestDeduper(t)

	d.SeedURLs([]string{"https://example.com/story?utm_source=x"})

	// Seeded URLs reject equivalent links.
	if !d.IsDuplicate(article("https://example.com/story", "Anything")) {
		t.Error("IsDuplicate() = false for a seeded URL")
	}

	// Seeding carries no titles, so wording alone cannot reject.
	result := d.Deduplicate([]*types.Article{
		article("https://other.example.com/x", "Anything"),
	})
	checkResult(t, result, "https://other.example.com/x")
}
