package main

import (
	"testing"

	"github.com/ew616/project-dailyupdate/internal/types"
)

func TestCollectorName(t *testing.T) {
	rss := types.Source{Name: "BBC News", Kind: types.SourceRSS, URL: "https://feeds.bbci.co.uk/news/rss.xml"}
	if got := collectorName(rss); got != "BBC News" {
		t.Errorf("collectorName(rss) = %q, want %q", got, "BBC News")
	}

	reddit := types.Source{Name: "nyknicks", Kind: types.SourceReddit, Subreddit: "nyknicks"}
	if got := collectorName(reddit); got != "r/nyknicks" {
		t.Errorf("collectorName(reddit) = %q, want %q", got, "r/nyknicks")
	}
}
