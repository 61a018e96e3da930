package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ew616/project-dailyupdate/internal/types"
)

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources()
	if len(sources) != 9 {
		t.Fatalf("got %d sources, want 9", len(sources))
	}
	for _, s := range sources {
		if err := s.Validate(); err != nil {
			t.Errorf("source %q: %v", s.Name, err)
		}
		if !s.Enabled {
			t.Errorf("source %q should be enabled by default", s.Name)
		}
		if s.Kind != types.SourceRSS {
			t.Errorf("source %q kind = %q, want rss", s.Name, s.Kind)
		}
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	sources, err := LoadSources(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadSources() error = %v", err)
	}
	if len(sources) != len(DefaultSources()) {
		t.Errorf("got %d sources, want the built-in list", len(sources))
	}
}

func TestLoadSourcesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	content := `sources:
  - name: BBC
    kind: rss
    url: https://feeds.bbci.co.uk/news/rss.xml
    enabled: true
  - name: r/nyknicks
    kind: reddit
    subreddit: nyknicks
    enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	sources, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources() error = %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(sources))
	}
	if sources[1].Kind != types.SourceReddit || sources[1].Subreddit != "nyknicks" {
		t.Errorf("reddit source parsed as %+v", sources[1])
	}

	enabled := EnabledSources(sources)
	if len(enabled) != 1 || enabled[0].Name != "BBC" {
		t.Errorf("EnabledSources() = %+v, want just BBC", enabled)
	}
}

func TestLoadSourcesBadFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not yaml", "{{{"},
		{"empty list", "sources: []\n"},
		{"rss without url", "sources:\n  - name: X\n    kind: rss\n    enabled: true\n"},
		{"unknown kind", "sources:\n  - name: X\n    kind: telegraph\n    url: https://example.com\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sources.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadSources(path); err == nil {
				t.Error("LoadSources() = nil error, want failure")
			}
		})
	}
}

func TestWriteExampleSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")

	if err := WriteExampleSources(path); err != nil {
		t.Fatalf("WriteExampleSources() error = %v", err)
	}

	sources, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources() on written file error = %v", err)
	}
	if len(sources) != len(DefaultSources()) {
		t.Errorf("round-trip produced %d sources, want %d", len(sources), len(DefaultSources()))
	}

	if err := WriteExampleSources(path); err == nil {
		t.Error("WriteExampleSources() should refuse to overwrite")
	}
}
