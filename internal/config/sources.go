package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ew616/project-dailyupdate/internal/types"
)

// sourcesFile is the on-disk shape of the source list.
type sourcesFile struct {
	Sources []types.Source `yaml:"sources"`
}

// DefaultSources returns the built-in source list used when no sources
// file exists.
func DefaultSources() []types.Source {
	return []types.Source{
		{Name: "NYT", Kind: types.SourceRSS, URL: "https://rss.nytimes.com/services/xml/rss/nyt/HomePage.xml", Enabled: true},
		{Name: "Guardian", Kind: types.SourceRSS, URL: "https://www.theguardian.com/international/rss", Enabled: true},
		{Name: "Athletic", Kind: types.SourceRSS, URL: "https://www.nytimes.com/athletic/feeds/rss/news/", Enabled: true},
		{Name: "ESPN", Kind: types.SourceRSS, URL: "https://www.espn.com/espn/rss/news", Enabled: true},
		{Name: "BBC", Kind: types.SourceRSS, URL: "https://feeds.bbci.co.uk/news/rss.xml", Enabled: true},
		{Name: "Atlantic", Kind: types.SourceRSS, URL: "https://www.theatlantic.com/feed/all/", Enabled: true},
		{Name: "NewYorker", Kind: types.SourceRSS, URL: "https://www.newyorker.com/feed/everything", Enabled: true},
		{Name: "CoinDesk", Kind: types.SourceRSS, URL: "https://www.coindesk.com/arc/outboundfeeds/rss/", Enabled: true},
		{Name: "CNBC", Kind: types.SourceRSS, URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html", Enabled: true},
	}
}

// LoadSources reads the source list from the given YAML file. A missing
// file falls back to the built-in list; a present but broken file is an
// error, since silently dropping a configured source list would be worse
// than failing the run.
func LoadSources(path string) ([]types.Source, error) {
	if path == "" {
		return DefaultSources(), nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultSources(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing sources file: %w", err)
	}
	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s lists no sources", path)
	}

	for i := range file.Sources {
		if err := file.Sources[i].Validate(); err != nil {
			return nil, fmt.Errorf("sources file %s entry %d: %w", path, i, err)
		}
	}
	return file.Sources, nil
}

// EnabledSources filters the list down to sources that should be fetched.
func EnabledSources(sources []types.Source) []types.Source {
	enabled := make([]types.Source, 0, len(sources))
	for _, s := range sources {
		if s.Enabled {
			enabled = append(enabled, s)
		}
	}
	return enabled
}

// WriteExampleSources writes a starter sources file with the built-in
// list, for operators who want to edit it. Refuses to overwrite.
func WriteExampleSources(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	data, err := yaml.Marshal(sourcesFile{Sources: DefaultSources()})
	if err != nil {
		return fmt.Errorf("encoding sources: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing sources file: %w", err)
	}
	return nil
}
