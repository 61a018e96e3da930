package types

import (
	"fmt"
	"strings"
	"time"
)

// Article is the unified article representation produced by every collector.
// URL and Title are the identity fields the rest of the pipeline keys on;
// everything else is display metadata.
type Article struct {
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Source      string     `json:"source"`
	Summary     string     `json:"summary,omitempty"`
	Content     string     `json:"content,omitempty"`
	Author      string     `json:"author,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Topic       string     `json:"topic,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// Validate checks if the article has valid field values
func (a *Article) Validate() error {
	if strings.TrimSpace(a.URL) == "" {
		return fmt.Errorf("url is required")
	}
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(a.Source) == "" {
		return fmt.Errorf("source is required")
	}
	return nil
}

// Equal reports whether two articles refer to the same resource.
// Identity is the URL; titles and metadata may differ between feeds.
func (a *Article) Equal(other *Article) bool {
	if other == nil {
		return false
	}
	return a.URL == other.URL
}

// Topic names assigned by the classifier. TopicGeneral is the fallback
// for articles no keyword table claimed; it is never shown in a briefing.
const (
	TopicPolitics = "politics"
	TopicCrypto   = "crypto"
	TopicMovies   = "movies"
	TopicBusiness = "business"
	TopicSports   = "sports"
	TopicGeneral  = "general"
)

// Topics lists the classifiable topics in classifier tie-break order.
// TopicGeneral is not a member; it is a fallback, not a briefing topic.
var Topics = []string{TopicPolitics, TopicCrypto, TopicMovies, TopicBusiness, TopicSports}

// SourceKind identifies the collector implementation for a source
type SourceKind string

const (
	SourceRSS    SourceKind = "rss"
	SourceReddit SourceKind = "reddit"
)

// IsValid checks if the source kind value is valid
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceRSS, SourceReddit:
		return true
	}
	return false
}

// Source is one configured feed to collect from
type Source struct {
	Name      string     `yaml:"name" json:"name"`
	Kind      SourceKind `yaml:"kind" json:"kind"`
	URL       string     `yaml:"url,omitempty" json:"url,omitempty"`
	Subreddit string     `yaml:"subreddit,omitempty" json:"subreddit,omitempty"`
	Enabled   bool       `yaml:"enabled" json:"enabled"`
}

// Validate checks if the source has valid field values
func (s *Source) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("source name is required")
	}
	if !s.Kind.IsValid() {
		return fmt.Errorf("invalid source kind: %q", s.Kind)
	}
	switch s.Kind {
	case SourceRSS:
		if strings.TrimSpace(s.URL) == "" {
			return fmt.Errorf("source %s: url is required for rss sources", s.Name)
		}
	case SourceReddit:
		if strings.TrimSpace(s.Subreddit) == "" {
			return fmt.Errorf("source %s: subreddit is required for reddit sources", s.Name)
		}
	}
	return nil
}

// BriefingStatus represents the delivery state of a briefing record
type BriefingStatus string

const (
	BriefingPending BriefingStatus = "pending"
	BriefingCreated BriefingStatus = "created"
	BriefingSent    BriefingStatus = "sent"
	BriefingFailed  BriefingStatus = "failed"
)

// IsValid checks if the briefing status value is valid
func (s BriefingStatus) IsValid() bool {
	switch s {
	case BriefingPending, BriefingCreated, BriefingSent, BriefingFailed:
		return true
	}
	return false
}

// Briefing is one rendered daily digest and its delivery outcome
type Briefing struct {
	ID          int64          `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	TopicsJSON  string         `json:"topics_json"`
	HTMLContent string         `json:"html_content,omitempty"`
	SentAt      *time.Time     `json:"sent_at,omitempty"`
	Status      BriefingStatus `json:"status"`
}

// HealthStatus records the outcome of one collection attempt for a source
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthError HealthStatus = "error"
)

// IsValid checks if the health status value is valid
func (s HealthStatus) IsValid() bool {
	switch s {
	case HealthOK, HealthError:
		return true
	}
	return false
}

// SourceHealth is one health-check row for a source
type SourceHealth struct {
	ID           int64        `json:"id"`
	SourceName   string       `json:"source_name"`
	CheckedAt    time.Time    `json:"checked_at"`
	Status       HealthStatus `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
}
