// Package digest turns classified articles into the per-topic sections
// of a briefing.
package digest

import (
	"context"
	"log/slog"

	"github.com/ew616/project-dailyupdate/internal/types"
)

// Section is one topic's briefing content, in markdown.
type Section struct {
	Topic   string
	Content string
}

// TopicOrder is the display order of briefing sections. Known topics
// outside this list would follow in first-seen order; unclassified
// ("general") articles never appear.
var TopicOrder = []string{
	types.TopicSports,
	types.TopicPolitics,
	types.TopicBusiness,
	types.TopicCrypto,
	types.TopicMovies,
}

// Synthesizer produces one topic's section content from its articles.
type Synthesizer interface {
	Synthesize(ctx context.Context, topic string, articles []*types.Article) (string, error)
}

// Builder assembles briefing sections: Claude synthesis when a
// Synthesizer is configured, headline lists otherwise.
type Builder struct {
	synth Synthesizer
}

// NewBuilder creates a builder. A nil synthesizer selects headlines mode.
func NewBuilder(synth Synthesizer) *Builder {
	return &Builder{synth: synth}
}

// Build groups articles by topic and renders one section per topic in
// display order.
func (b *Builder) Build(ctx context.Context, articles []*types.Article) []Section {
	if len(articles) == 0 {
		return nil
	}

	byTopic := make(map[string][]*types.Article)
	var firstSeen []string
	for _, article := range articles {
		topic := article.Topic
		if topic == "" {
			topic = types.TopicGeneral
		}
		if _, ok := byTopic[topic]; !ok {
			firstSeen = append(firstSeen, topic)
		}
		byTopic[topic] = append(byTopic[topic], article)
	}

	var sections []Section
	done := make(map[string]bool)
	for _, topic := range TopicOrder {
		group, ok := byTopic[topic]
		if !ok {
			continue
		}
		sections = append(sections, b.section(ctx, topic, group))
		done[topic] = true
	}

	// Classifier topics that fell outside the display order, in the
	// order they first appeared.
	for _, topic := range firstSeen {
		if done[topic] || !knownTopic(topic) {
			continue
		}
		sections = append(sections, b.section(ctx, topic, byTopic[topic]))
		done[topic] = true
	}

	return sections
}

func (b *Builder) section(ctx context.Context, topic string, articles []*types.Article) Section {
	slog.Info("building section", "topic", topic, "articles", len(articles))

	if b.synth != nil {
		content, err := b.synth.Synthesize(ctx, topic, articles)
		if err == nil {
			return Section{Topic: topic, Content: content}
		}
		slog.Warn("synthesis failed, falling back to headlines", "topic", topic, "error", err)
	}
	return Section{Topic: topic, Content: headlines(topic, articles)}
}

func knownTopic(topic string) bool {
	for _, t := range types.Topics {
		if t == topic {
			return true
		}
	}
	return false
}
