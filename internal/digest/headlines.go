package digest

import (
	"fmt"
	"strings"

	"github.com/ew616/project-dailyupdate/internal/classify"
	"github.com/ew616/project-dailyupdate/internal/types"
)

// Per-section entry caps. Headlines mode is a skim, not an archive.
const (
	maxTopicHeadlines = 8
	maxTeamHeadlines  = 4
	maxOtherSports    = 3
)

// headlines renders a topic section as a markdown link list.
func headlines(topic string, articles []*types.Article) string {
	if topic == types.TopicSports {
		return sportsHeadlines(articles)
	}

	var lines []string
	for _, a := range top(articles, maxTopicHeadlines) {
		line := fmt.Sprintf("• [%s](%s)", a.Title, a.URL)
		if a.Source != "" {
			line += fmt.Sprintf(" (%s)", a.Source)
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// sportsHeadlines renders the sports section grouped by followed team,
// with everything unmatched pooled under Other Sports.
func sportsHeadlines(articles []*types.Article) string {
	grouped := make(map[string][]*types.Article, len(classify.Teams))
	var other []*types.Article

	for _, a := range articles {
		if team := classify.MatchTeam(a); team != "" {
			grouped[team] = append(grouped[team], a)
		} else {
			other = append(other, a)
		}
	}

	var lines []string
	for _, team := range classify.Teams {
		group := grouped[team.Name]
		if len(group) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("**%s**", team.Name))
		for _, a := range top(group, maxTeamHeadlines) {
			lines = append(lines, fmt.Sprintf("• [%s](%s) (%s)", a.Title, a.URL, a.Source))
		}
		lines = append(lines, "")
	}

	if len(other) > 0 {
		lines = append(lines, "**Other Sports**")
		for _, a := range top(other, maxOtherSports) {
			lines = append(lines, fmt.Sprintf("• [%s](%s) (%s)", a.Title, a.URL, a.Source))
		}
		lines = append(lines, "")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func top(articles []*types.Article, n int) []*types.Article {
	if len(articles) <= n {
		return articles
	}
	return articles[:n]
}
