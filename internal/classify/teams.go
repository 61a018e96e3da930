package classify

import (
	"strings"

	"github.com/ew616/project-dailyupdate/internal/types"
)

// Team is one followed team and the aliases that identify its coverage.
type Team struct {
	Name    string
	Aliases []string
}

// Teams lists the followed teams in display order. Aliases match as
// case-insensitive substrings of title plus summary; the trailing-space
// aliases ("nyk ") keep abbreviations from firing inside longer words.
var Teams = []Team{
	{Name: "Knicks", Aliases: []string{"knicks", "new york knicks", "nyk ", "r/nyknicks"}},
	{Name: "Giants", Aliases: []string{"ny giants", "new york giants", "nyg ", "r/nygiants", "giants'"}},
	{Name: "Liverpool", Aliases: []string{"liverpool fc", "lfc", "r/liverpoolfc", "anfield", "klopp", "slot"}},
	{Name: "Mets", Aliases: []string{"mets", "new york mets", "nym ", "r/newyorkmets", "citi field"}},
}

// TeamNames returns the followed team names in display order.
func TeamNames() []string {
	names := make([]string, len(Teams))
	for i, team := range Teams {
		names[i] = team.Name
	}
	return names
}

// MatchTeam returns the first team whose alias appears in the article's
// title or summary, or "" when none match.
func MatchTeam(article *types.Article) string {
	return matchTeam(matchText(article))
}

func matchTeam(text string) string {
	for _, team := range Teams {
		for _, alias := range team.Aliases {
			if strings.Contains(text, alias) {
				return team.Name
			}
		}
	}
	return ""
}

// matchText is the lowercased haystack every alias and keyword is
// checked against.
func matchText(article *types.Article) string {
	return strings.ToLower(article.Title + " " + article.Summary)
}
