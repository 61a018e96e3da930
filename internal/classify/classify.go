// Package classify assigns topics to articles using keyword tables, so
// a briefing can be grouped without any API calls.
package classify

import (
	"regexp"
	"strings"

	"github.com/ew616/project-dailyupdate/internal/types"
)

// shortKeywordLen is the length at or below which keywords match on
// word boundaries instead of raw substrings, so "nba" cannot fire
// inside "unbalanced".
const shortKeywordLen = 4

type topicKeywords struct {
	topic    string
	keywords []string
}

// keywordTable drives scoring. Broad words like "game" or "money"
// cause false positives and do not belong here.
var keywordTable = []topicKeywords{
	{types.TopicPolitics, []string{
		"congress", "senate", "president", "election", "democrat", "republican",
		"biden", "trump", "legislation", "vote", "political", "governor",
		"white house", "capitol", "supreme court", "parliament", "minister",
	}},
	{types.TopicCrypto, []string{
		"bitcoin", "ethereum", "cryptocurrency", "blockchain", "binance",
		"coinbase", "solana", "defi", "web3",
	}},
	{types.TopicMovies, []string{
		"film", "movie", "cinema", "oscar", "hollywood", "box office", "premiere",
		"golden globe", "actress", "mattel", "barbie", "paramount", "warner bros",
	}},
	{types.TopicBusiness, []string{
		"stock market", "economy", "ceo", "earnings", "revenue", "startup",
		"investment", "ipo", "nasdaq", "dow jones", "inflation", "wall street",
		"profit", "merger", "acquisition",
	}},
	{types.TopicSports, []string{
		"nba", "nfl", "mlb", "premier league", "championship", "playoff",
		"touchdown", "goalkeeper", "striker", "quarterback", "pitcher",
	}},
}

var shortKeywordRE = buildShortKeywordREs()

func buildShortKeywordREs() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp)
	for _, tk := range keywordTable {
		for _, kw := range tk.keywords {
			if len(kw) <= shortKeywordLen {
				res[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
			}
		}
	}
	return res
}

// Topic classifies one article. A followed-team mention wins outright;
// otherwise the topic with the most keyword hits wins, ties going to
// the earlier topic in types.Topics. Articles nothing claims fall back
// to TopicGeneral, which the briefing never shows.
func Topic(article *types.Article) string {
	text := matchText(article)

	if matchTeam(text) != "" {
		return types.TopicSports
	}

	scores := make(map[string]int, len(types.Topics))
	for _, tk := range keywordTable {
		for _, kw := range tk.keywords {
			if matchKeyword(text, kw) {
				scores[tk.topic]++
			}
		}
	}

	best, bestScore := "", 0
	for _, topic := range types.Topics {
		if scores[topic] > bestScore {
			best, bestScore = topic, scores[topic]
		}
	}
	if bestScore >= 1 {
		return best
	}
	return types.TopicGeneral
}

// Articles fills in the Topic of every article that arrived without
// one. Collector-assigned topics are kept.
func Articles(articles []*types.Article) {
	for _, article := range articles {
		if article.Topic == "" {
			article.Topic = Topic(article)
		}
	}
}

func matchKeyword(text, keyword string) bool {
	if re, ok := shortKeywordRE[keyword]; ok {
		return re.MatchString(text)
	}
	return strings.Contains(text, keyword)
}
