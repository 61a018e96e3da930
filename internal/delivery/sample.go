package delivery

import (
	"github.com/ew616/project-dailyupdate/internal/digest"
	"github.com/ew616/project-dailyupdate/internal/types"
)

// SampleSections returns a canned briefing covering every topic
// section, used by the test-email command to verify configuration.
func SampleSections() []digest.Section {
	return []digest.Section{
		{Topic: types.TopicSports, Content: `**Knicks**
• [Knicks vs Suns Game Notes: January 17, 2026](https://knicks.com/news/knicks-vs-suns-game-notes-january-16-2026) (NBA.com)
• [Party Like '99? Three Reasons For and Against New York Winning the East](https://www.espn.com/nba/story/_/id/47586139/new-york-knicks-three-reasons-winning-east) (ESPN)
• [Knicks vs Warriors Game Notes: January 15, 2026](https://www.nba.com/knicks/news/knicks-vs-warriors-game-notes-january-15-2026) (NBA.com)

**Giants**
• [Giants Finalize Five-Year Deal with John Harbaugh as Next Coach](https://www.cbssports.com/nfl/news/giants-to-finalize-deal-and-hire-john-harbaugh-next-coach-per-report/) (CBS Sports)
• [NY Giants 2026 NFL Draft: 10 Prospects to Watch at the Senior Bowl](https://www.bigblueview.com/senior-bowl/152030/ny-giants-2026-nfl-draft-10-prospects-to-watch-senior-bowl) (Big Blue View)
• [Giants 34-17 Cowboys (Jan 4, 2026) Game Recap](https://www.espn.com/nfl/recap?gameId=401772963) (ESPN)

**Liverpool**
• [Liverpool Transfers: Latest News and Analysis on January Signings](https://www.espn.com/soccer/story/_/id/47470578/liverpool-transfers-latest-news-reports-analysis-rumours-signings-exits-deals-contracts) (ESPN)
• [Liverpool Cannot Afford January Transfer Misstep](https://www.liverpool.com/liverpool-fc-news/features/january-transfer-plans-bradley-injury-33225271) (Liverpool.com)
• [Liverpool Transfer News: $70M Midfielder Wanted](https://www.liverpool.com/liverpool-fc-news/transfer-news/kees-smit-marc-guehi-update-33230156) (Liverpool.com)

**Mets**
• [Mets Sign Bo Bichette to Three-Year, $126 Million Deal](https://www.amazinavenue.com/new-york-mets-morning-news/89289/mets-morning-news-bo-bichette-signs-kyle-tucker-brett-baty-baseball-offseason-new-york-mlb) (Amazin' Avenue)
• [Mets Avoid Arbitration with All 6 Eligible Players for 2026](https://www.mlb.com/news/mets-avoid-arbitration-2026) (MLB.com)
• [Mets Morning News for January 17, 2026](https://sports.yahoo.com/articles/mets-morning-news-january-17-123000098.html) (Yahoo Sports)
`},
		{Topic: types.TopicPolitics, Content: `• [Trump Says U.S. 'In Charge' of Venezuela After Maduro Captured](https://www.cbsnews.com/live-updates/venezuela-us-military-strikes-maduro-trump/) (CBS News)
• [No, Trump Can't Cancel the Midterms. He's Doing This Instead](https://www.cnn.com/2026/01/17/politics/midterm-elections-trump-2026-analysis) (CNN)
• [GOP Senators Break with Trump on These 2 Points](https://www.pbs.org/newshour/politics/gop-senators-break-with-trump-on-these-2-points) (PBS)
• [Trump Administration News: January 16, 2026](https://edition.cnn.com/politics/live-news/trump-administration-news-01-16-26) (CNN)
• [A Look at What Happened in the US Government This Week](https://www.wisn.com/article/politics-recap-january-16-2026/70028355) (WISN)
`},
		{Topic: types.TopicBusiness, Content: `• [What to Expect from Stocks in 2026](https://www.cnn.com/2026/01/01/investing/what-to-expect-stock-market-2026) (CNN)
• [Stock Market Today: Dow, S&P Hit All-Time Highs](https://www.bloomberg.com/news/articles/2026-01-14/stock-market-today-dow-s-p-live-updates) (Bloomberg)
• [Stock Market Predictions 2026: AI Boom, Dollar's Decline](https://www.bloomberg.com/graphics/2026-investment-outlooks/) (Bloomberg)
• [Week Ahead Economic Preview: Week of 19 January 2026](https://www.spglobal.com/marketintelligence/en/mi/research-analysis/week-ahead-economic-preview-week-of-19-january-2026.html) (S&P Global)
• [Stock Market News for Jan. 14, 2026](https://www.cnbc.com/2026/01/13/stock-market-today-live-updates.html) (CNBC)
`},
		{Topic: types.TopicCrypto, Content: `• [The Boldest Bitcoin Predictions for 2026: From $75,000 to $225,000](https://www.cnbc.com/2026/01/08/bitcoin-btc-price-predictions-for-2026.html) (CNBC)
• [Bitcoin Slips to $95,000 as U.S. Crypto Bill Stalls in Senate](https://www.coindesk.com/markets/2026/01/16/bitcoin-slips-to-nearly-usd95-000-as-senate-delay-and-risk-off-moves-weigh-on-crypto) (CoinDesk)
• [BTC, ETH Breakout Liquidates Nearly $700 Million in Shorts](https://www.coindesk.com/markets/2026/01/14/bitcoin-and-ether-s-sharp-mechanical-breakouts-liquidate-nearly-usd700-million-short-positions) (CoinDesk)
• [Here's Why Bitcoin and Major Tokens Are Seeing a Strong 2026](https://www.coindesk.com/markets/2026/01/06/here-s-why-bitcoin-and-major-tokens-are-seeing-a-strong-start-to-2026) (CoinDesk)
• [Bitcoin's 'Boring' Price Action Likely to Continue, Say Analysts](https://www.coindesk.com/markets/2026/01/08/bitcoin-may-be-in-for-a-more-boring-but-nevertheless-positive-year) (CoinDesk)
`},
		{Topic: types.TopicMovies, Content: `• [Box Office: 'Avatar: Fire And Ash' Burns Trail to $306M U.S.](https://deadline.com/2026/01/box-office-avatar-fire-and-ash-2026-first-weekend-1236660722/) (Deadline)
• [Box Office: 'Avatar 3' Leads in First Weekend of 2026](https://variety.com/2026/film/box-office/box-office-avatar-3-leads-2026-1236623079/) (Variety)
• ['Primate' Opens; 'Avatar' Still No. 1; 'Housemaid' Holds Strong](https://deadline.com/2026/01/box-office-primate-avatar-fire-and-ash-greenland-migration-1236677406/) (Deadline)
• [The Most Anticipated Movies of 2026](https://editorial.rottentomatoes.com/article/the-most-anticipated-movies-of-2026/) (Rotten Tomatoes)
• [Indie Film Box Office: Independent Film Shores Up Super Start to 2026](https://deadline.com/2026/01/indie-film-box-office-strong-start-to-2026-1236661162/) (Deadline)
`},
	}
}
