package sqlite

const schema = `
-- Articles table: everything ever accepted into a briefing run.
-- The url column doubles as the cross-run dedup index.
CREATE TABLE IF NOT EXISTS articles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL DEFAULT '',
    topic TEXT,
    collected_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    included_in_briefing_id INTEGER
);

CREATE INDEX IF NOT EXISTS idx_articles_url ON articles(url);
CREATE INDEX IF NOT EXISTS idx_articles_collected ON articles(collected_at);

-- Briefings table: one row per generated briefing
CREATE TABLE IF NOT EXISTS briefings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    topics_json TEXT NOT NULL DEFAULT '{}',
    html_content TEXT NOT NULL DEFAULT '',
    sent_at DATETIME,
    status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'created', 'sent', 'failed'))
);

-- Source health checks: one row per fetch attempt
CREATE TABLE IF NOT EXISTS source_health (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source_name TEXT NOT NULL,
    checked_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    status TEXT NOT NULL CHECK(status IN ('ok', 'error')),
    error_message TEXT
);

CREATE INDEX IF NOT EXISTS idx_source_health_checked ON source_health(checked_at);
`
