package store

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    person           TEXT NOT NULL,
    overall          INTEGER NOT NULL,
    grade            TEXT NOT NULL,
    news_sentiment   REAL NOT NULL DEFAULT 0,
    news_credibility REAL NOT NULL DEFAULT 0,
    news_label       TEXT NOT NULL DEFAULT '',
    breakdown        TEXT NOT NULL DEFAULT '{}',
    created_at       DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_person ON analyses(person);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);

CREATE TABLE IF NOT EXISTS watchlist (
    person     TEXT PRIMARY KEY,
    added_at   DATETIME NOT NULL,
    last_score INTEGER,
    last_run   DATETIME
);
`
