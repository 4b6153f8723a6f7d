package db

// SchemaSQL is the complete schema for fresh installs.
//
// This is the single source of truth for the state database. Adapter tests
// create in-memory databases from it, so a repository referencing a column
// missing here fails immediately with "no such column".
const SchemaSQL = `
-- Cached screening answers, keyed by normalized question text
CREATE TABLE IF NOT EXISTS answers (
	key TEXT PRIMARY KEY,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	source TEXT NOT NULL CHECK(source IN ('config', 'cached_ai', 'live_ai', 'manual')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Engine events, one row per observable step
CREATE TABLE IF NOT EXISTS run_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	phase TEXT NOT NULL,
	listing_id TEXT,
	message TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_run_events_run_id ON run_events(run_id);
`
