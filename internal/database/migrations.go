package database

// schemaStep is one numbered DDL change. New steps go at the end with the
// next version number; existing steps never change once shipped.
type schemaStep struct {
	version  int
	describe string
	ddl      string
}

var schema = []schemaStep{
	{
		version:  1,
		describe: "pitch cache, player names, run history",
		ddl: `
CREATE TABLE IF NOT EXISTS pitches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    game_date TEXT NOT NULL,
    pitcher INTEGER NOT NULL,
    batter INTEGER NOT NULL,
    inning INTEGER DEFAULT 0,
    half TEXT,
    balls INTEGER DEFAULT 0,
    strikes INTEGER DEFAULT 0,
    result TEXT,
    plate_x REAL,
    plate_z REAL,
    sz_top REAL,
    sz_bot REAL,
    has_zone INTEGER DEFAULT 0,
    launch_speed REAL,
    launch_angle REAL,
    has_launch INTEGER DEFAULT 0,
    home_team TEXT,
    away_team TEXT,
    delta_home_win_exp REAL,
    has_win_exp INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_pitches_date ON pitches(game_date);

CREATE TABLE IF NOT EXISTS cached_days (
    game_date TEXT PRIMARY KEY,
    cached_at TEXT DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS players (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    resolved_at TEXT DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    rule TEXT NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    selected INTEGER DEFAULT 0,
    compiled INTEGER DEFAULT 0,
    skipped INTEGER DEFAULT 0,
    output_path TEXT,
    created_at TEXT DEFAULT (datetime('now'))
);
`,
	},
}
