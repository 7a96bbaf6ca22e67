package repository

// Schema is the sqlite DDL the repository reads from. It is applied on
// startup when bootstrap is enabled and by the tests.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS evaluated_persons (
		id    TEXT PRIMARY KEY,
		name  TEXT NOT NULL,
		title TEXT,
		area  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS competencies (
		id        TEXT PRIMARY KEY,
		title     TEXT NOT NULL,
		question  TEXT,
		type      TEXT NOT NULL,
		dimension TEXT,
		grp       TEXT,
		position  INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS cycles (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS evaluations (
		id           TEXT PRIMARY KEY,
		cycle_id     TEXT NOT NULL,
		evaluated_id TEXT NOT NULL,
		relationship TEXT NOT NULL,
		comment      TEXT,
		submitted_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS responses (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		evaluation_id TEXT NOT NULL,
		competency_id TEXT NOT NULL,
		value         REAL,
		comment       TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_evaluations_cycle ON evaluations (cycle_id)`,
	`CREATE INDEX IF NOT EXISTS idx_responses_evaluation ON responses (evaluation_id)`,
}
