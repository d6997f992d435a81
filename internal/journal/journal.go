// Package journal provides an append-only SQLite record of a simulation run:
// run metadata, emitted events, and periodic stats rows. It is observational
// only — the simulation never restores state from it.
package journal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/anthive/internal/sim"
)

// Journal wraps a SQLite connection scoped to one run.
type Journal struct {
	conn  *sqlx.DB
	runID string
}

// Open opens or creates the journal database at path and registers a new
// run with a fresh uuid.
func Open(path string, seed int64) (*Journal, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	j := &Journal{conn: conn, runID: uuid.NewString()}
	if err := j.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	if err := j.beginRun(seed); err != nil {
		conn.Close()
		return nil, fmt.Errorf("register run: %w", err)
	}
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.conn.Close()
}

// RunID returns the uuid assigned to this run.
func (j *Journal) RunID() string {
	return j.runID
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		seed INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS stats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		population INTEGER NOT NULL,
		workers INTEGER NOT NULL,
		scouts INTEGER NOT NULL,
		soldiers INTEGER NOT NULL,
		trails INTEGER NOT NULL,
		food_collected INTEGER NOT NULL,
		food_in_world REAL NOT NULL
	);
	`
	_, err := j.conn.Exec(schema)
	return err
}

func (j *Journal) beginRun(seed int64) error {
	_, err := j.conn.Exec(
		`INSERT INTO runs (id, started_at, seed) VALUES (?, ?, ?)`,
		j.runID, time.Now().UTC().Format(time.RFC3339), seed,
	)
	return err
}

// RecordEvent appends one simulation event.
func (j *Journal) RecordEvent(e sim.Event) error {
	_, err := j.conn.Exec(
		`INSERT INTO events (run_id, tick, category, description) VALUES (?, ?, ?, ?)`,
		j.runID, e.Tick, e.Category, e.Description,
	)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

// RecordStats appends one periodic stats row.
func (j *Journal) RecordStats(s sim.Stats, foodCollected int) error {
	_, err := j.conn.Exec(
		`INSERT INTO stats (run_id, tick, population, workers, scouts, soldiers, trails, food_collected, food_in_world)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.runID, s.Tick, s.Population, s.Workers, s.Scouts, s.Soldiers, s.Trails, foodCollected, s.FoodInWorld,
	)
	if err != nil {
		return fmt.Errorf("record stats: %w", err)
	}
	return nil
}

// EventRow is one journaled event read back for inspection.
type EventRow struct {
	Tick        uint64 `db:"tick"`
	Category    string `db:"category"`
	Description string `db:"description"`
}

// RecentEvents reads back up to limit events for this run, newest first.
func (j *Journal) RecentEvents(limit int) ([]EventRow, error) {
	var rows []EventRow
	err := j.conn.Select(&rows,
		`SELECT tick, category, description FROM events
		 WHERE run_id = ? ORDER BY id DESC LIMIT ?`,
		j.runID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return rows, nil
}
