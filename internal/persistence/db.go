// Package persistence stores composition runs in SQLite and writes
// compressed snapshot files. Neither is read back by the composer.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/world-composer/internal/compose"
)

// DB wraps a SQLite connection for composition runs.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		seed INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		complete INTEGER NOT NULL,
		placement_success INTEGER NOT NULL,
		message TEXT NOT NULL,
		retries INTEGER NOT NULL,
		cell_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS placements (
		run_id TEXT NOT NULL,
		area_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		priority INTEGER NOT NULL,
		center_q INTEGER NOT NULL,
		center_r INTEGER NOT NULL,
		retries INTEGER NOT NULL,
		cells_json TEXT NOT NULL,
		PRIMARY KEY (run_id, area_id, position)
	);

	CREATE TABLE IF NOT EXISTS cells (
		run_id TEXT NOT NULL,
		q INTEGER NOT NULL,
		r INTEGER NOT NULL,
		owner TEXT,
		category TEXT NOT NULL,
		source TEXT NOT NULL,
		variation REAL NOT NULL,
		PRIMARY KEY (run_id, q, r)
	);

	CREATE TABLE IF NOT EXISTS flow_parts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		flow_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		q INTEGER NOT NULL,
		r INTEGER NOT NULL,
		side TEXT NOT NULL,
		dir TEXT NOT NULL,
		width INTEGER NOT NULL,
		depth INTEGER NOT NULL,
		level INTEGER NOT NULL,
		merge_group TEXT NOT NULL,
		seq INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_flow_parts_run ON flow_parts(run_id, q, r);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Run is one stored composition.
type Run struct {
	ID               string `db:"id"`
	Name             string `db:"name"`
	Seed             int64  `db:"seed"`
	CreatedAt        string `db:"created_at"`
	Complete         bool   `db:"complete"`
	PlacementSuccess bool   `db:"placement_success"`
	Message          string `db:"message"`
	Retries          int    `db:"retries"`
	CellCount        int    `db:"cell_count"`
}

// CellRow is one stored cell.
type CellRow struct {
	Q         int     `db:"q"`
	R         int     `db:"r"`
	Owner     *string `db:"owner"`
	Category  string  `db:"category"`
	Source    string  `db:"source"`
	Variation float64 `db:"variation"`
}

// PartRow is one stored flow part.
type PartRow struct {
	FlowID     string `db:"flow_id" json:"flow_id"`
	Kind       string `db:"kind" json:"kind"`
	Q          int    `db:"q" json:"q"`
	R          int    `db:"r" json:"r"`
	Side       string `db:"side" json:"side"`
	Dir        string `db:"dir" json:"dir"`
	Width      int    `db:"width" json:"width"`
	Depth      int    `db:"depth" json:"depth"`
	Level      int    `db:"level" json:"level"`
	MergeGroup string `db:"merge_group" json:"merge_group,omitempty"`
	Seq        int    `db:"seq" json:"seq"`
}

// SaveComposition writes a run and everything it produced in one
// transaction. composeErr, if any, becomes the run message.
func (db *DB) SaveComposition(c *compose.Composition, composeErr error) (string, error) {
	runID := uuid.NewString()
	cells := c.Cells()
	pr := c.Placement()

	message := ""
	success := false
	retries := 0
	if pr != nil {
		message = pr.Message()
		success = pr.Success()
		retries = pr.Retries()
	}
	if composeErr != nil {
		message = composeErr.Error()
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, name, seed, created_at, complete, placement_success, message, retries, cell_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, c.Name(), c.Seed(), time.Now().UTC().Format(time.RFC3339),
		boolInt(c.Complete()), boolInt(success), message, retries, len(cells),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	if pr != nil {
		for _, p := range pr.Placed() {
			cellsJSON, err := json.Marshal(p.Footprint)
			if err != nil {
				return "", fmt.Errorf("encode footprint %s#%d: %w", p.Area.ID, p.Position.Index, err)
			}
			_, err = tx.Exec(`INSERT INTO placements
				(run_id, area_id, position, priority, center_q, center_r, retries, cells_json)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				runID, p.Area.ID, p.Position.Index, p.Position.Priority,
				p.Center.Q, p.Center.R, p.Retries, string(cellsJSON),
			)
			if err != nil {
				return "", fmt.Errorf("insert placement %s#%d: %w", p.Area.ID, p.Position.Index, err)
			}
		}
	}

	cellStmt, err := tx.Preparex(`INSERT INTO cells
		(run_id, q, r, owner, category, source, variation)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer cellStmt.Close()

	partStmt, err := tx.Preparex(`INSERT INTO flow_parts
		(run_id, flow_id, kind, q, r, side, dir, width, depth, level, merge_group, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer partStmt.Close()

	for _, cell := range cells {
		var owner *string
		if cell.Owner != nil {
			id := cell.Owner.AreaID
			owner = &id
		}
		_, err := cellStmt.Exec(runID, cell.Coord.Q, cell.Coord.R, owner,
			cell.Category.String(), cell.Payload.Source, cell.Payload.Variation)
		if err != nil {
			return "", fmt.Errorf("insert cell %v: %w", cell.Coord, err)
		}
		for _, p := range cell.Flows {
			_, err := partStmt.Exec(runID, p.FlowID, p.Kind.String(), p.Cell.Q, p.Cell.R,
				p.Side.String(), p.Dir.String(), p.Width, p.Depth, p.Level, p.MergeGroup, p.Seq)
			if err != nil {
				return "", fmt.Errorf("insert flow part %s at %v: %w", p.FlowID, p.Cell, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	slog.Info("composition saved", "run", runID, "cells", len(cells), "seed", c.Seed())
	return runID, nil
}

// LoadRun returns one stored run.
func (db *DB) LoadRun(id string) (Run, error) {
	var run Run
	err := db.conn.Get(&run, "SELECT * FROM runs WHERE id = ?", id)
	return run, err
}

// LoadCells returns a run's cells sorted by r then q.
func (db *DB) LoadCells(runID string) ([]CellRow, error) {
	var rows []CellRow
	err := db.conn.Select(&rows,
		"SELECT q, r, owner, category, source, variation FROM cells WHERE run_id = ? ORDER BY r, q",
		runID,
	)
	return rows, err
}

// LoadFlowParts returns a run's flow parts in insertion order.
func (db *DB) LoadFlowParts(runID string) ([]PartRow, error) {
	var rows []PartRow
	err := db.conn.Select(&rows,
		`SELECT flow_id, kind, q, r, side, dir, width, depth, level, merge_group, seq
		 FROM flow_parts WHERE run_id = ? ORDER BY id`,
		runID,
	)
	return rows, err
}

// RecentRuns returns the most recent N runs.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT * FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	return runs, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
