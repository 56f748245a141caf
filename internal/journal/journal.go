// Package journal keeps a local SQLite record of per-sheet sync
// outcomes. The run itself only logs to stdout; the journal is what
// lets an operator answer "when was DB_June last rewritten and why"
// after the scheduler has scrolled the logs away.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"offersync/internal/core"

	_ "modernc.org/sqlite"
)

type Journal struct {
	db *sql.DB
}

// Open creates or opens the journal database and applies migrations.
func Open(dbPath string) (*Journal, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping journal database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate journal database: %w", err)
	}

	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// RecordSync implements services.Recorder.
func (j *Journal) RecordSync(ctx context.Context, o core.SyncOutcome) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO sheet_syncs (sheet_name, db_sheet_name, outcome, detail, rows_written, cols_written, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.Sheet, o.DBSheet, o.Outcome, o.Detail, o.Rows, o.Cols,
		o.StartedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert sheet sync: %w", err)
	}
	return nil
}

// RecentSyncs returns the latest recorded outcomes, newest first.
func (j *Journal) RecentSyncs(ctx context.Context, limit int) ([]core.SyncOutcome, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT sheet_name, db_sheet_name, outcome, detail, rows_written, cols_written, started_at
		FROM sheet_syncs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sheet syncs: %w", err)
	}
	defer rows.Close()

	var out []core.SyncOutcome
	for rows.Next() {
		var o core.SyncOutcome
		var startedAt string
		if err := rows.Scan(&o.Sheet, &o.DBSheet, &o.Outcome, &o.Detail, &o.Rows, &o.Cols, &startedAt); err != nil {
			return nil, fmt.Errorf("scan sheet sync: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			o.StartedAt = t
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
