package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"offersync/internal/core"
	"offersync/internal/log"
	"offersync/internal/parser"
	"offersync/internal/schedule"
	"offersync/internal/sheets"
)

// DBSheetPrefix names destination sheets: source "July 2025" is written
// to "DB_July 2025" in the target spreadsheet.
const DBSheetPrefix = "DB_"

// Outcome labels recorded in the journal.
const (
	OutcomeSynced    = "synced"
	OutcomeSkipped   = "skipped"
	OutcomeUnchanged = "unchanged"
)

type (
	// Recorder persists per-sheet outcomes for later inspection.
	Recorder interface {
		RecordSync(ctx context.Context, o core.SyncOutcome) error
	}

	// Notifier announces a rewritten destination sheet to downstream
	// consumers.
	Notifier interface {
		SheetSynced(ctx context.Context, o core.SyncOutcome) error
	}
)

// Options identifies the spreadsheets a run operates on.
type Options struct {
	SourceSpreadsheetID string
	TargetSpreadsheetID string
	SettingsSheetName   string
}

// Syncer drives one batch run: read the settings list, decide per sheet
// whether a re-sync is needed, and rebuild the destination tables.
// Sheets are processed strictly one after another; destination writes
// fully replace content, so there is nothing to parallelize safely.
type Syncer struct {
	api      sheets.API
	opts     Options
	log      *log.Logger
	recorder Recorder // optional
	notifier Notifier // optional
}

func NewSyncer(api sheets.API, opts Options, logger *log.Logger, recorder Recorder, notifier Notifier) *Syncer {
	return &Syncer{
		api:      api,
		opts:     opts,
		log:      logger,
		recorder: recorder,
		notifier: notifier,
	}
}

// SettingsSheetNames reads the sheet names to sync from column A of the
// settings sheet, skipping the header row and blank cells.
func (s *Syncer) SettingsSheetNames(ctx context.Context) ([]string, error) {
	rng := fmt.Sprintf("%s!A2:A", s.opts.SettingsSheetName)
	values, err := s.api.ReadValues(ctx, s.opts.TargetSpreadsheetID, rng)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	var names []string
	for _, row := range values {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(core.CellString(row[0]))
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// ShouldSync decides whether a sheet needs a re-sync: always on first
// run (no destination sheet yet), always for the active month, and as
// recovery when the destination holds a header at most.
func (s *Syncer) ShouldSync(ctx context.Context, sheetName, currentMonth string) (bool, string, error) {
	dbName := DBSheetPrefix + sheetName
	titles, err := s.api.SheetTitles(ctx, s.opts.TargetSpreadsheetID)
	if err != nil {
		return false, "", fmt.Errorf("list target sheets: %w", err)
	}
	exists := false
	for _, t := range titles {
		if t == dbName {
			exists = true
			break
		}
	}
	if !exists {
		return true, "first sync", nil
	}
	if strings.Contains(sheetName, currentMonth) {
		return true, "current month", nil
	}
	lastRow, err := s.lastRowEstimate(ctx, dbName)
	if err != nil {
		return false, "", err
	}
	if lastRow <= 1 {
		return true, "destination empty", nil
	}
	return false, "no need", nil
}

func (s *Syncer) lastRowEstimate(ctx context.Context, sheetName string) (int, error) {
	values, err := s.api.ReadValues(ctx, s.opts.TargetSpreadsheetID, sheetName+"!A:A")
	if err != nil {
		return 0, fmt.Errorf("estimate last row of %s: %w", sheetName, err)
	}
	return len(values), nil
}

// SyncSheet rebuilds one destination table from its source sheet.
// Structural problems (missing or empty source, no header row) skip the
// sheet without failing the run; remote errors propagate.
func (s *Syncer) SyncSheet(ctx context.Context, sheetName string) (core.SyncOutcome, error) {
	outcome := core.SyncOutcome{
		Sheet:     sheetName,
		DBSheet:   DBSheetPrefix + sheetName,
		StartedAt: time.Now(),
	}

	grid, err := s.api.ReadValues(ctx, s.opts.SourceSpreadsheetID, sheetName)
	if err != nil || len(grid) == 0 {
		// A sheet missing from the source spreadsheet also surfaces as a
		// read error; either way the sheet is skipped, not the batch.
		outcome.Outcome = OutcomeSkipped
		outcome.Detail = "source sheet missing or empty"
		if err != nil {
			outcome.Detail = fmt.Sprintf("source sheet unreadable: %v", err)
		}
		s.log.Skip(sheetName, "reason", outcome.Detail)
		return outcome, nil
	}

	table, err := parser.BuildTable(grid)
	if err != nil {
		outcome.Outcome = OutcomeSkipped
		outcome.Detail = err.Error()
		s.log.Skip(sheetName, "reason", outcome.Detail)
		return outcome, nil
	}

	if _, err := s.api.EnsureSheet(ctx, s.opts.TargetSpreadsheetID, outcome.DBSheet); err != nil {
		return outcome, err
	}

	rows, cols := table.RowCount(), table.ColCount()
	writeRange := sheets.TableRange(outcome.DBSheet, rows, cols)

	if err := s.api.ClearSheet(ctx, s.opts.TargetSpreadsheetID, outcome.DBSheet); err != nil {
		return outcome, err
	}
	if err := s.api.WriteValues(ctx, s.opts.TargetSpreadsheetID, writeRange, table.Values()); err != nil {
		return outcome, err
	}

	outcome.Outcome = OutcomeSynced
	outcome.Rows = rows
	outcome.Cols = cols
	s.log.OK(fmt.Sprintf("SYNC: %s -> %s", sheetName, outcome.DBSheet), "rows", rows, "cols", cols)
	return outcome, nil
}

// Run processes every configured sheet once, sequentially. Remote
// errors abort the run; structural per-sheet problems do not.
func (s *Syncer) Run(ctx context.Context, now time.Time) error {
	names, err := s.SettingsSheetNames(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		s.log.Warn("settings sheet is empty: add sheet names to " + s.opts.SettingsSheetName + "!A2:A")
		return nil
	}

	currentMonth := schedule.MonthName(now)
	for _, name := range names {
		need, reason, err := s.ShouldSync(ctx, name, currentMonth)
		if err != nil {
			return err
		}
		if !need {
			s.log.Skip(name, "reason", reason)
			s.report(ctx, core.SyncOutcome{
				Sheet:     name,
				DBSheet:   DBSheetPrefix + name,
				Outcome:   OutcomeUnchanged,
				Detail:    reason,
				StartedAt: time.Now(),
			})
			continue
		}
		s.log.Info(fmt.Sprintf("SYNC: %s -> %s%s", name, DBSheetPrefix, name), "reason", reason)
		outcome, err := s.SyncSheet(ctx, name)
		if err != nil {
			return fmt.Errorf("sync %s: %w", name, err)
		}
		s.report(ctx, outcome)
	}
	return nil
}

// report journals and announces an outcome. Both are observability
// add-ons: failures are logged and swallowed so they never break a run.
func (s *Syncer) report(ctx context.Context, o core.SyncOutcome) {
	if s.recorder != nil {
		if err := s.recorder.RecordSync(ctx, o); err != nil {
			s.log.Warn("journal write failed", "sheet", o.Sheet, "error", err)
		}
	}
	if s.notifier != nil && o.Outcome == OutcomeSynced {
		if err := s.notifier.SheetSynced(ctx, o); err != nil {
			s.log.Warn("sync notification failed", "sheet", o.Sheet, "error", err)
		}
	}
}
