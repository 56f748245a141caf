package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"offersync/internal/core"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndReadBack(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)

	started := time.Date(2025, time.July, 10, 12, 0, 0, 0, time.UTC)
	outcomes := []core.SyncOutcome{
		{Sheet: "June 2025", DBSheet: "DB_June 2025", Outcome: "unchanged", Detail: "no need", StartedAt: started},
		{Sheet: "July 2025", DBSheet: "DB_July 2025", Outcome: "synced", Rows: 42, Cols: 8, StartedAt: started},
	}
	for _, o := range outcomes {
		if err := j.RecordSync(ctx, o); err != nil {
			t.Fatalf("RecordSync: %v", err)
		}
	}

	got, err := j.RecentSyncs(ctx, 10)
	if err != nil {
		t.Fatalf("RecentSyncs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2", len(got))
	}
	// Newest first.
	if got[0].Sheet != "July 2025" || got[0].Rows != 42 || got[0].Cols != 8 {
		t.Errorf("latest record = %+v", got[0])
	}
	if !got[0].StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", got[0].StartedAt, started)
	}
	if got[1].Outcome != "unchanged" || got[1].Detail != "no need" {
		t.Errorf("older record = %+v", got[1])
	}
}

func TestRecentSyncsLimit(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)
	for i := 0; i < 5; i++ {
		if err := j.RecordSync(ctx, core.SyncOutcome{
			Sheet: "July 2025", DBSheet: "DB_July 2025", Outcome: "synced", StartedAt: time.Now(),
		}); err != nil {
			t.Fatalf("RecordSync: %v", err)
		}
	}
	got, err := j.RecentSyncs(ctx, 3)
	if err != nil {
		t.Fatalf("RecentSyncs: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("records = %d, want 3", len(got))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	j1.Close()
	// Reopening an existing journal must not re-run migrations destructively.
	j2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer j2.Close()
	if err := j2.RecordSync(context.Background(), core.SyncOutcome{
		Sheet: "x", DBSheet: "DB_x", Outcome: "skipped", StartedAt: time.Now(),
	}); err != nil {
		t.Fatalf("RecordSync after reopen: %v", err)
	}
}
