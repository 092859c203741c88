package journal_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"songrenamer/internal/journal"
	"songrenamer/internal/testsupport"
)

func TestRunLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	run := journal.Run{ID: "run-1", RootDir: "/music", CatalogPath: "/music/catalog.csv", DryRun: true}
	if err := store.BeginRun(ctx, run); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	entries := []journal.Entry{
		{RunID: "run-1", Kind: "file", SourcePath: "/music/a-US1.mp3", TargetPath: "/music/1-A.mp3", Code: "US1", Outcome: "planned"},
		{RunID: "run-1", Kind: "file", SourcePath: "/music/cover.jpg", Outcome: "skipped_extension"},
	}
	for _, entry := range entries {
		if err := store.RecordEntry(ctx, entry); err != nil {
			t.Fatalf("RecordEntry: %v", err)
		}
	}

	got, err := store.FindRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("FindRun: %v", err)
	}
	if got.Status != journal.StatusRunning || got.Finished() || !got.DryRun {
		t.Fatalf("unexpected running run %#v", got)
	}

	totals := journal.Totals{Renamed: 1, Skipped: 1}
	if err := store.FinishRun(ctx, "run-1", journal.StatusCompleted, totals, nil); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}
	got, err = store.FindRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("FindRun: %v", err)
	}
	if got.Status != journal.StatusCompleted || got.FinishedAt.IsZero() || got.Renamed != 1 || got.Skipped != 1 || got.Error != "" {
		t.Fatalf("unexpected finished run %#v", got)
	}

	stored, err := store.Entries(ctx, "run-1")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(stored))
	}
	if stored[0].TargetPath != "/music/1-A.mp3" || stored[0].Code != "US1" {
		t.Fatalf("unexpected first entry %#v", stored[0])
	}
	if stored[1].TargetPath != "" || stored[1].Outcome != "skipped_extension" {
		t.Fatalf("unexpected second entry %#v", stored[1])
	}
}

func TestFinishRunRecordsFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	if err := store.BeginRun(ctx, journal.Run{ID: "run-f", RootDir: "/r", CatalogPath: "/c"}); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if err := store.FinishRun(ctx, "run-f", journal.StatusFailed, journal.Totals{}, errors.New("rename target already exists")); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}
	got, err := store.FindRun(ctx, "run-f")
	if err != nil {
		t.Fatalf("FindRun: %v", err)
	}
	if got.Status != journal.StatusFailed || got.Error != "rename target already exists" {
		t.Fatalf("unexpected failed run %#v", got)
	}
}

func TestFinishRunUnknownID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)

	err := store.FinishRun(context.Background(), "missing", journal.StatusCompleted, journal.Totals{}, nil)
	if !errors.Is(err, journal.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"aaa", "bbb", "ccc"} {
		run := journal.Run{ID: id, RootDir: "/r", CatalogPath: "/c", StartedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := store.BeginRun(ctx, run); err != nil {
			t.Fatalf("BeginRun %s: %v", id, err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "ccc" || runs[1].ID != "bbb" {
		t.Fatalf("unexpected runs %#v", runs)
	}

	all, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected all 3 runs, got %d", len(all))
	}
}

func TestFindRunByPrefix(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	for _, id := range []string{"abc123", "abd456"} {
		if err := store.BeginRun(ctx, journal.Run{ID: id, RootDir: "/r", CatalogPath: "/c"}); err != nil {
			t.Fatalf("BeginRun: %v", err)
		}
	}

	tests := []struct {
		name    string
		prefix  string
		wantID  string
		wantErr error
	}{
		{name: "unique prefix", prefix: "abc", wantID: "abc123"},
		{name: "full id", prefix: "abd456", wantID: "abd456"},
		{name: "ambiguous", prefix: "ab", wantErr: journal.ErrAmbiguousRun},
		{name: "missing", prefix: "zzz", wantErr: journal.ErrRunNotFound},
		{name: "empty", prefix: " ", wantErr: journal.ErrRunNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := store.FindRun(ctx, tt.prefix)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindRun: %v", err)
			}
			if run.ID != tt.wantID {
				t.Fatalf("FindRun(%q) = %s, want %s", tt.prefix, run.ID, tt.wantID)
			}
		})
	}
}

func TestBeginRunRequiresID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)

	if err := store.BeginRun(context.Background(), journal.Run{}); err == nil {
		t.Fatal("expected error for empty run id")
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 999"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := journal.Open(path); !errors.Is(err, journal.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenRejectsUnstampedSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("clear version: %v", err)
	}
	_ = db.Close()

	if _, err := journal.Open(path); !errors.Is(err, journal.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.BeginRun(context.Background(), journal.Run{ID: "keep", RootDir: "/r", CatalogPath: "/c"}); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	_ = store.Close()

	reopened, err := journal.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.FindRun(context.Background(), "keep"); err != nil {
		t.Fatalf("FindRun after reopen: %v", err)
	}
}
