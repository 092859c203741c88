package journal

import (
	"database/sql"
	"fmt"
	"time"
)

const runColumns = "id, root_dir, catalog_path, dry_run, status, started_at, finished_at, renamed, unchanged, skipped, unmatched, error"

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run         Run
		dryRun      int
		status      string
		startedRaw  string
		finishedRaw sql.NullString
		errorText   sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.RootDir,
		&run.CatalogPath,
		&dryRun,
		&status,
		&startedRaw,
		&finishedRaw,
		&run.Renamed,
		&run.Unchanged,
		&run.Skipped,
		&run.Unmatched,
		&errorText,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.DryRun = dryRun != 0
	run.Status = Status(status)
	run.StartedAt = parseTime(startedRaw)
	if finishedRaw.Valid {
		run.FinishedAt = parseTime(finishedRaw.String)
	}
	run.Error = errorText.String
	return run, nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
