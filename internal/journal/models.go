package journal

import "time"

// Status is the lifecycle state of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run is one invocation of the renamer.
type Run struct {
	ID          string
	RootDir     string
	CatalogPath string
	DryRun      bool
	Status      Status
	StartedAt   time.Time
	FinishedAt  time.Time
	Renamed     int
	Unchanged   int
	Skipped     int
	Unmatched   int
	Error       string
}

// Finished reports whether the run reached a terminal status.
func (r Run) Finished() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

// Entry is a single file or directory decision within a run.
type Entry struct {
	ID         int64
	RunID      string
	Kind       string
	SourcePath string
	TargetPath string
	Code       string
	Outcome    string
	CreatedAt  time.Time
}

// Totals are the per-run counters written by FinishRun.
type Totals struct {
	Renamed   int
	Unchanged int
	Skipped   int
	Unmatched int
}
