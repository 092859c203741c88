package renamerun

import (
	"context"
	"log/slog"

	"songrenamer/internal/journal"
	"songrenamer/internal/logging"
	"songrenamer/internal/renamer"
)

// journalRecorder persists renamer results. Write failures are logged and
// never interrupt the run.
type journalRecorder struct {
	store  *journal.Store
	runID  string
	logger *slog.Logger
}

func (r *journalRecorder) Record(ctx context.Context, res renamer.Result) {
	err := r.store.RecordEntry(ctx, journal.Entry{
		RunID:      r.runID,
		Kind:       string(res.Kind),
		SourcePath: res.Path,
		TargetPath: res.Target,
		Code:       res.Code,
		Outcome:    string(res.Outcome),
	})
	if err != nil {
		r.logger.Warn("journal entry not recorded",
			logging.String(logging.FieldPath, res.Path),
			logging.Error(err),
		)
	}
}
