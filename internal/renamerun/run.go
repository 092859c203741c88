package renamerun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"songrenamer/internal/catalog"
	"songrenamer/internal/config"
	"songrenamer/internal/journal"
	"songrenamer/internal/logging"
	"songrenamer/internal/renamer"
)

// ErrLocked is returned when another run holds the state directory lock.
var ErrLocked = errors.New("another songrenamer run is already in progress")

// Options configures one rename invocation.
type Options struct {
	RootDir     string
	CatalogPath string
	DryRun      bool
	// Logger overrides the logger built from cfg.Logging.
	Logger *slog.Logger
}

// Result is what a finished run reports back to the caller.
type Result struct {
	RunID   string
	Songs   int
	Albums  int
	Summary renamer.Summary
}

// ValidateInputs checks that root is an existing directory and catalogPath an
// existing regular file.
func ValidateInputs(root, catalogPath string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root directory %q is not a directory", root)
	}
	info, err = os.Stat(catalogPath)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("catalog %q is not a file", catalogPath)
	}
	return nil
}

// Run parses the catalog and renames files and then directories under
// opts.RootDir.
func Run(ctx context.Context, cfg *config.Config, opts Options) (Result, error) {
	var result Result
	if cfg == nil {
		return result, errors.New("config is required")
	}
	root, err := filepath.Abs(opts.RootDir)
	if err != nil {
		return result, fmt.Errorf("resolve root directory: %w", err)
	}
	catalogPath, err := filepath.Abs(opts.CatalogPath)
	if err != nil {
		return result, fmt.Errorf("resolve catalog path: %w", err)
	}
	if err := ValidateInputs(root, catalogPath); err != nil {
		return result, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return result, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return result, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return result, fmt.Errorf("%w (lock %s)", ErrLocked, cfg.LockPath())
	}
	defer func() { _ = lock.Unlock() }()

	logger := opts.Logger
	if logger == nil {
		var closer io.Closer
		logger, closer, err = logging.NewFromConfig(cfg)
		if err != nil {
			return result, fmt.Errorf("init logger: %w", err)
		}
		defer closer.Close()
	}
	result.RunID = uuid.NewString()
	logger = logger.With(logging.String(logging.FieldRunID, result.RunID))
	runLogger := logging.NewComponentLogger(logger, "run")

	var store *journal.Store
	if cfg.Journal.Enabled {
		store, err = journal.Open(cfg.JournalPath())
		if err != nil {
			return result, fmt.Errorf("open journal: %w", err)
		}
		defer store.Close()
		err = store.BeginRun(ctx, journal.Run{
			ID:          result.RunID,
			RootDir:     root,
			CatalogPath: catalogPath,
			DryRun:      opts.DryRun,
		})
		if err != nil {
			return result, fmt.Errorf("journal run start: %w", err)
		}
	}

	runLogger.Info("rename run started",
		logging.String("root", root),
		logging.String("catalog", catalogPath),
		logging.Bool("dry_run", opts.DryRun),
	)

	runErr := execute(ctx, cfg, root, catalogPath, opts.DryRun, logger, store, &result)

	status := journal.StatusCompleted
	if runErr != nil {
		status = journal.StatusFailed
		runLogger.Error("rename run failed", logging.Error(runErr))
	} else {
		runLogger.Info("rename run finished",
			logging.Int("files_renamed", result.Summary.Files.Renamed+result.Summary.Files.Planned),
			logging.Int("directories_renamed", result.Summary.Directories.Renamed+result.Summary.Directories.Planned),
			logging.Int("unmatched", result.Summary.Files.Unmatched+result.Summary.Directories.Unmatched),
		)
	}
	if store != nil {
		if err := store.FinishRun(ctx, result.RunID, status, totals(result.Summary), runErr); err != nil {
			runLogger.Warn("journal run finish not recorded", logging.Error(err))
		}
	}
	return result, runErr
}

func execute(ctx context.Context, cfg *config.Config, root, catalogPath string, dryRun bool, logger *slog.Logger, store *journal.Store, result *Result) error {
	cat, err := catalog.Load(catalogPath, catalog.Options{
		Delimiter: cfg.CatalogDelimiter(),
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	result.Songs = len(cat.Songs)
	result.Albums = len(cat.Albums)

	opts := renamer.Options{
		DryRun:                  dryRun,
		Extensions:              cfg.Rename.Extensions,
		NormalizeDirectoryCodes: cfg.Rename.NormalizeDirectoryCodes,
		Logger:                  logger,
	}
	if store != nil {
		opts.Recorder = &journalRecorder{
			store:  store,
			runID:  result.RunID,
			logger: logging.NewComponentLogger(logger, "journal"),
		}
	}
	summary, err := renamer.New(cat, opts).Run(ctx, root)
	result.Summary = summary
	return err
}

func totals(summary renamer.Summary) journal.Totals {
	var t journal.Totals
	for _, c := range []renamer.Counts{summary.Files, summary.Directories} {
		t.Renamed += c.Renamed + c.Planned
		t.Unchanged += c.Unchanged
		t.Skipped += c.Skipped + c.Invalid
		t.Unmatched += c.Unmatched
	}
	return t
}
