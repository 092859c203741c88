package renamer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"songrenamer/internal/catalog"
	"songrenamer/internal/config"
	"songrenamer/internal/logging"
)

// ErrTargetExists is returned when a rename would replace another entry.
var ErrTargetExists = errors.New("rename target already exists")

// Kind distinguishes file and directory entries.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// Outcome is the decision taken for one filesystem entry.
type Outcome string

const (
	OutcomeRenamed          Outcome = "renamed"
	OutcomePlanned          Outcome = "planned"
	OutcomeUnchanged        Outcome = "unchanged"
	OutcomeSkippedExtension Outcome = "skipped_extension"
	OutcomeUnmatched        Outcome = "unmatched"
	OutcomeInvalidName      Outcome = "invalid_name"
)

// Result describes what happened to one entry. Target is empty unless a new
// name was computed.
type Result struct {
	Kind    Kind
	Path    string
	Target  string
	Code    string
	Outcome Outcome
}

// Recorder receives every per-entry result, for example to persist an audit
// trail. Implementations handle their own failures.
type Recorder interface {
	Record(ctx context.Context, res Result)
}

// Options configures a Renamer.
type Options struct {
	DryRun bool
	// Extensions is the audio allow-list; nil means config.DefaultExtensions.
	Extensions []string
	// NormalizeDirectoryCodes strips non-digits from directory names before
	// the album lookup.
	NormalizeDirectoryCodes bool
	Logger                  *slog.Logger
	Recorder                Recorder
}

// Renamer renames files and directories under a root using a parsed catalog.
// The catalog is only read.
type Renamer struct {
	catalog    *catalog.Catalog
	dryRun     bool
	extensions map[string]struct{}
	normalize  bool
	logger     *slog.Logger
	recorder   Recorder
}

// New constructs a Renamer for cat.
func New(cat *catalog.Catalog, opts Options) *Renamer {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = config.DefaultExtensions
	}
	allowed := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		if normalized := config.NormalizeExtension(ext); normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}
	if cat == nil {
		cat = catalog.New()
	}
	return &Renamer{
		catalog:    cat,
		dryRun:     opts.DryRun,
		extensions: allowed,
		normalize:  opts.NormalizeDirectoryCodes,
		logger:     logging.NewComponentLogger(opts.Logger, "renamer"),
		recorder:   opts.Recorder,
	}
}

// Run renames files and then directories under root.
func (r *Renamer) Run(ctx context.Context, root string) (Summary, error) {
	files, err := r.RenameFiles(ctx, root)
	if err != nil {
		return files, err
	}
	dirs, err := r.RenameDirectories(ctx, root)
	files.Merge(dirs)
	return files, err
}

func (r *Renamer) record(ctx context.Context, summary *Summary, res Result) {
	summary.Add(res)
	if r.recorder != nil {
		r.recorder.Record(ctx, res)
	}
}

// apply performs (or, in dry-run mode, only plans) the rename of res.Path to
// res.Target and sets the outcome.
func (r *Renamer) apply(res *Result) error {
	if r.dryRun {
		res.Outcome = OutcomePlanned
		return nil
	}
	if err := checkTarget(res.Path, res.Target); err != nil {
		return err
	}
	if err := os.Rename(res.Path, res.Target); err != nil {
		return fmt.Errorf("rename %s: %w", res.Kind, err)
	}
	res.Outcome = OutcomeRenamed
	return nil
}

// checkTarget refuses to clobber an existing entry. A target that resolves to
// the source itself (a case-only rename on a case-insensitive filesystem) is
// allowed.
func checkTarget(source, target string) error {
	targetInfo, err := os.Lstat(target)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("inspect rename target: %w", err)
	}
	if sourceInfo, err := os.Lstat(source); err == nil && os.SameFile(sourceInfo, targetInfo) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrTargetExists, source, target)
}

func validLeaf(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsRune(name, '/') && !strings.ContainsRune(name, filepath.Separator)
}
