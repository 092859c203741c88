package renamer

import (
	"context"
	"path/filepath"

	"songrenamer/internal/logging"
	"songrenamer/internal/textutil"
)

// DirectoryCode returns the album lookup key for a directory name.
func (r *Renamer) DirectoryCode(name string) string {
	if r.normalize {
		return textutil.DigitsOnly(name)
	}
	return name
}

// RenameDirectories renames every directory under root (root excluded)
// whose name matches an album UPC. Nested directories are handled before
// their parents.
func (r *Renamer) RenameDirectories(ctx context.Context, root string) (Summary, error) {
	var summary Summary
	paths, err := r.snapshotDirectories(root)
	if err != nil {
		return summary, err
	}
	r.logger.Debug("collected directories", logging.String("root", root), logging.Int("count", len(paths)))

	for _, path := range paths {
		res, err := r.renameDirectory(path)
		if err != nil {
			return summary, err
		}
		r.record(ctx, &summary, res)
	}
	return summary, nil
}

func (r *Renamer) renameDirectory(path string) (Result, error) {
	res := Result{Kind: KindDirectory, Path: path}
	pathAttr := logging.String(logging.FieldPath, path)

	code := r.DirectoryCode(filepath.Base(path))
	res.Code = code
	album, ok := r.catalog.Album(code)
	if code == "" || !ok {
		r.logger.Warn("album folder mapping not found", pathAttr, logging.String("code", code))
		res.Outcome = OutcomeUnmatched
		return res, nil
	}

	if !validLeaf(album.Name) {
		r.logger.Warn("invalid directory name from catalog", pathAttr, logging.String("name", album.Name))
		res.Outcome = OutcomeInvalidName
		return res, nil
	}
	res.Target = filepath.Join(filepath.Dir(path), album.Name)
	if res.Target == path {
		r.logger.Debug("directory already named", pathAttr)
		res.Outcome = OutcomeUnchanged
		return res, nil
	}

	r.logger.Info("renaming directory", pathAttr, logging.String(logging.FieldTarget, res.Target))
	if err := r.apply(&res); err != nil {
		return res, err
	}
	return res, nil
}
