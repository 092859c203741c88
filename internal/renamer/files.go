package renamer

import (
	"context"
	"path/filepath"
	"strings"

	"songrenamer/internal/catalog"
	"songrenamer/internal/logging"
)

// MatchCode returns the code segment of a file name: the text after the last
// "-" of the base name without its extension, or the whole stem when there is
// no "-". The extension is returned unchanged.
func MatchCode(path string) (code, ext string) {
	base := filepath.Base(path)
	ext = filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if i := strings.LastIndex(stem, "-"); i >= 0 {
		stem = stem[i+1:]
	}
	return strings.TrimSpace(stem), ext
}

// FileName builds the canonical "{sequence}-{track}{ext}" leaf name.
func FileName(song catalog.Song, ext string) string {
	return song.Sequence + "-" + song.Track + ext
}

// RenameFiles renames every matching audio file under root.
func (r *Renamer) RenameFiles(ctx context.Context, root string) (Summary, error) {
	var summary Summary
	paths, err := r.snapshotFiles(root)
	if err != nil {
		return summary, err
	}
	r.logger.Debug("collected files", logging.String("root", root), logging.Int("count", len(paths)))

	for _, path := range paths {
		res, err := r.renameFile(path)
		if err != nil {
			return summary, err
		}
		r.record(ctx, &summary, res)
	}
	return summary, nil
}

func (r *Renamer) renameFile(path string) (Result, error) {
	res := Result{Kind: KindFile, Path: path}
	pathAttr := logging.String(logging.FieldPath, path)

	code, ext := MatchCode(path)
	if _, ok := r.extensions[strings.ToLower(ext)]; !ok {
		r.logger.Warn("skipping", pathAttr, logging.String("reason", "extension not allowed"))
		res.Outcome = OutcomeSkippedExtension
		return res, nil
	}
	res.Code = code

	song, ok := r.catalog.Song(code)
	if !ok {
		r.logger.Warn("song mapping not found", pathAttr, logging.String("code", code))
		res.Outcome = OutcomeUnmatched
		return res, nil
	}

	leaf := FileName(song, ext)
	if !validLeaf(leaf) {
		r.logger.Warn("invalid file name from catalog", pathAttr, logging.String("name", leaf))
		res.Outcome = OutcomeInvalidName
		return res, nil
	}
	res.Target = filepath.Join(filepath.Dir(path), leaf)
	if res.Target == path {
		r.logger.Debug("file already named", pathAttr)
		res.Outcome = OutcomeUnchanged
		return res, nil
	}

	r.logger.Info("renaming file", pathAttr, logging.String(logging.FieldTarget, res.Target))
	if err := r.apply(&res); err != nil {
		return res, err
	}
	return res, nil
}
