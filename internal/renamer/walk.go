package renamer

import (
	"fmt"
	"path/filepath"

	"github.com/karrick/godirwalk"

	"songrenamer/internal/logging"
)

// walker enumerates a tree rooted at a directory that may itself be a
// symbolic link. Links below the root are listed but never followed, and
// reported paths keep the caller's spelling of the root.
type walker struct {
	root     string
	resolved string
	r        *Renamer
}

func (r *Renamer) newWalker(root string) (*walker, error) {
	clean := filepath.Clean(root)
	resolved, err := filepath.EvalSymlinks(clean)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}
	return &walker{root: clean, resolved: resolved, r: r}, nil
}

// path maps a walked path back under the caller's root.
func (w *walker) path(walked string) string {
	if w.root == w.resolved {
		return walked
	}
	rel, err := filepath.Rel(w.resolved, walked)
	if err != nil {
		return walked
	}
	return filepath.Join(w.root, rel)
}

// skipUnreadable keeps a walk going past entries that cannot be listed.
func (w *walker) skipUnreadable(walked string, err error) godirwalk.ErrorAction {
	w.r.logger.Warn("skipping unreadable path",
		logging.String(logging.FieldPath, w.path(walked)),
		logging.Error(err),
	)
	return godirwalk.SkipNode
}

func (w *walker) walk(callback, post godirwalk.WalkFunc) error {
	return godirwalk.Walk(w.resolved, &godirwalk.Options{
		Callback:             callback,
		PostChildrenCallback: post,
		ErrorCallback:        w.skipUnreadable,
	})
}

// snapshotFiles lists every non-directory entry under root in lexical order.
func (r *Renamer) snapshotFiles(root string) ([]string, error) {
	w, err := r.newWalker(root)
	if err != nil {
		return nil, err
	}
	var files []string
	err = w.walk(func(path string, de *godirwalk.Dirent) error {
		if !de.IsDir() {
			files = append(files, w.path(path))
		}
		return nil
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("list files under %s: %w", root, err)
	}
	return files, nil
}

// snapshotDirectories lists every directory under root, root excluded, in
// post-order: a directory always follows everything nested inside it.
func (r *Renamer) snapshotDirectories(root string) ([]string, error) {
	w, err := r.newWalker(root)
	if err != nil {
		return nil, err
	}
	var dirs []string
	err = w.walk(func(string, *godirwalk.Dirent) error { return nil },
		func(path string, _ *godirwalk.Dirent) error {
			if filepath.Clean(path) != w.resolved {
				dirs = append(dirs, w.path(path))
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("list directories under %s: %w", root, err)
	}
	return dirs, nil
}
