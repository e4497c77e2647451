package syncer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// expandRoots returns every file and symlink under roots, relative to
// workTree with forward slashes. Roots missing on disk contribute nothing.
// Directories named .git are skipped along with their contents.
func expandRoots(workTree string, roots []string) (map[string]struct{}, error) {
	files := make(map[string]struct{})

	for _, root := range roots {
		abs := filepath.Join(workTree, filepath.FromSlash(root))

		info, err := os.Lstat(abs)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrSyncAborted, root, err)
		}
		if !info.IsDir() {
			if isRecordable(info.Mode()) {
				files[root] = struct{}{}
			}
			continue
		}

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Name() == ".git" {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !isRecordable(d.Type()) {
				return nil
			}
			rel, err := filepath.Rel(workTree, path)
			if err != nil {
				return err
			}
			files[filepath.ToSlash(rel)] = struct{}{}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSyncAborted, root, err)
		}
	}

	return files, nil
}

// isRecordable reports whether git can store an entry of this type.
func isRecordable(mode fs.FileMode) bool {
	return mode.IsRegular() || mode&fs.ModeSymlink != 0
}
