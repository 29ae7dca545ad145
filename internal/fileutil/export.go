package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ExportFS copies every regular file under root in fsys into dst, keeping
// the relative layout. Files that already exist in dst are left untouched
// unless overwrite is set. Returns the slash-separated paths written.
func ExportFS(fsys fs.FS, root, dst string, overwrite bool) ([]string, error) {
	var written []string
	err := fs.WalkDir(fsys, root, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := name
		if root != "." {
			rel = name[len(root)+1:]
		}
		target := filepath.Join(dst, filepath.FromSlash(rel))

		if !overwrite {
			if _, err := os.Stat(target); err == nil {
				return nil
			}
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if err := WriteFileAtomic(target, data, 0o644); err != nil {
			return err
		}
		written = append(written, rel)
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("export %s: %w", root, err)
	}
	return written, nil
}
