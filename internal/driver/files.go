package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Ext is the extension of source files.
const Ext = ".rl"

// ErrNoFiles is returned when the given paths hold no source files.
var ErrNoFiles = errors.New("no " + Ext + " files found")

// ListFiles expands paths into a sorted, de-duplicated list of source files.
// Directories are walked recursively, skipping hidden ones; files named
// explicitly are taken whatever their extension. A file is dropped when an
// exclude glob matches its base name or its slash-separated path relative
// to the walked root.
func ListFiles(paths, exclude []string) ([]string, error) {
	for _, pat := range exclude {
		if _, err := filepath.Match(pat, ""); err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", pat, err)
		}
	}
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !excluded(root, exclude) {
				files = append(files, filepath.Clean(root))
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = path
			}
			if strings.HasSuffix(path, Ext) && !excluded(rel, exclude) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Сортируем для детерминированного порядка
	slices.Sort(files)
	files = slices.Compact(files)
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return files, nil
}

func excluded(path string, exclude []string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	base := filepath.Base(path)
	for _, pat := range exclude {
		if ok, _ := filepath.Match(pat, slashed); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, base); ok {
			return true
		}
		// "dir/*" исключает всё поддерево, а не только прямых детей
		if prefix, ok := strings.CutSuffix(pat, "/*"); ok && strings.HasPrefix(slashed, prefix+"/") {
			return true
		}
	}
	return false
}
