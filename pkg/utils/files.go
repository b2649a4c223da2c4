package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DefaultExtensions are the file extensions checked when none are configured.
var DefaultExtensions = []string{".js", ".mjs", ".cjs", ".jsx", ".ts", ".tsx", ".mts", ".cts"}

// IsSourceFile reports whether filename carries one of the given extensions.
// Declaration files (.d.ts) hold no runtime imports and are skipped.
func IsSourceFile(filename string, extensions []string) bool {
	if strings.HasSuffix(filename, ".d.ts") {
		return false
	}
	ext := filepath.Ext(filename)
	if ext == "" {
		return false
	}
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// skipDir reports whether a directory below the walk root should be pruned.
func skipDir(name string) bool {
	return name == "node_modules" || name == "vendor" || strings.HasPrefix(name, ".")
}

// FindSourceFiles recursively finds all source files in a directory
func FindSourceFiles(root string, extensions []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip dependency and hidden directories (but not the root directory)
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if IsSourceFile(d.Name(), extensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}

	return files, nil
}

// IsDirectory checks if the given path is a directory
func IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// IsWatchedDir reports whether a directory created or found during a watch
// should be followed.
func IsWatchedDir(path string) bool {
	return !skipDir(filepath.Base(path))
}
