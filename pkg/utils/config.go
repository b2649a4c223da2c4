package utils

import (
	"os"
	"path/filepath"
)

// ConfigFileNames are looked up, in order, in every directory visited by
// FindConfigFile.
var ConfigFileNames = []string{".importorder.yaml", ".importorder.yml"}

// FindConfigFile walks from path up towards the filesystem root and returns
// the first config file it finds, or "" when there is none.
func FindConfigFile(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return ""
	}

	dir := absPath
	if isDir, err := IsDirectory(absPath); err != nil || !isDir {
		dir = filepath.Dir(absPath)
	}

	iterations := 0
	maxIterations := 20 // Prevent infinite loop

	for iterations < maxIterations {
		iterations++

		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
