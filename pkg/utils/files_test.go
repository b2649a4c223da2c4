package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsSourceFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{
			name:     "plain javascript",
			filename: "index.js",
			expected: true,
		},
		{
			name:     "module javascript with path",
			filename: "src/lib/util.mjs",
			expected: true,
		},
		{
			name:     "commonjs",
			filename: "server.cjs",
			expected: true,
		},
		{
			name:     "typescript react",
			filename: "App.tsx",
			expected: true,
		},
		{
			name:     "upper case extension",
			filename: "LEGACY.JS",
			expected: true,
		},
		{
			name:     "declaration file is skipped",
			filename: "types/index.d.ts",
			expected: false,
		},
		{
			name:     "non-source file",
			filename: "README.md",
			expected: false,
		},
		{
			name:     "file with .js in middle",
			filename: "bundle.js.map",
			expected: false,
		},
		{
			name:     "empty string",
			filename: "",
			expected: false,
		},
		{
			name:     "no extension",
			filename: "Makefile",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result := IsSourceFile(tt.filename, DefaultExtensions)
			req.Equal(tt.expected, result, "IsSourceFile(%q) = %v, want %v", tt.filename, result, tt.expected)
		})
	}
}

func TestIsSourceFile_customExtensions(t *testing.T) {
	req := require.New(t)
	exts := []string{".ts"}
	req.True(IsSourceFile("a.ts", exts))
	req.False(IsSourceFile("a.js", exts))
	req.False(IsSourceFile("a.ts", nil))
}

func TestIsDirectory(t *testing.T) {
	req := require.New(t)
	tempDir := t.TempDir()

	tempFile := filepath.Join(tempDir, "test.txt")
	err := os.WriteFile(tempFile, []byte("test"), 0644)
	req.NoError(err, "Failed to create temp file: %v", err)

	tests := []struct {
		name      string
		path      string
		expected  bool
		expectErr bool
	}{
		{
			name:     "existing directory",
			path:     tempDir,
			expected: true,
		},
		{
			name:     "existing file",
			path:     tempFile,
			expected: false,
		},
		{
			name:      "non-existent path",
			path:      "/non/existent/path",
			expectErr: true,
		},
		{
			name:     "current directory",
			path:     ".",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result, err := IsDirectory(tt.path)

			if tt.expectErr {
				req.Error(err, "IsDirectory(%q) expected error, got nil", tt.path)
				return
			}
			req.NoError(err, "IsDirectory(%q) unexpected error: %v", tt.path, err)
			req.Equal(tt.expected, result, "IsDirectory(%q) = %v, want %v", tt.path, result, tt.expected)
		})
	}
}

func TestFindSourceFiles(t *testing.T) {
	req := require.New(t)
	tempDir := t.TempDir()

	dirs := []string{
		"src/components",
		"src/lib",
		"node_modules/left-pad",
		"vendor/legacy",
		".git",
		".cache",
		"empty",
	}
	for _, dir := range dirs {
		err := os.MkdirAll(filepath.Join(tempDir, dir), 0755)
		req.NoError(err, "Failed to create directory %s: %v", dir, err)
	}

	files := map[string]string{
		"index.js":                       "import a from 'a';",
		"src/components/Button.tsx":      "import React from 'react';",
		"src/lib/util.ts":                "export {};",
		"src/lib/util.d.ts":              "export {};",        // Excluded (declaration file)
		"node_modules/left-pad/index.js": "module.exports={}", // Excluded (dependency dir)
		"vendor/legacy/old.js":           "var x;",            // Excluded (vendor dir)
		".cache/chunk.js":                "var y;",            // Excluded (hidden dir)
		"README.md":                      "# README",          // Excluded (not source)
	}
	for filePath, content := range files {
		fullPath := filepath.Join(tempDir, filePath)
		err := os.WriteFile(fullPath, []byte(content), 0644)
		req.NoError(err, "Failed to create file %s: %v", filePath, err)
	}

	tests := []struct {
		name          string
		root          string
		expectedFiles []string
		expectErr     bool
	}{
		{
			name: "find source files in temp directory",
			root: tempDir,
			expectedFiles: []string{
				filepath.Join(tempDir, "index.js"),
				filepath.Join(tempDir, "src/components/Button.tsx"),
				filepath.Join(tempDir, "src/lib/util.ts"),
			},
		},
		{
			name:      "non-existent directory",
			root:      "/non/existent/path",
			expectErr: true,
		},
		{
			name: "empty directory",
			root: filepath.Join(tempDir, "empty"),
		},
		{
			name:          "hidden root is still walked",
			root:          filepath.Join(tempDir, ".cache"),
			expectedFiles: []string{filepath.Join(tempDir, ".cache/chunk.js")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result, err := FindSourceFiles(tt.root, DefaultExtensions)

			if tt.expectErr {
				req.Error(err, "FindSourceFiles(%q) expected error, got nil", tt.root)
				return
			}

			req.NoError(err, "FindSourceFiles(%q) unexpected error: %v", tt.root, err)
			req.ElementsMatch(tt.expectedFiles, result)
		})
	}
}

func TestIsWatchedDir(t *testing.T) {
	req := require.New(t)
	req.True(IsWatchedDir("/repo/src"))
	req.False(IsWatchedDir("/repo/node_modules"))
	req.False(IsWatchedDir("/repo/.git"))
}
