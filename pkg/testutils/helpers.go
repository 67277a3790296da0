package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTestFilesWithContent creates test files with specific content
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		require.NoError(t, err)
	}
}

// CreateTestFiles creates a spread of fixture files covering several
// categories plus one file without an extension.
func CreateTestFiles(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"photo.png":   "png content",
		"report.pdf":  "pdf content",
		"song.mp3":    "mp3 content",
		"backup.zip":  "zip content",
		"main.go":     "package main",
		"notes":       "no extension",
		"sheet.csv":   "a,b,c",
		"slides.pptx": "slides",
	}
	CreateTestFilesWithContent(t, dir, files)
}
