package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to dir/name, creating parent directories.
// Returns the full path. Fails the test on error.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteUserConfig writes content to ~/.config/claude-notify/config.json
// under home and returns the path.
func WriteUserConfig(t *testing.T, home, content string) string {
	t.Helper()
	return WriteFile(t, home, filepath.Join(".config", "claude-notify", "config.json"), content)
}
