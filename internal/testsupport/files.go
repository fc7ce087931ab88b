package testsupport

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// WriteManifest places manifest content in the library layout the server
// and loader expect: <library>/<kind>/<storyID>/manifest.txt.
func WriteManifest(t testing.TB, libraryDir, kind string, storyID int64, content string) {
	t.Helper()

	dir := filepath.Join(libraryDir, kind, strconv.FormatInt(storyID, 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", dir, err)
	}
	path := filepath.Join(dir, "manifest.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteMediaFile places an arbitrary media file next to a story's manifest.
func WriteMediaFile(t testing.TB, libraryDir, kind string, storyID int64, name string, content []byte) {
	t.Helper()

	dir := filepath.Join(libraryDir, kind, strconv.FormatInt(storyID, 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
