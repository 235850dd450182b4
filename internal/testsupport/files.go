package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"forumarchive/internal/contenthash"
)

// WriteThread stores a thread record named name (".yaml" is appended when
// missing) under the store's threads/ directory.
func WriteThread(t testing.TB, storeDir, name, body string) string {
	t.Helper()
	return writeRecord(t, filepath.Join(storeDir, "threads"), name, body)
}

// WriteProfile stores a profile record under the store's profiles/ directory.
func WriteProfile(t testing.TB, storeDir, name, body string) string {
	t.Helper()
	return writeRecord(t, filepath.Join(storeDir, "profiles"), name, body)
}

// WriteAsset stores data under files/ using the hashed name the scraper
// derives from url, and returns that name.
func WriteAsset(t testing.TB, storeDir, url string, data []byte) string {
	t.Helper()

	name := contenthash.Name(url)
	writeBytes(t, filepath.Join(storeDir, "files", name), data)
	return name
}

func writeRecord(t testing.TB, dir, name, body string) string {
	t.Helper()

	if filepath.Ext(name) == "" {
		name += ".yaml"
	}
	path := filepath.Join(dir, name)
	writeBytes(t, path, []byte(body))
	return path
}

func writeBytes(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadFile returns the contents of path, failing the test when it is missing.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
