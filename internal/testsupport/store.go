package testsupport

import (
	"context"
	"testing"

	"forumarchive/internal/catalog"
)

// MustOpenCatalog opens a catalog.Catalog for tests and registers cleanup.
func MustOpenCatalog(t testing.TB, path string) *catalog.Catalog {
	t.Helper()

	c, err := catalog.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})
	return c
}
