package testsupport

import (
	"context"
	"testing"

	"cradle/internal/catalog"
	"cradle/internal/config"
)

// MustOpenCatalog opens a catalog.Store for tests and registers cleanup.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg.CatalogDBPath())
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// NewStory adds a story to the catalog for tests.
func NewStory(t testing.TB, store *catalog.Store, slug, title string, week int) *catalog.Story {
	t.Helper()

	story, err := store.Add(context.Background(), catalog.Story{Slug: slug, Title: title, Week: week})
	if err != nil {
		t.Fatalf("store.Add: %v", err)
	}
	return story
}
