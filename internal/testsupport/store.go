package testsupport

import (
	"context"
	"testing"
	"time"

	"broadwayscore/internal/catalog"
	"broadwayscore/internal/config"
	"broadwayscore/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewShow persists a show with the given slug and title for tests.
func NewShow(t testing.TB, st *store.Store, slug, title string) *catalog.Show {
	t.Helper()

	opening := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	show, err := st.UpsertShow(context.Background(), &catalog.Show{
		Slug:        slug,
		Title:       title,
		Status:      catalog.StatusOpen,
		OpeningDate: &opening,
	})
	if err != nil {
		t.Fatalf("store.UpsertShow: %v", err)
	}
	return show
}
