package store_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"broadwayscore/internal/catalog"
	"broadwayscore/internal/score"
	"broadwayscore/internal/testsupport"
)

func TestExportWritesDatasetLayout(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	show := testsupport.NewShow(t, st, "sweeney-todd", "Sweeney Todd")

	if _, err := st.InsertReview(ctx, &catalog.Review{
		ShowID:     show.ID,
		OutletID:   "nytimes",
		Outlet:     "The New York Times",
		CriticName: "Jesse Green",
		CriticSlug: "jesse-green",
		FullText:   "A thrilling revival of Sweeney Todd.",
	}); err != nil {
		t.Fatalf("InsertReview failed: %v", err)
	}
	if err := st.SetSourceScore(ctx, show.ID, score.SourceCritics, catalog.SourceScore{Score: 86, SampleSize: 14}); err != nil {
		t.Fatalf("SetSourceScore failed: %v", err)
	}

	aggregator := score.NewAggregator(cfg.Scoring)
	summary, err := st.Export(ctx, cfg.Paths.ExportDir, aggregator)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if summary.Shows != 1 || summary.Reviews != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	showPath := filepath.Join(cfg.Paths.ExportDir, "shows", "sweeney-todd", "show.json")
	if _, err := os.Stat(showPath); err != nil {
		t.Fatalf("expected show.json: %v", err)
	}
	reviewPath := filepath.Join(cfg.Paths.ExportDir, "shows", "sweeney-todd", "reviews", "nytimes-jesse-green.json")
	if _, err := os.Stat(reviewPath); err != nil {
		t.Fatalf("expected per-outlet review file: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Paths.ExportDir, "scores.json"))
	if err != nil {
		t.Fatalf("read combined scores: %v", err)
	}
	var combined map[string]struct {
		Slug        string `json:"slug"`
		Combined    *int   `json:"combined"`
		Designation string `json:"designation"`
	}
	if err := json.Unmarshal(data, &combined); err != nil {
		t.Fatalf("unmarshal combined scores: %v", err)
	}
	entry, ok := combined[show.ID]
	if !ok {
		t.Fatalf("expected combined entry keyed by show ID, got %v", combined)
	}
	if entry.Slug != "sweeney-todd" {
		t.Fatalf("unexpected slug: %q", entry.Slug)
	}
	if entry.Combined == nil || *entry.Combined != 86 {
		t.Fatalf("expected lone critics source to carry full weight, got %v", entry.Combined)
	}
	if entry.Designation == "" {
		t.Fatal("expected a designation for a scored show")
	}
}

func TestExportFillsOutletDisplayName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	show := testsupport.NewShow(t, st, "the-outsiders", "The Outsiders")

	if _, err := st.InsertReview(ctx, &catalog.Review{
		ShowID:   show.ID,
		OutletID: "broadway-news",
	}); err != nil {
		t.Fatalf("InsertReview failed: %v", err)
	}

	if _, err := st.Export(ctx, cfg.Paths.ExportDir, nil); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Paths.ExportDir, "shows", "the-outsiders", "reviews", "broadway-news.json"))
	if err != nil {
		t.Fatalf("read review file: %v", err)
	}
	var review struct {
		Outlet string `json:"outlet"`
	}
	if err := json.Unmarshal(data, &review); err != nil {
		t.Fatalf("unmarshal review: %v", err)
	}
	if review.Outlet != "Broadway-News" {
		t.Fatalf("unexpected outlet display name: %q", review.Outlet)
	}
}
