package ingest_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"broadwayscore/internal/ingest"
	"broadwayscore/internal/testsupport"
)

func writeRecords(t *testing.T, records []ingest.RawRecord) string {
	t.Helper()

	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshal records: %v", err)
	}
	path := filepath.Join(t.TempDir(), "batch.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write records: %v", err)
	}
	return path
}

func TestRunInsertsAndSkipsDuplicates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	driver, err := ingest.NewDriver(cfg, st, nil)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}

	path := writeRecords(t, []ingest.RawRecord{
		{
			ShowTitle:   "Hadestown",
			Venue:       "Walter Kerr Theatre",
			OpeningDate: "2019-04-17",
			Outlet:      "The New York Times",
			CriticName:  "Jesse Green",
			PublishDate: "2019-04-17",
			FullText:    "Hadestown arrives on Broadway with its folk-opera heart intact.",
		},
		{
			// Same critic and outlet for the same show, reached through a
			// marketing title variant and the article URL.
			ShowTitle:  "Hadestown: A New Musical",
			URL:        "https://www.nytimes.com/2019/04/17/theater/hadestown-review.html",
			CriticName: "Jesse Green",
			FullText:   "Hadestown arrives on Broadway with its folk-opera heart intact.",
		},
	})

	summary, err := driver.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Processed != 2 {
		t.Fatalf("expected 2 processed, got %d", summary.Processed)
	}
	if summary.Inserted != 1 || summary.Duplicates != 1 {
		t.Fatalf("expected 1 insert and 1 duplicate, got %+v", summary)
	}

	shows, err := st.ListShows(context.Background())
	if err != nil {
		t.Fatalf("ListShows failed: %v", err)
	}
	if len(shows) != 1 || shows[0].Slug != "hadestown" {
		t.Fatalf("expected a single canonical show, got %#v", shows)
	}
}

func TestRunKeepsRevivalsDistinct(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	driver, err := ingest.NewDriver(cfg, st, nil)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}

	path := writeRecords(t, []ingest.RawRecord{
		{
			ShowTitle:   "Sweeney Todd",
			Venue:       "Barrow Street Theatre",
			OpeningDate: "2017-03-01",
			Outlet:      "The New York Times",
			CriticName:  "Ben Brantley",
		},
		{
			ShowTitle:   "Sweeney Todd",
			Venue:       "Lunt-Fontanne Theatre",
			OpeningDate: "2023-03-26",
			Outlet:      "The New York Times",
			CriticName:  "Jesse Green",
		},
	})

	summary, err := driver.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Inserted != 2 || summary.Duplicates != 0 {
		t.Fatalf("expected both revival reviews inserted, got %+v", summary)
	}

	ctx := context.Background()
	shows, err := st.ListShows(ctx)
	if err != nil {
		t.Fatalf("ListShows failed: %v", err)
	}
	if len(shows) != 2 {
		t.Fatalf("expected 2 productions, got %d", len(shows))
	}

	original, err := st.GetShowBySlug(ctx, "sweeney-todd")
	if err != nil || original == nil {
		t.Fatalf("expected the first production to survive: %v", err)
	}
	if original.Venue != "Barrow Street Theatre" {
		t.Fatalf("first production was overwritten: venue %q", original.Venue)
	}
	revival, err := st.GetShowBySlug(ctx, "sweeney-todd-2023")
	if err != nil || revival == nil {
		t.Fatalf("expected revival under a year-suffixed slug: %v", err)
	}
	if revival.Venue != "Lunt-Fontanne Theatre" {
		t.Fatalf("unexpected revival venue %q", revival.Venue)
	}

	first, err := st.ListReviews(ctx, original.ID)
	if err != nil {
		t.Fatalf("ListReviews failed: %v", err)
	}
	second, err := st.ListReviews(ctx, revival.ID)
	if err != nil {
		t.Fatalf("ListReviews failed: %v", err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected reviews split per production, got %d and %d", len(first), len(second))
	}
}

func TestRunSkipsUndecodableFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	driver, err := ingest.NewDriver(cfg, st, nil)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}

	dir := t.TempDir()
	good, err := json.Marshal([]ingest.RawRecord{
		{ShowTitle: "Hadestown", Outlet: "Variety", CriticName: "Frank Rizzo"},
	})
	if err != nil {
		t.Fatalf("marshal records: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a_good.json"), good, 0o644); err != nil {
		t.Fatalf("write good file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b_bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write bad file: %v", err)
	}

	summary, err := driver.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Inserted != 1 {
		t.Fatalf("expected the healthy file to be ingested, got %+v", summary)
	}
	if summary.Malformed != 1 {
		t.Fatalf("expected the corrupt file counted as malformed, got %+v", summary)
	}
}

func TestRunCountsMalformedRecords(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	driver, err := ingest.NewDriver(cfg, st, nil)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}

	path := writeRecords(t, []ingest.RawRecord{
		{Outlet: "Variety", CriticName: "No Show Title"},
		{ShowTitle: "Six", Outlet: "Variety", CriticName: "Frank Rizzo"},
	})

	summary, err := driver.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Malformed != 1 || summary.Inserted != 1 {
		t.Fatalf("expected 1 malformed and 1 inserted, got %+v", summary)
	}
}

func TestRunTagsUnknownOutlets(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	driver, err := ingest.NewDriver(cfg, st, nil)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}

	path := writeRecords(t, []ingest.RawRecord{
		{ShowTitle: "The Outsiders", Outlet: "Uncle Charlie's Theatre Blog", CriticName: "Charlie Smith"},
	})

	summary, err := driver.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.UnknownOutlets != 1 || summary.Inserted != 1 {
		t.Fatalf("expected unknown outlet still inserted, got %+v", summary)
	}

	ctx := context.Background()
	show, err := st.GetShowBySlug(ctx, "outsiders")
	if err != nil || show == nil {
		t.Fatalf("expected show to exist: %v", err)
	}
	reviews, err := st.ListReviews(ctx, show.ID)
	if err != nil {
		t.Fatalf("ListReviews failed: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews))
	}
	found := false
	for _, tag := range reviews[0].SourceTags {
		if tag == "unknown-outlet" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unknown-outlet tag, got %v", reviews[0].SourceTags)
	}
}

func TestRunQuarantinesConfidentMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	driver, err := ingest.NewDriver(cfg, st, nil)
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}

	path := writeRecords(t, []ingest.RawRecord{
		{
			ShowTitle:   "Hadestown",
			OpeningDate: "2019-04-17",
			Outlet:      "Variety",
			CriticName:  "Frank Rizzo",
		},
		{
			// Scraped text actually covers the other show, published long
			// before this one went into previews.
			ShowTitle:   "Cabaret",
			OpeningDate: "2024-04-21",
			Outlet:      "Variety",
			CriticName:  "Naveen Kumar",
			PublishDate: "2023-01-10",
			FullText:    "Hadestown still swings down to the underworld every night in this folk opera.",
		},
	})

	summary, err := driver.Run(context.Background(), path)
	if err == nil {
		t.Fatal("expected batch failure from mismatch rate")
	}
	if summary == nil {
		t.Fatal("expected summary alongside mismatch-rate error")
	}
	if summary.Mismatches != 1 {
		t.Fatalf("expected 1 mismatch, got %+v", summary)
	}
	if summary.Quarantined != 1 {
		t.Fatalf("expected 1 quarantine, got %+v", summary)
	}

	ctx := context.Background()
	show, err := st.GetShowBySlug(ctx, "cabaret")
	if err != nil || show == nil {
		t.Fatalf("expected cabaret to exist: %v", err)
	}
	reviews, err := st.ListReviews(ctx, show.ID)
	if err != nil {
		t.Fatalf("ListReviews failed: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews))
	}
	review := reviews[0]
	if review.FullText != "" || review.WrongFullText == "" || review.Quarantine == nil {
		t.Fatalf("expected quarantined text, got %#v", review)
	}
}
