package dedup_test

import (
	"testing"
	"time"

	"broadwayscore/internal/aliases"
	"broadwayscore/internal/catalog"
	"broadwayscore/internal/config"
	"broadwayscore/internal/dedup"
	"broadwayscore/internal/logging"
	"broadwayscore/internal/normalize"
	"broadwayscore/internal/resolve"
)

func newDetector(t *testing.T, audit *resolve.AuditLog) *dedup.Detector {
	t.Helper()
	tables, err := aliases.Load()
	if err != nil {
		t.Fatalf("load alias tables: %v", err)
	}
	norm := normalize.New(tables)
	cfg := config.Default()
	var resolver *resolve.Resolver
	if audit != nil {
		resolver = resolve.NewResolver(norm, cfg.Matching, audit, logging.NewNop())
	}
	return dedup.NewDetector(norm, cfg.Matching, resolver, logging.NewNop())
}

func date(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestCheckShowExactTitle(t *testing.T) {
	d := newDetector(t, nil)
	existing := []*catalog.Show{
		{ID: "s1", Slug: "hadestown", Title: "Hadestown"},
	}
	res := d.CheckShow(&catalog.Show{Title: "hadestown"}, existing)
	if !res.IsDuplicate {
		t.Fatal("expected duplicate")
	}
	if res.Rule != "exact-identity" {
		t.Fatalf("expected exact-identity rule, got %s", res.Rule)
	}
	if res.Show == nil || res.Show.ID != "s1" {
		t.Fatalf("expected matched show s1, got %+v", res.Show)
	}
}

func TestCheckShowNormalizedTitle(t *testing.T) {
	d := newDetector(t, nil)
	existing := []*catalog.Show{
		{ID: "s1", Slug: "sweeney-todd", Title: "Sweeney Todd"},
	}
	res := d.CheckShow(&catalog.Show{Title: "Sweeney Todd: The Demon Barber of Fleet Street"}, existing)
	if !res.IsDuplicate {
		t.Fatal("expected normalized-title duplicate")
	}
	if res.Rule == "" || res.Reason == "" {
		t.Fatalf("expected rule and reason recorded, got %+v", res)
	}
}

func TestCheckShowRuleOrdering(t *testing.T) {
	d := newDetector(t, nil)
	// Both shows would match something; the stronger rule must win even
	// though the weaker candidate appears first in the slice.
	existing := []*catalog.Show{
		{ID: "weak", Slug: "music-man-tour", Title: "The Music Man National Tour"},
		{ID: "strong", Slug: "music-man", Title: "The Music Man"},
	}
	res := d.CheckShow(&catalog.Show{Slug: "music-man", Title: "The Music Man"}, existing)
	if !res.IsDuplicate || res.Show.ID != "strong" {
		t.Fatalf("expected the stronger match to win, got %+v", res)
	}
}

func TestCheckShowRevivalException(t *testing.T) {
	d := newDetector(t, nil)
	existing := []*catalog.Show{
		{ID: "s1", Slug: "cabaret-1998", Title: "Cabaret", Venue: "Studio 54", OpeningDate: date("1998-03-19")},
	}
	revival := &catalog.Show{
		Slug: "cabaret-2024", Title: "Cabaret", Venue: "August Wilson Theatre", OpeningDate: date("2024-04-21"),
	}
	res := d.CheckShow(revival, existing)
	if res.IsDuplicate {
		t.Fatalf("revival must not be flagged as duplicate: %+v", res)
	}

	// Same title with openings inside the window is a re-announcement.
	reannounced := &catalog.Show{
		Slug: "cabaret-2024b", Title: "Cabaret", OpeningDate: date("1998-04-02"),
	}
	if res := d.CheckShow(reannounced, existing); !res.IsDuplicate {
		t.Fatal("expected same run re-announced to be a duplicate")
	}
}

func TestCheckShowDistinctTitles(t *testing.T) {
	d := newDetector(t, nil)
	existing := []*catalog.Show{
		{ID: "s1", Slug: "wicked", Title: "Wicked"},
	}
	if res := d.CheckShow(&catalog.Show{Slug: "hamilton", Title: "Hamilton"}, existing); res.IsDuplicate {
		t.Fatalf("distinct shows flagged as duplicate: %+v", res)
	}
}

func TestCheckReviewCriticCaseInsensitive(t *testing.T) {
	d := newDetector(t, nil)
	existing := []*catalog.Review{
		{ID: "r1", ShowID: "s1", OutletID: "vulture", CriticName: "Sara Holdren"},
	}
	res := d.CheckReview(&catalog.Review{ShowID: "s1", OutletID: "vulture", CriticName: "SARA HOLDREN"}, existing)
	if !res.IsDuplicate || res.Rule != "review-key" {
		t.Fatalf("expected review-key duplicate, got %+v", res)
	}
	if res.Weak {
		t.Fatal("review-key matches are high confidence")
	}
}

func TestCheckReviewDifferentCritics(t *testing.T) {
	d := newDetector(t, nil)
	existing := []*catalog.Review{
		{ID: "r1", ShowID: "s1", OutletID: "nytimes", CriticName: "Jesse Green"},
	}
	res := d.CheckReview(&catalog.Review{ShowID: "s1", OutletID: "nytimes", CriticName: "Maya Phillips"}, existing)
	if res.IsDuplicate {
		t.Fatalf("different critics at one outlet flagged as duplicate: %+v", res)
	}
}

func TestCheckReviewUnbylinedWeakMatch(t *testing.T) {
	d := newDetector(t, nil)
	existing := []*catalog.Review{
		{ID: "r1", ShowID: "s1", OutletID: "associated-press"},
	}
	res := d.CheckReview(&catalog.Review{ShowID: "s1", OutletID: "associated-press"}, existing)
	if !res.IsDuplicate || !res.Weak {
		t.Fatalf("expected weak unbylined duplicate, got %+v", res)
	}
	if res.Rule != "review-outlet-unbylined" {
		t.Fatalf("unexpected rule %s", res.Rule)
	}
}

func TestCheckReviewFuzzyCriticNeverMerges(t *testing.T) {
	audit := resolve.NewAuditLog()
	d := newDetector(t, audit)
	existing := []*catalog.Review{
		{ID: "r1", ShowID: "s1", OutletID: "observer", CriticName: "David Cotte"},
	}
	// Edit distance 1 from the stored byline: surfaced for audit, not merged.
	res := d.CheckReview(&catalog.Review{ShowID: "s1", OutletID: "observer", CriticName: "David Cotte's"}, existing)
	if res.IsDuplicate {
		t.Fatalf("fuzzy critic match must not auto-merge: %+v", res)
	}
	if audit.Len() == 0 {
		t.Fatal("expected fuzzy candidate recorded for human review")
	}
}
