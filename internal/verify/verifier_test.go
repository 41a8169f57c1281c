package verify_test

import (
	"strings"
	"testing"
	"time"

	"broadwayscore/internal/aliases"
	"broadwayscore/internal/catalog"
	"broadwayscore/internal/config"
	"broadwayscore/internal/logging"
	"broadwayscore/internal/normalize"
	"broadwayscore/internal/verify"
)

func newVerifier(t *testing.T, opts ...verify.Option) *verify.Verifier {
	t.Helper()
	tables, err := aliases.Load()
	if err != nil {
		t.Fatalf("load alias tables: %v", err)
	}
	cfg := config.Default()
	return verify.NewVerifier(normalize.New(tables), cfg.Verification, logging.NewNop(), opts...)
}

func date(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestVerifyExactTitleIsConfidentMatch(t *testing.T) {
	v := newVerifier(t)
	show := &catalog.Show{ID: "s1", Title: "Hadestown", Venue: "Walter Kerr Theatre"}
	res := v.Verify("The revival of Hadestown still burns bright at the Walter Kerr.", show)
	if res.Verdict != verify.VerdictConfidentMatch {
		t.Fatalf("expected confident_match, got %s (%+v)", res.Verdict, res)
	}
	if len(res.PositiveSignals) < 2 {
		t.Fatalf("expected title and venue signals, got %+v", res.PositiveSignals)
	}
}

func TestVerifyWeakPositiveIsProbableMatch(t *testing.T) {
	v := newVerifier(t)
	show := &catalog.Show{
		ID:     "s1",
		Title:  "The Outsiders",
		Venue:  "Bernard B. Jacobs Theatre",
		People: []string{"Brody Grant", "Sky Lakota-Lynch"},
	}
	res := v.Verify("A gritty new musical at the Bernard B. Jacobs delivers on its promise.", show)
	if res.Verdict != verify.VerdictProbableMatch {
		t.Fatalf("expected probable_match, got %s (%+v)", res.Verdict, res)
	}
	if res.NegativeSignalCount != 0 {
		t.Fatalf("expected no negative signals, got %+v", res.NegativeSignals)
	}
}

func TestVerifySingleNegativeIsProbableMismatch(t *testing.T) {
	v := newVerifier(t)
	show := &catalog.Show{ID: "s1", Title: "Stereophonic", OpeningDate: date("2024-04-19")}
	review := &catalog.Review{
		ShowID: "s1", OutletID: "nytimes",
		// Published a year before previews even began.
		PublishDate: date("2023-01-10"),
		FullText:    "An early look at the band drama Stereophonic ahead of its transfer.",
	}
	res := v.VerifyReview(review, show)
	if res.Verdict != verify.VerdictConfidentMatch {
		// The exact title is present, so the date alone cannot sink it.
		t.Fatalf("expected exact title to dominate, got %s", res.Verdict)
	}

	review.FullText = "An early look at the band drama ahead of its transfer."
	res = v.VerifyReview(review, show)
	if res.Verdict != verify.VerdictProbableMismatch {
		t.Fatalf("expected probable_mismatch for one negative signal, got %s (%+v)", res.Verdict, res)
	}
	if res.NegativeSignalCount != 1 {
		t.Fatalf("expected exactly one negative signal, got %d", res.NegativeSignalCount)
	}
}

func TestVerifyOtherShowIsConfidentMismatch(t *testing.T) {
	known := []*catalog.Show{
		{ID: "s1", Title: "Water for Elephants"},
		{ID: "s2", Title: "The Notebook"},
	}
	v := newVerifier(t, verify.WithKnownShows(known))
	res := v.Verify(
		"The Notebook works hard to earn its tears, and mostly does.",
		known[0],
	)
	if res.Verdict != verify.VerdictConfidentMismatch {
		t.Fatalf("expected confident_mismatch for a different show's review, got %s (%+v)", res.Verdict, res)
	}
}

func TestQuarantineRequiresEnoughSignals(t *testing.T) {
	known := []*catalog.Show{
		{ID: "s1", Title: "Water for Elephants", OpeningDate: date("2024-03-21")},
		{ID: "s2", Title: "The Notebook"},
	}
	v := newVerifier(t, verify.WithKnownShows(known))

	review := &catalog.Review{
		ID: "r1", ShowID: "s1", OutletID: "nytimes",
		PublishDate: date("2023-06-01"),
		FullText:    "The Notebook works hard to earn its tears, and mostly does.",
	}
	res := v.VerifyReview(review, known[0])
	if res.Verdict != verify.VerdictConfidentMismatch || res.NegativeSignalCount < 2 {
		t.Fatalf("expected confident mismatch with two signals, got %+v", res)
	}

	original := review.FullText
	if !v.QuarantineText(review, res) {
		t.Fatal("expected quarantine to proceed")
	}
	if review.FullText != "" {
		t.Fatal("expected primary text cleared")
	}
	if review.WrongFullText != original {
		t.Fatal("expected text preserved in WrongFullText")
	}
	if review.Quarantine == nil || len(review.Quarantine.Signals) < 2 {
		t.Fatalf("expected quarantine record with signals, got %+v", review.Quarantine)
	}

	if !verify.RestoreText(review) {
		t.Fatal("expected restore to succeed")
	}
	if review.FullText != original || review.WrongFullText != "" || review.Quarantine != nil {
		t.Fatal("expected quarantine fully reversed")
	}
}

func TestQuarantineRefusedForSingleSignal(t *testing.T) {
	known := []*catalog.Show{
		{ID: "s1", Title: "Water for Elephants"},
		{ID: "s2", Title: "The Notebook"},
	}
	v := newVerifier(t, verify.WithKnownShows(known))
	review := &catalog.Review{
		ID: "r1", ShowID: "s1",
		FullText: "The Notebook works hard to earn its tears.",
	}
	res := v.VerifyReview(review, known[0])
	if res.Verdict != verify.VerdictConfidentMismatch {
		t.Fatalf("a named different show is a confident mismatch, got %s", res.Verdict)
	}
	if res.NegativeSignalCount != 1 {
		t.Fatalf("expected one negative signal, got %d", res.NegativeSignalCount)
	}
	if v.QuarantineText(review, res) {
		t.Fatal("one signal must not quarantine, however confident the verdict")
	}
	if review.FullText == "" {
		t.Fatal("text must be untouched")
	}
}

func TestVerifyEmptyTextIsMismatch(t *testing.T) {
	v := newVerifier(t)
	res := v.Verify("   ", &catalog.Show{ID: "s1", Title: "Wicked"})
	if res.Verdict != verify.VerdictProbableMismatch {
		t.Fatalf("expected probable_mismatch for empty text, got %s", res.Verdict)
	}
}

func TestVerifyYearSignal(t *testing.T) {
	v := newVerifier(t)
	show := &catalog.Show{ID: "s1", Title: "Gypsy", OpeningDate: date("2024-12-19")}
	res := v.Verify("a new production arriving on broadway in 2024 with a starry lead", show)
	if res.Verdict != verify.VerdictProbableMatch {
		t.Fatalf("expected probable_match on year token, got %s (%+v)", res.Verdict, res)
	}
	found := false
	for _, s := range res.PositiveSignals {
		if strings.HasPrefix(s.Detail, "opening year") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected year signal, got %+v", res.PositiveSignals)
	}
}
