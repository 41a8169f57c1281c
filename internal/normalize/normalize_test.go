package normalize_test

import (
	"testing"

	"broadwayscore/internal/aliases"
	"broadwayscore/internal/normalize"
)

func newNormalizer(t *testing.T) *normalize.Normalizer {
	t.Helper()
	tables, err := aliases.Load()
	if err != nil {
		t.Fatalf("load alias tables: %v", err)
	}
	return normalize.New(tables)
}

func TestTitleReduction(t *testing.T) {
	n := newNormalizer(t)
	cases := []struct {
		in   string
		want string
	}{
		{"Sweeney Todd: The Demon Barber of Fleet Street", "sweeney todd"},
		{"Sweeney Todd the Demon Barber of Fleet Street", "sweeney todd"},
		{"The Lion King on Broadway", "lion king"},
		{"Matilda The Musical", "matilda"},
		{"& Juliet", "juliet"},
		{"Merrily We Roll Along (2023 Revival)", "merrily we roll along"},
		{"Hamilton - An American Musical", "hamilton"},
		{"A Doll's House", "doll s house"},
		{"The Who's Tommy", "who s tommy"},
		{"Hedwig and the Angry Inch", "hedwig"},
		{"SIX", "six"},
	}
	for _, tc := range cases {
		if got := n.Title(tc.in); got != tc.want {
			t.Errorf("Title(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTitleIsIdempotent(t *testing.T) {
	n := newNormalizer(t)
	titles := []string{
		"Sweeney Todd: The Demon Barber of Fleet Street",
		"The Lion King on Broadway",
		"Matilda The Musical",
		"Merrily We Roll Along (2023 Revival)",
		"A Doll's House, Part 2",
		"The The",
		"Hedwig and the Angry Inch",
		"an enemy of the people",
	}
	for _, title := range titles {
		once := n.Title(title)
		twice := n.Title(once)
		if once != twice {
			t.Errorf("Title not idempotent for %q: first %q, second %q", title, once, twice)
		}
	}
}

func TestCriticAliasCollapse(t *testing.T) {
	n := newNormalizer(t)

	if got := n.Critic("Benjamin Brantley"); got != "ben-brantley" {
		t.Fatalf("expected alias collapse to ben-brantley, got %q", got)
	}
	if got := n.Critic("Ben Brantley"); got != "ben-brantley" {
		t.Fatalf("expected canonical name to slug to itself, got %q", got)
	}
	if got := n.Critic("Firstname Lastname"); got != "firstname-lastname" {
		t.Fatalf("expected slug fallback for unknown critic, got %q", got)
	}
	if n.KnownCritic("firstname-lastname") {
		t.Fatal("expected unknown critic to be reported unknown")
	}
}

func TestOutletFromName(t *testing.T) {
	n := newNormalizer(t)
	cases := []struct {
		in   string
		want string
	}{
		{"The New York Times", "nytimes"},
		{"NY Times", "nytimes"},
		{"Time Out", "time-out-new-york"},
		{"Vulture", "vulture"},
		{"The Village Gazette", "the-village-gazette"},
	}
	for _, tc := range cases {
		if got := n.Outlet(tc.in); got != tc.want {
			t.Errorf("Outlet(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if n.KnownOutlet("the-village-gazette") {
		t.Fatal("expected uncurated outlet to be reported unknown")
	}
}

func TestOutletFromURL(t *testing.T) {
	n := newNormalizer(t)
	cases := []struct {
		in   string
		want string
	}{
		{"https://www.nytimes.com/2024/04/25/theater/review.html", "nytimes"},
		{"nytimes.com", "nytimes"},
		{"https://www.vulture.com/article/review.html", "vulture"},
		{"https://web.archive.org/web/20230915120000/https://www.nytimes.com/review.html", "nytimes"},
		{"https://reviews.unknownlocal.com/show", "unknownlocal"},
	}
	for _, tc := range cases {
		if got := n.Outlet(tc.in); got != tc.want {
			t.Errorf("Outlet(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
