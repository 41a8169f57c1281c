package textutil_test

import (
	"reflect"
	"testing"

	"broadwayscore/internal/textutil"
)

func TestSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Ben Brantley", "ben-brantley"},
		{"J. Kelly Nestruck", "j-kelly-nestruck"},
		{"  The  New   York Times ", "the-new-york-times"},
		{"O'Hara", "o-hara"},
		{"Hadestown!", "hadestown"},
		{"&c.", "c"},
		{"", ""},
		{"***", ""},
	}
	for _, tc := range cases {
		if got := textutil.Slug(tc.in); got != tc.want {
			t.Errorf("Slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSignificantWords(t *testing.T) {
	got := textutil.SignificantWords("The Phantom of the Opera")
	want := []string{"phantom", "of", "the", "opera"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SignificantWords = %v, want %v", got, want)
	}

	if words := textutil.SignificantWords("An American in Paris"); words[0] != "american" {
		t.Fatalf("expected leading article stripped, got %v", words)
	}
}
