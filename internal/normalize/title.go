package normalize

import (
	"strings"
	"unicode"

	"broadwayscore/internal/textutil"
)

var titleSuffixes = []string{
	" on broadway",
	" a new musical",
	" the musical",
	" a new play",
	" the play",
}

// Title reduces a raw show title to its canonical comparison key. The
// reduction is idempotent: applying it to its own output changes nothing.
func (n *Normalizer) Title(raw string) string {
	key := reduceTitle(raw)
	if n != nil && n.tables != nil {
		if canonical, ok := n.tables.CanonicalTitle(key); ok {
			return canonical
		}
	}
	return key
}

func reduceTitle(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	// Subtitles follow a colon or a spaced dash.
	if idx := strings.Index(s, ":"); idx >= 0 {
		s = s[:idx]
	}
	if idx := strings.Index(s, " - "); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// Trailing parenthetical, e.g. "(2023 revival)".
	if strings.HasSuffix(s, ")") {
		if open := strings.LastIndex(s, "("); open >= 0 {
			s = strings.TrimSpace(s[:open])
		}
	}

	s = collapseToWords(s)

	for changed := true; changed; {
		changed = false
		for _, suffix := range titleSuffixes {
			if strings.HasSuffix(s, suffix) {
				s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
				changed = true
			}
		}
	}

	s = stripLeadingArticles(s)
	return s
}

// collapseToWords replaces punctuation with spaces and collapses runs of
// whitespace, keeping only letters and digits.
func collapseToWords(s string) string {
	var b strings.Builder
	prevSpace := true
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevSpace = false
		default:
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// stripLeadingArticles removes leading article tokens. A title made
// entirely of articles keeps its original form so the key never collapses
// to the empty string.
func stripLeadingArticles(s string) string {
	stripped := s
	for {
		fields := strings.SplitN(stripped, " ", 2)
		if len(fields) < 2 || !textutil.IsArticle(fields[0]) {
			break
		}
		stripped = fields[1]
	}
	if stripped == "" || textutil.IsArticle(stripped) {
		return s
	}
	return stripped
}
