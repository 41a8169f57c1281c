package verify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"broadwayscore/internal/textutil"
)

type polarity int

const (
	positive polarity = iota
	negative
)

// signalDef is one row of the declarative signal table.
type signalDef struct {
	name     string
	polarity polarity
	weight   float64
	detect   func(v *Verifier, sc *signalContext) (bool, string)
}

// Signal names referenced by the verdict table.
const (
	signalExactTitle = "exact-title"
	signalOtherShow  = "other-show"
)

var signalTable = []signalDef{
	{name: signalExactTitle, polarity: positive, weight: 3, detect: detectExactTitle},
	{name: "partial-title", polarity: positive, weight: 1.5, detect: detectPartialTitle},
	{name: "venue", polarity: positive, weight: 1, detect: detectVenue},
	{name: "person", polarity: positive, weight: 1, detect: detectPerson},
	{name: "year", polarity: positive, weight: 0.5, detect: detectYear},
	{name: signalOtherShow, polarity: negative, weight: 3, detect: detectOtherShow},
	{name: "outlet-mismatch", polarity: negative, weight: 1.5, detect: detectOutletMismatch},
	{name: "date-out-of-window", polarity: negative, weight: 1, detect: detectDateWindow},
}

var theatreSuffixPattern = regexp.MustCompile(`(?i)\s+(theatre|theater|playhouse)$`)

func detectExactTitle(_ *Verifier, sc *signalContext) (bool, string) {
	title := strings.ToLower(strings.TrimSpace(sc.show.Title))
	if len(title) < 3 {
		return false, ""
	}
	if strings.Contains(sc.text, title) {
		return true, fmt.Sprintf("title %q appears verbatim", sc.show.Title)
	}
	return false, ""
}

func detectPartialTitle(_ *Verifier, sc *signalContext) (bool, string) {
	words := textutil.SignificantWords(sc.show.Title)
	if len(words) < 2 {
		return false, ""
	}
	phrase := words[0] + " " + words[1]
	if len(phrase) < 6 {
		return false, ""
	}
	if strings.Contains(sc.text, phrase) {
		return true, fmt.Sprintf("leading title words %q appear", phrase)
	}
	return false, ""
}

func detectVenue(_ *Verifier, sc *signalContext) (bool, string) {
	venue := strings.ToLower(strings.TrimSpace(sc.show.Venue))
	if venue == "" {
		return false, ""
	}
	// "Walter Kerr Theatre" should match "at the Walter Kerr".
	stripped := strings.TrimSpace(theatreSuffixPattern.ReplaceAllString(venue, ""))
	if len(stripped) < 4 {
		stripped = venue
	}
	if strings.Contains(sc.text, stripped) {
		return true, fmt.Sprintf("venue %q mentioned", sc.show.Venue)
	}
	return false, ""
}

func detectPerson(_ *Verifier, sc *signalContext) (bool, string) {
	for _, person := range sc.show.People {
		fields := strings.Fields(strings.ToLower(person))
		if len(fields) == 0 {
			continue
		}
		surname := fields[len(fields)-1]
		if len(surname) < 4 {
			continue
		}
		pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(surname) + `\b`)
		if err != nil {
			continue
		}
		if pattern.MatchString(sc.text) {
			return true, fmt.Sprintf("company member %q mentioned", person)
		}
	}
	return false, ""
}

func detectYear(_ *Verifier, sc *signalContext) (bool, string) {
	year := sc.show.OpeningYear()
	if year == 0 {
		return false, ""
	}
	token := strconv.Itoa(year)
	pattern := regexp.MustCompile(`\b` + token + `\b`)
	if pattern.MatchString(sc.text) {
		return true, fmt.Sprintf("opening year %s mentioned", token)
	}
	return false, ""
}

func detectOtherShow(v *Verifier, sc *signalContext) (bool, string) {
	for _, other := range v.knownShows {
		if other == nil || other.ID == sc.show.ID {
			continue
		}
		otherTitle := strings.ToLower(strings.TrimSpace(other.Title))
		if len(otherTitle) <= 5 {
			continue
		}
		// Titles that contain each other (e.g. a show and its sequel) are
		// not evidence of a mix-up.
		thisTitle := strings.ToLower(strings.TrimSpace(sc.show.Title))
		if strings.Contains(otherTitle, thisTitle) || strings.Contains(thisTitle, otherTitle) {
			continue
		}
		if strings.Contains(sc.text, otherTitle) {
			return true, fmt.Sprintf("different show %q named in text", other.Title)
		}
	}
	return false, ""
}

func detectOutletMismatch(v *Verifier, sc *signalContext) (bool, string) {
	if sc.review == nil || sc.review.URL == "" {
		return false, ""
	}
	claimed := sc.review.OutletID
	if claimed == "" {
		claimed = v.norm.Outlet(sc.review.Outlet)
	}
	if claimed == "" {
		return false, ""
	}
	fromURL := v.norm.Outlet(sc.review.URL)
	if fromURL == "" {
		return false, ""
	}
	// Only curated outlets are trustworthy enough to contradict the claim.
	if !v.norm.KnownOutlet(claimed) || !v.norm.KnownOutlet(fromURL) {
		return false, ""
	}
	if claimed != fromURL {
		return true, fmt.Sprintf("claimed outlet %q but URL resolves to %q", claimed, fromURL)
	}
	return false, ""
}

func detectDateWindow(v *Verifier, sc *signalContext) (bool, string) {
	if sc.review == nil || sc.review.PublishDate == nil || sc.show.OpeningDate == nil {
		return false, ""
	}
	windowStart := sc.show.OpeningDate.AddDate(0, 0, -v.cfg.PreviewWindowDays)
	if sc.review.PublishDate.Before(windowStart) {
		return true, fmt.Sprintf("published %s, before the preview window opening %s",
			sc.review.PublishDate.Format(time.DateOnly), sc.show.OpeningDate.Format(time.DateOnly))
	}
	return false, ""
}
