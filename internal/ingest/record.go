package ingest

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RawRecord is one scraped review as delivered by the collection jobs.
// Field contents are untrusted: titles carry marketing suffixes, outlets
// arrive as display names or article URLs, and dates show up in whatever
// format the source page used.
type RawRecord struct {
	ShowTitle   string   `json:"show_title"`
	Venue       string   `json:"venue,omitempty"`
	OpeningDate string   `json:"opening_date,omitempty"`
	ShowStatus  string   `json:"show_status,omitempty"`
	People      []string `json:"people,omitempty"`

	Outlet      string   `json:"outlet,omitempty"`
	CriticName  string   `json:"critic_name,omitempty"`
	URL         string   `json:"url,omitempty"`
	PublishDate string   `json:"publish_date,omitempty"`
	FullText    string   `json:"full_text,omitempty"`
	Excerpts    []string `json:"excerpts,omitempty"`
	SourceTags  []string `json:"source_tags,omitempty"`
}

// Validate reports whether the record carries enough identity to enter the
// pipeline at all.
func (r *RawRecord) Validate() error {
	if r == nil {
		return errors.New("record is nil")
	}
	if strings.TrimSpace(r.ShowTitle) == "" {
		return errors.New("missing show title")
	}
	if strings.TrimSpace(r.Outlet) == "" && strings.TrimSpace(r.URL) == "" {
		return errors.New("missing outlet and url")
	}
	return nil
}

// dateLayouts covers the formats seen across scraped source pages.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
}

func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			utc := t.UTC()
			return &utc, nil
		}
	}
	return nil, fmt.Errorf("unparseable date %q", value)
}
