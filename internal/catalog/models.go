package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents where a show is in its production run.
type Status string

const (
	StatusOpen     Status = "open"
	StatusPreviews Status = "previews"
	StatusClosed   Status = "closed"
)

var allStatuses = []Status{StatusOpen, StatusPreviews, StatusClosed}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Valid reports whether the status is one of the known lifecycle values.
func (s Status) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

// ParseStatus maps free-text status values onto the lifecycle enum,
// defaulting to open for unrecognized input.
func ParseStatus(value string) Status {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status
	}
	return StatusOpen
}

// Show is one production run. Two productions of the same title (a revival)
// are distinct shows with distinct IDs and opening dates.
type Show struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Venue       string     `json:"venue,omitempty"`
	OpeningDate *time.Time `json:"opening_date,omitempty"`
	ClosingDate *time.Time `json:"closing_date,omitempty"`
	Status      Status     `json:"status"`
	// People lists cast and creative-team names used by the content
	// verifier's surname signal.
	People []string `json:"people,omitempty"`
}

// OpeningYear returns the four-digit opening year, or 0 when unknown.
func (s *Show) OpeningYear() int {
	if s == nil || s.OpeningDate == nil {
		return 0
	}
	return s.OpeningDate.Year()
}

// QuarantineRecord captures why a review's text was moved aside, so a
// human can later restore or discard it. Quarantine is reversible.
type QuarantineRecord struct {
	Signals []string  `json:"signals"`
	Score   float64   `json:"score"`
	At      time.Time `json:"at"`
}

// Review is one critic's (or one unbylined piece's) coverage of a show.
// The tuple (ShowID, OutletID, CriticSlug) is unique within a show's
// review set; the duplicate detector protects that key.
type Review struct {
	ID         string `json:"id"`
	ShowID     string `json:"show_id"`
	OutletID   string `json:"outlet_id"`
	Outlet     string `json:"outlet,omitempty"`
	CriticName string `json:"critic_name,omitempty"`
	CriticSlug string `json:"critic_slug,omitempty"`
	URL        string `json:"url,omitempty"`

	PublishDate *time.Time `json:"publish_date,omitempty"`

	FullText string   `json:"full_text,omitempty"`
	Excerpts []string `json:"excerpts,omitempty"`

	// WrongFullText holds quarantined article text that the verifier
	// decided belongs to a different show. The original is preserved here
	// rather than deleted.
	WrongFullText string            `json:"wrong_full_text,omitempty"`
	Quarantine    *QuarantineRecord `json:"quarantine,omitempty"`

	// AssignedScore is the 0-100 sentiment score supplied by the external
	// classification oracle. Nil means not yet scored; never zero-filled.
	AssignedScore *int     `json:"assigned_score,omitempty"`
	SourceTags    []string `json:"source_tags,omitempty"`
}

// HasByline reports whether the review carries a critic name.
func (r *Review) HasByline() bool {
	return r != nil && strings.TrimSpace(r.CriticName) != ""
}

// Text returns the body used for content verification: the full text when
// present, otherwise the excerpts joined together.
func (r *Review) Text() string {
	if r == nil {
		return ""
	}
	if strings.TrimSpace(r.FullText) != "" {
		return r.FullText
	}
	return strings.Join(r.Excerpts, "\n")
}

// SourceScore is the boundary payload delivered by each external rating
// scraper: a 0-100 score plus the number of observations behind it.
type SourceScore struct {
	Score      float64 `json:"score"`
	SampleSize int     `json:"sample_size"`
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}
