package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"broadwayscore/internal/score"
)

// ExportSummary reports what an export pass wrote.
type ExportSummary struct {
	Shows   int `json:"shows"`
	Reviews int `json:"reviews"`
	Scores  int `json:"scores"`
}

type exportedScores struct {
	ShowID      string                      `json:"show_id"`
	Slug        string                      `json:"slug"`
	Title       string                      `json:"title"`
	Sources     map[score.Source]scoreEntry `json:"sources,omitempty"`
	Combined    *int                        `json:"combined,omitempty"`
	Weights     map[score.Source]float64    `json:"weights,omitempty"`
	Designation string                      `json:"designation,omitempty"`
}

type scoreEntry struct {
	Score      float64 `json:"score"`
	SampleSize int     `json:"sample_size"`
}

var titleCaser = cases.Title(language.AmericanEnglish)

// Export writes the JSON dataset under dir: one directory per show with a
// show.json and per-outlet review files, plus a scores.json per show and a
// top-level scores.json keyed by show ID. The dataset directory is guarded
// by a file lock so concurrent exports never interleave.
func (s *Store) Export(ctx context.Context, dir string, aggregator *score.Aggregator) (*ExportSummary, error) {
	if dir == "" {
		return nil, fmt.Errorf("export directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	lock := flock.New(filepath.Join(dir, ".export.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire export lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("export already in progress for %s", dir)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	shows, err := s.ListShows(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ExportSummary{}
	combined := make(map[string]exportedScores, len(shows))

	for _, show := range shows {
		showDir := filepath.Join(dir, "shows", show.Slug)
		if err := os.MkdirAll(filepath.Join(showDir, "reviews"), 0o755); err != nil {
			return nil, fmt.Errorf("create show dir: %w", err)
		}
		if err := writeJSONFile(filepath.Join(showDir, "show.json"), show); err != nil {
			return nil, err
		}
		summary.Shows++

		reviews, err := s.ListReviews(ctx, show.ID)
		if err != nil {
			return nil, err
		}
		for _, review := range reviews {
			if review.Outlet == "" {
				review.Outlet = titleCaser.String(review.OutletID)
			}
			name := review.OutletID
			if review.CriticSlug != "" {
				name += "-" + review.CriticSlug
			}
			path := filepath.Join(showDir, "reviews", name+".json")
			if err := writeJSONFile(path, review); err != nil {
				return nil, err
			}
			summary.Reviews++
		}

		sources, err := s.SourceScores(ctx, show.ID)
		if err != nil {
			return nil, err
		}
		entry := exportedScores{
			ShowID: show.ID,
			Slug:   show.Slug,
			Title:  show.Title,
		}
		if len(sources) > 0 {
			entry.Sources = make(map[score.Source]scoreEntry, len(sources))
			for source, payload := range sources {
				entry.Sources[source] = scoreEntry{Score: payload.Score, SampleSize: payload.SampleSize}
			}
		}
		if aggregator != nil {
			blend, err := s.ScoreSources(ctx, show.ID)
			if err != nil {
				return nil, err
			}
			result := aggregator.Combine(blend)
			entry.Combined = result.Score
			entry.Weights = result.Weights
			entry.Designation = result.Designation
		}
		if err := writeJSONFile(filepath.Join(showDir, "scores.json"), entry); err != nil {
			return nil, err
		}
		combined[show.ID] = entry
		summary.Scores++
	}

	if err := writeJSONFile(filepath.Join(dir, "scores.json"), combined); err != nil {
		return nil, err
	}
	return summary, nil
}

func writeJSONFile(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
