package store

import (
	"context"
	"fmt"
	"time"

	"broadwayscore/internal/catalog"
	"broadwayscore/internal/score"
)

// SetSourceScore records the latest payload from one external rating feed.
// Replays overwrite the previous value for the same show and source.
func (s *Store) SetSourceScore(ctx context.Context, showID string, source score.Source, payload catalog.SourceScore) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO source_scores (show_id, source, score, sample_size, updated_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(show_id, source) DO UPDATE SET
             score = excluded.score,
             sample_size = excluded.sample_size,
             updated_at = excluded.updated_at`,
		showID,
		string(source),
		payload.Score,
		payload.SampleSize,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("set source score: %w", err)
	}
	return nil
}

// SourceScores returns every stored feed payload for a show keyed by source.
func (s *Store) SourceScores(ctx context.Context, showID string) (map[score.Source]catalog.SourceScore, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT source, score, sample_size FROM source_scores WHERE show_id = ?`,
		showID,
	)
	if err != nil {
		return nil, fmt.Errorf("query source scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[score.Source]catalog.SourceScore)
	for rows.Next() {
		var (
			source     string
			value      float64
			sampleSize int
		)
		if err := rows.Scan(&source, &value, &sampleSize); err != nil {
			return nil, err
		}
		scores[score.Source(source)] = catalog.SourceScore{Score: value, SampleSize: sampleSize}
	}
	return scores, rows.Err()
}

// ScoreSources assembles a show's stored feed payloads into the blend input.
func (s *Store) ScoreSources(ctx context.Context, showID string) (score.Sources, error) {
	stored, err := s.SourceScores(ctx, showID)
	if err != nil {
		return score.Sources{}, err
	}

	var sources score.Sources
	if payload, ok := stored[score.SourceCritics]; ok {
		value := payload
		sources.Critics = &value
	}
	if payload, ok := stored[score.SourceCrowd]; ok {
		value := payload
		sources.Crowd = &value
	}
	if payload, ok := stored[score.SourceDiscourse]; ok {
		value := payload
		sources.Discourse = &value
	}
	return sources, nil
}
