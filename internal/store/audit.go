package store

import (
	"context"
	"fmt"
	"time"

	"broadwayscore/internal/resolve"
)

// RecordFuzzyCandidates appends a batch run's fuzzy-match pairs to the
// audit table for later human review.
func (s *Store) RecordFuzzyCandidates(ctx context.Context, candidates []resolve.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, candidate := range candidates {
		_, err := s.db.ExecContext(
			ctx,
			`INSERT INTO fuzzy_audit (left_name, right_name, left_slug, right_slug, distance, created_at)
             VALUES (?, ?, ?, ?, ?, ?)`,
			candidate.Left,
			candidate.Right,
			candidate.LeftSlug,
			candidate.RightSlug,
			candidate.Distance,
			now,
		)
		if err != nil {
			return fmt.Errorf("record fuzzy candidate: %w", err)
		}
	}
	return nil
}

// ListFuzzyCandidates returns recorded fuzzy pairs, newest first.
func (s *Store) ListFuzzyCandidates(ctx context.Context) ([]resolve.Candidate, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT left_name, right_name, left_slug, right_slug, distance FROM fuzzy_audit ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list fuzzy candidates: %w", err)
	}
	defer rows.Close()

	var candidates []resolve.Candidate
	for rows.Next() {
		var candidate resolve.Candidate
		if err := rows.Scan(
			&candidate.Left,
			&candidate.Right,
			&candidate.LeftSlug,
			&candidate.RightSlug,
			&candidate.Distance,
		); err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	return candidates, rows.Err()
}
