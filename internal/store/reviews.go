package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"broadwayscore/internal/catalog"
)

const reviewColumns = "id, show_id, outlet_id, outlet, critic_name, critic_slug, url, publish_date, full_text, wrong_full_text, excerpts_json, assigned_score, source_tags_json, quarantine_json, created_at, updated_at"

// InsertReview persists a new review row. The partial unique index on
// (show_id, outlet_id, critic_slug) rejects bylined duplicates.
func (s *Store) InsertReview(ctx context.Context, review *catalog.Review) (*catalog.Review, error) {
	if review == nil {
		return nil, errors.New("review is nil")
	}
	if review.ID == "" {
		review.ID = catalog.NewID()
	}

	excerptsJSON, err := marshalStrings(review.Excerpts)
	if err != nil {
		return nil, fmt.Errorf("marshal excerpts: %w", err)
	}
	tagsJSON, err := marshalStrings(review.SourceTags)
	if err != nil {
		return nil, fmt.Errorf("marshal source tags: %w", err)
	}
	quarantineJSON, err := marshalQuarantine(review.Quarantine)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO reviews (
            id, show_id, outlet_id, outlet, critic_name, critic_slug, url,
            publish_date, full_text, wrong_full_text, excerpts_json,
            assigned_score, source_tags_json, quarantine_json, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		review.ID,
		review.ShowID,
		review.OutletID,
		review.Outlet,
		review.CriticName,
		review.CriticSlug,
		review.URL,
		nullableTime(review.PublishDate),
		review.FullText,
		review.WrongFullText,
		excerptsJSON,
		nullableInt(review.AssignedScore),
		tagsJSON,
		quarantineJSON,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	return s.GetReviewByID(ctx, review.ID)
}

// UpdateReview persists changes to an existing review row.
func (s *Store) UpdateReview(ctx context.Context, review *catalog.Review) error {
	if review == nil {
		return errors.New("review is nil")
	}

	excerptsJSON, err := marshalStrings(review.Excerpts)
	if err != nil {
		return fmt.Errorf("marshal excerpts: %w", err)
	}
	tagsJSON, err := marshalStrings(review.SourceTags)
	if err != nil {
		return fmt.Errorf("marshal source tags: %w", err)
	}
	quarantineJSON, err := marshalQuarantine(review.Quarantine)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(
		ctx,
		`UPDATE reviews
         SET show_id = ?, outlet_id = ?, outlet = ?, critic_name = ?, critic_slug = ?,
             url = ?, publish_date = ?, full_text = ?, wrong_full_text = ?,
             excerpts_json = ?, assigned_score = ?, source_tags_json = ?,
             quarantine_json = ?, updated_at = ?
         WHERE id = ?`,
		review.ShowID,
		review.OutletID,
		review.Outlet,
		review.CriticName,
		review.CriticSlug,
		review.URL,
		nullableTime(review.PublishDate),
		review.FullText,
		review.WrongFullText,
		excerptsJSON,
		nullableInt(review.AssignedScore),
		tagsJSON,
		quarantineJSON,
		time.Now().UTC().Format(time.RFC3339Nano),
		review.ID,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return nil
}

// GetReviewByID fetches a review by identifier. Returns nil when absent.
func (s *Store) GetReviewByID(ctx context.Context, id string) (*catalog.Review, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id)
	review, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

// ListReviews returns a show's reviews ordered by outlet then critic.
func (s *Store) ListReviews(ctx context.Context, showID string) ([]*catalog.Review, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE show_id = ? ORDER BY outlet_id, critic_slug`,
		showID,
	)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*catalog.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// ListQuarantined returns every review currently holding quarantined text.
func (s *Store) ListQuarantined(ctx context.Context) ([]*catalog.Review, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE quarantine_json IS NOT NULL ORDER BY show_id, outlet_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list quarantined: %w", err)
	}
	defer rows.Close()

	var reviews []*catalog.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func scanReview(scanner interface{ Scan(dest ...any) error }) (*catalog.Review, error) {
	var (
		id            string
		showID        string
		outletID      string
		outlet        string
		criticName    string
		criticSlug    string
		url           string
		publishRaw    sql.NullString
		fullText      string
		wrongFullText string
		excerptsRaw   sql.NullString
		assignedScore sql.NullInt64
		tagsRaw       sql.NullString
		quarantineRaw sql.NullString
		createdRaw    string
		updatedRaw    string
	)

	if err := scanner.Scan(
		&id,
		&showID,
		&outletID,
		&outlet,
		&criticName,
		&criticSlug,
		&url,
		&publishRaw,
		&fullText,
		&wrongFullText,
		&excerptsRaw,
		&assignedScore,
		&tagsRaw,
		&quarantineRaw,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	review := &catalog.Review{
		ID:            id,
		ShowID:        showID,
		OutletID:      outletID,
		Outlet:        outlet,
		CriticName:    criticName,
		CriticSlug:    criticSlug,
		URL:           url,
		FullText:      fullText,
		WrongFullText: wrongFullText,
	}
	review.PublishDate = parseNullableTime(publishRaw)

	if assignedScore.Valid {
		score := int(assignedScore.Int64)
		review.AssignedScore = &score
	}
	if excerptsRaw.Valid && excerptsRaw.String != "" {
		if err := json.Unmarshal([]byte(excerptsRaw.String), &review.Excerpts); err != nil {
			return nil, fmt.Errorf("unmarshal excerpts: %w", err)
		}
	}
	if tagsRaw.Valid && tagsRaw.String != "" {
		if err := json.Unmarshal([]byte(tagsRaw.String), &review.SourceTags); err != nil {
			return nil, fmt.Errorf("unmarshal source tags: %w", err)
		}
	}
	if quarantineRaw.Valid && quarantineRaw.String != "" {
		var record catalog.QuarantineRecord
		if err := json.Unmarshal([]byte(quarantineRaw.String), &record); err != nil {
			return nil, fmt.Errorf("unmarshal quarantine: %w", err)
		}
		review.Quarantine = &record
	}
	return review, nil
}

func marshalQuarantine(record *catalog.QuarantineRecord) (any, error) {
	if record == nil {
		return nil, nil
	}
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal quarantine: %w", err)
	}
	return string(data), nil
}
