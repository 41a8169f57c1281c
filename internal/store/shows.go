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

const showColumns = "id, slug, title, venue, opening_date, closing_date, status, people_json, created_at, updated_at"

// UpsertShow inserts a show or updates the existing row with the same slug.
// The stored ID wins on conflict so review foreign keys stay stable.
func (s *Store) UpsertShow(ctx context.Context, show *catalog.Show) (*catalog.Show, error) {
	if show == nil {
		return nil, errors.New("show is nil")
	}
	if show.ID == "" {
		show.ID = catalog.NewID()
	}

	peopleJSON, err := marshalStrings(show.People)
	if err != nil {
		return nil, fmt.Errorf("marshal people: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO shows (id, slug, title, venue, opening_date, closing_date, status, people_json, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(slug) DO UPDATE SET
             title = excluded.title,
             venue = excluded.venue,
             opening_date = excluded.opening_date,
             closing_date = excluded.closing_date,
             status = excluded.status,
             people_json = excluded.people_json,
             updated_at = excluded.updated_at`,
		show.ID,
		show.Slug,
		show.Title,
		show.Venue,
		nullableTime(show.OpeningDate),
		nullableTime(show.ClosingDate),
		string(show.Status),
		peopleJSON,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert show: %w", err)
	}

	return s.GetShowBySlug(ctx, show.Slug)
}

// GetShowBySlug fetches a show by its canonical slug. Returns nil when absent.
func (s *Store) GetShowBySlug(ctx context.Context, slug string) (*catalog.Show, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+showColumns+` FROM shows WHERE slug = ?`, slug)
	show, err := scanShow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get show: %w", err)
	}
	return show, nil
}

// GetShowByID fetches a show by identifier. Returns nil when absent.
func (s *Store) GetShowByID(ctx context.Context, id string) (*catalog.Show, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+showColumns+` FROM shows WHERE id = ?`, id)
	show, err := scanShow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get show: %w", err)
	}
	return show, nil
}

// ListShows returns every show ordered by slug.
func (s *Store) ListShows(ctx context.Context) ([]*catalog.Show, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+showColumns+` FROM shows ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	defer rows.Close()

	var shows []*catalog.Show
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		shows = append(shows, show)
	}
	return shows, rows.Err()
}

func scanShow(scanner interface{ Scan(dest ...any) error }) (*catalog.Show, error) {
	var (
		id         string
		slug       string
		title      string
		venue      string
		openingRaw sql.NullString
		closingRaw sql.NullString
		statusStr  string
		peopleRaw  sql.NullString
		createdRaw string
		updatedRaw string
	)

	if err := scanner.Scan(
		&id,
		&slug,
		&title,
		&venue,
		&openingRaw,
		&closingRaw,
		&statusStr,
		&peopleRaw,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	show := &catalog.Show{
		ID:     id,
		Slug:   slug,
		Title:  title,
		Venue:  venue,
		Status: catalog.Status(statusStr),
	}
	show.OpeningDate = parseNullableTime(openingRaw)
	show.ClosingDate = parseNullableTime(closingRaw)

	if peopleRaw.Valid && peopleRaw.String != "" {
		if err := json.Unmarshal([]byte(peopleRaw.String), &show.People); err != nil {
			return nil, fmt.Errorf("unmarshal people: %w", err)
		}
	}
	return show, nil
}
