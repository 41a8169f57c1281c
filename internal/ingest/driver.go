package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"broadwayscore/internal/aliases"
	"broadwayscore/internal/catalog"
	"broadwayscore/internal/config"
	"broadwayscore/internal/dedup"
	"broadwayscore/internal/logging"
	"broadwayscore/internal/normalize"
	"broadwayscore/internal/resolve"
	"broadwayscore/internal/store"
	"broadwayscore/internal/textutil"
	"broadwayscore/internal/verify"
)

// Summary is the taxonomy of what happened to a batch. Every processed
// record lands in exactly one of Inserted, Duplicates, or Malformed;
// Flagged, UnknownOutlets, Mismatches, and Quarantined annotate inserted
// records rather than excluding them. Input files that could not be
// decoded at all are counted under Malformed without entering Processed.
type Summary struct {
	Processed      int `json:"processed"`
	Inserted       int `json:"inserted"`
	Duplicates     int `json:"duplicates"`
	Flagged        int `json:"flagged"`
	Malformed      int `json:"malformed"`
	UnknownOutlets int `json:"unknown_outlets"`
	Verified       int `json:"verified"`
	Mismatches     int `json:"mismatches"`
	Quarantined    int `json:"quarantined"`
}

// Driver wires the normalization, dedup, and verification stages over a
// store and runs raw record batches through them.
type Driver struct {
	cfg      *config.Config
	store    *store.Store
	norm     *normalize.Normalizer
	audit    *resolve.AuditLog
	detector *dedup.Detector
	logger   *slog.Logger
}

// NewDriver constructs a driver with the curated alias tables loaded.
func NewDriver(cfg *config.Config, st *store.Store, logger *slog.Logger) (*Driver, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	tables, err := aliases.Load()
	if err != nil {
		return nil, fmt.Errorf("load alias tables: %w", err)
	}
	norm := normalize.New(tables)
	audit := resolve.NewAuditLog()
	resolver := resolve.NewResolver(norm, cfg.Matching, audit, logger)
	detector := dedup.NewDetector(norm, cfg.Matching, resolver, logger)

	return &Driver{
		cfg:      cfg,
		store:    st,
		norm:     norm,
		audit:    audit,
		detector: detector,
		logger:   logger,
	}, nil
}

// Run ingests every record found at path, which may be a JSON file or a
// directory of them. Each file holds either one record or an array. The
// batch fails when the mismatch rate among verified reviews exceeds the
// configured threshold; an occasional bad record never aborts a run.
func (d *Driver) Run(ctx context.Context, path string) (*Summary, error) {
	records, failures, err := loadRecords(path)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, failure := range failures {
		summary.Malformed++
		d.logger.Warn("input file skipped",
			logging.String("file", failure.file),
			logging.Error(failure.err))
	}

	shows, err := d.store.ListShows(ctx)
	if err != nil {
		return nil, err
	}

	for i := range records {
		summary.Processed++
		if err := d.processRecord(ctx, &records[i], &shows, summary); err != nil {
			summary.Malformed++
			d.logger.Warn("record rejected",
				logging.Int("index", i),
				logging.Error(err))
		}
	}

	if err := d.store.RecordFuzzyCandidates(ctx, d.audit.Candidates()); err != nil {
		return nil, err
	}

	d.logger.Info("ingest complete",
		logging.Int("processed", summary.Processed),
		logging.Int("inserted", summary.Inserted),
		logging.Int("duplicates", summary.Duplicates),
		logging.Int("malformed", summary.Malformed),
		logging.Int("mismatches", summary.Mismatches),
		logging.Int("quarantined", summary.Quarantined))

	if summary.Verified > 0 {
		percent := summary.Mismatches * 100 / summary.Verified
		if percent > d.cfg.Verification.MismatchFailPercent {
			return summary, fmt.Errorf("mismatch rate %d%% exceeds %d%% threshold: batch looks misaligned",
				percent, d.cfg.Verification.MismatchFailPercent)
		}
	}
	return summary, nil
}

// FuzzyCandidates exposes the near-miss critic pairs collected during runs.
func (d *Driver) FuzzyCandidates() []resolve.Candidate {
	return d.audit.Candidates()
}

func (d *Driver) processRecord(ctx context.Context, record *RawRecord, shows *[]*catalog.Show, summary *Summary) error {
	if err := record.Validate(); err != nil {
		return err
	}

	show, err := d.resolveShow(ctx, record, shows)
	if err != nil {
		return err
	}

	review, err := d.buildReview(record, show)
	if err != nil {
		return err
	}
	if !d.norm.KnownOutlet(review.OutletID) {
		summary.UnknownOutlets++
		review.SourceTags = append(review.SourceTags, "unknown-outlet")
		d.logger.Warn("unrecognized outlet",
			logging.String("outlet", record.Outlet),
			logging.String("outlet_id", review.OutletID),
			logging.String("url", record.URL))
	}

	existing, err := d.store.ListReviews(ctx, show.ID)
	if err != nil {
		return err
	}
	res := d.detector.CheckReview(review, existing)
	if res.IsDuplicate {
		if !res.Weak {
			summary.Duplicates++
			d.logger.Info("duplicate review skipped",
				logging.String("rule", res.Rule),
				logging.String("reason", res.Reason),
				logging.String("show", show.Slug))
			return nil
		}
		summary.Flagged++
		review.SourceTags = append(review.SourceTags, "possible-duplicate")
	}

	if review.Text() != "" {
		verifier := verify.NewVerifier(d.norm, d.cfg.Verification, d.logger, verify.WithKnownShows(*shows))
		result := verifier.VerifyReview(review, show)
		summary.Verified++
		switch result.Verdict {
		case verify.VerdictProbableMismatch, verify.VerdictConfidentMismatch:
			summary.Mismatches++
			review.SourceTags = append(review.SourceTags, "verify-"+string(result.Verdict))
		}
		if verifier.QuarantineText(review, result) {
			summary.Quarantined++
		}
	}

	if _, err := d.store.InsertReview(ctx, review); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	summary.Inserted++
	return nil
}

// resolveShow matches the record's show against the catalog, creating it
// when nothing matches. Weak show matches still resolve to the existing
// show: a second production only counts as distinct when the revival
// window separates the opening dates, and that exception is applied inside
// the detector.
func (d *Driver) resolveShow(ctx context.Context, record *RawRecord, shows *[]*catalog.Show) (*catalog.Show, error) {
	opening, err := parseDate(record.OpeningDate)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(record.ShowTitle)
	normalized := d.norm.Title(title)
	candidate := &catalog.Show{
		Slug:        textutil.Slug(normalized),
		Title:       title,
		Venue:       strings.TrimSpace(record.Venue),
		OpeningDate: opening,
		Status:      catalog.ParseStatus(record.ShowStatus),
		People:      record.People,
	}

	res := d.detector.CheckShow(candidate, *shows)
	if res.IsDuplicate && res.Show != nil {
		return res.Show, nil
	}

	// A revival shares the normalized title, so its slug must be
	// disambiguated before the slug-keyed upsert: reusing the first
	// production's slug would silently merge two distinct runs.
	candidate.Slug = uniqueSlug(candidate.Slug, candidate.OpeningDate, *shows)

	created, err := d.store.UpsertShow(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("upsert show: %w", err)
	}
	*shows = append(*shows, created)
	d.logger.Info("show created",
		logging.String("slug", created.Slug),
		logging.String("title", created.Title))
	return created, nil
}

// uniqueSlug returns base when no cataloged show holds it, otherwise a
// variant extended with the opening year (the convention for revivals),
// falling back to a numeric suffix until the slug is free.
func uniqueSlug(base string, opening *time.Time, shows []*catalog.Show) string {
	taken := make(map[string]struct{}, len(shows))
	for _, show := range shows {
		if show != nil {
			taken[show.Slug] = struct{}{}
		}
	}
	if _, ok := taken[base]; !ok {
		return base
	}

	slug := base
	if opening != nil {
		slug = fmt.Sprintf("%s-%d", base, opening.Year())
		if _, ok := taken[slug]; !ok {
			return slug
		}
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", slug, i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

func (d *Driver) buildReview(record *RawRecord, show *catalog.Show) (*catalog.Review, error) {
	publish, err := parseDate(record.PublishDate)
	if err != nil {
		return nil, err
	}

	outletSource := record.Outlet
	if strings.TrimSpace(outletSource) == "" {
		outletSource = record.URL
	}

	return &catalog.Review{
		ShowID:      show.ID,
		OutletID:    d.norm.Outlet(outletSource),
		Outlet:      strings.TrimSpace(record.Outlet),
		CriticName:  strings.TrimSpace(record.CriticName),
		CriticSlug:  d.norm.Critic(record.CriticName),
		URL:         strings.TrimSpace(record.URL),
		PublishDate: publish,
		FullText:    record.FullText,
		Excerpts:    record.Excerpts,
		SourceTags:  record.SourceTags,
	}, nil
}

// decodeFailure is one input file that could not be read or parsed. The
// rest of the batch still runs; the failure is reported, not fatal.
type decodeFailure struct {
	file string
	err  error
}

func loadRecords(path string) ([]RawRecord, []decodeFailure, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("stat input: %w", err)
	}

	var files []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read input dir: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			files = append(files, filepath.Join(path, entry.Name()))
		}
		sort.Strings(files)
	} else {
		files = []string{path}
	}

	var records []RawRecord
	var failures []decodeFailure
	for _, file := range files {
		batch, err := decodeRecords(file)
		if err != nil {
			failures = append(failures, decodeFailure{file: filepath.Base(file), err: err})
			continue
		}
		records = append(records, batch...)
	}
	return records, failures, nil
}

func decodeRecords(path string) ([]RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var records []RawRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
		return records, nil
	}

	var record RawRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return []RawRecord{record}, nil
}
