package dedup

import (
	"log/slog"
	"strings"
	"time"

	"broadwayscore/internal/catalog"
	"broadwayscore/internal/config"
	"broadwayscore/internal/logging"
	"broadwayscore/internal/normalize"
	"broadwayscore/internal/resolve"
)

// Result is the detector's verdict. Consumed immediately by the caller to
// decide insert, skip, or flag-for-review; never persisted.
type Result struct {
	IsDuplicate bool
	// Rule names the heuristic that fired, for audit trails.
	Rule   string
	Reason string
	// Weak marks the low-confidence unbylined review check; weak results
	// should be flagged for review rather than silently dropped.
	Weak bool

	Show   *catalog.Show
	Review *catalog.Review
}

// Detector classifies candidates against existing records.
type Detector struct {
	norm     *normalize.Normalizer
	cfg      config.Matching
	resolver *resolve.Resolver
	logger   *slog.Logger
}

// NewDetector constructs a detector. The resolver is optional; when
// present, near-miss critic names are surfaced through its audit log.
func NewDetector(norm *normalize.Normalizer, cfg config.Matching, resolver *resolve.Resolver, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Detector{norm: norm, cfg: cfg, resolver: resolver, logger: logger}
}

// CheckShow reports whether candidate duplicates a show in existing.
// Rules are tried strongest-first across the whole collection, so the
// returned match is always the strongest available, not the first show in
// slice order that matches anything.
func (d *Detector) CheckShow(candidate *catalog.Show, existing []*catalog.Show) Result {
	cand := d.showKey(candidate)

	keys := make([]showKey, 0, len(existing))
	for _, show := range existing {
		if show == nil || show == candidate {
			continue
		}
		key := d.showKey(show)
		if d.isRevivalPair(cand, key) {
			d.logger.Debug("revival exception: same title, separate runs",
				logging.String("title", key.title),
				logging.String("candidate_id", cand.id),
				logging.String("existing_id", key.id))
			continue
		}
		keys = append(keys, key)
	}

	for _, rule := range showRules {
		for _, key := range keys {
			hit, reason := rule.check(d.cfg, cand, key)
			if !hit {
				continue
			}
			d.logger.Info("duplicate show detected",
				logging.String("rule", rule.name),
				logging.String("reason", reason),
				logging.String("candidate_title", candidate.Title),
				logging.String("matched_id", key.id))
			return Result{
				IsDuplicate: true,
				Rule:        rule.name,
				Reason:      reason,
				Show:        key.show,
			}
		}
	}

	return Result{Reason: "no duplicate rule matched"}
}

// CheckReview reports whether candidate duplicates a review of the same
// show. The strong check keys on (show, outlet, critic slug); the weak
// check flags unbylined pieces from the same outlet.
func (d *Detector) CheckReview(candidate *catalog.Review, existing []*catalog.Review) Result {
	candOutlet := d.reviewOutlet(candidate)
	candSlug := d.reviewCriticSlug(candidate)

	for _, review := range existing {
		if review == nil || review == candidate || review.ShowID != candidate.ShowID {
			continue
		}
		if candOutlet == "" || d.reviewOutlet(review) != candOutlet {
			continue
		}
		if candSlug != "" && candSlug == d.reviewCriticSlug(review) {
			reason := "same show, outlet, and critic: " + candSlug
			d.logger.Info("duplicate review detected",
				logging.String("rule", "review-key"),
				logging.String("reason", reason),
				logging.String("outlet", candOutlet))
			return Result{
				IsDuplicate: true,
				Rule:        "review-key",
				Reason:      reason,
				Review:      review,
			}
		}
	}

	// Wire pieces and roundup excerpts often carry no byline; the same
	// outlet twice with no critic on either side is probably a duplicate,
	// but only probably.
	if candSlug == "" {
		for _, review := range existing {
			if review == nil || review == candidate || review.ShowID != candidate.ShowID {
				continue
			}
			if candOutlet != "" && d.reviewOutlet(review) == candOutlet && d.reviewCriticSlug(review) == "" {
				reason := "same show and outlet, no byline on either record"
				d.logger.Info("possible duplicate review",
					logging.String("rule", "review-outlet-unbylined"),
					logging.String("reason", reason),
					logging.String("outlet", candOutlet))
				return Result{
					IsDuplicate: true,
					Weak:        true,
					Rule:        "review-outlet-unbylined",
					Reason:      reason,
					Review:      review,
				}
			}
		}
	}

	// Near-miss critic names are audit material, never merges.
	if d.resolver != nil && candidate.HasByline() {
		for _, review := range existing {
			if review == nil || review == candidate || review.ShowID != candidate.ShowID {
				continue
			}
			if !review.HasByline() || d.reviewOutlet(review) != candOutlet {
				continue
			}
			if m := d.resolver.Resolve(candidate.CriticName, review.CriticName); m.Type == resolve.MatchLevenshtein {
				d.logger.Warn("fuzzy critic match left for review",
					logging.String("candidate_critic", candidate.CriticName),
					logging.String("existing_critic", review.CriticName),
					logging.Int("distance", m.Distance))
			}
		}
	}

	return Result{Reason: "no duplicate rule matched"}
}

func (d *Detector) showKey(show *catalog.Show) showKey {
	return showKey{
		show:  show,
		id:    show.ID,
		slug:  strings.ToLower(strings.TrimSpace(show.Slug)),
		title: d.norm.Title(show.Title),
		venue: strings.TrimSpace(show.Venue),
	}
}

// isRevivalPair reports whether two same-titled shows are separate
// productions: both have opening dates, far enough apart to be distinct
// runs rather than one run re-announced.
func (d *Detector) isRevivalPair(a, b showKey) bool {
	if a.title == "" || a.title != b.title {
		return false
	}
	if a.show.OpeningDate == nil || b.show.OpeningDate == nil {
		return false
	}
	gap := a.show.OpeningDate.Sub(*b.show.OpeningDate)
	if gap < 0 {
		gap = -gap
	}
	return gap >= time.Duration(d.cfg.RevivalWindowDays)*24*time.Hour
}

func (d *Detector) reviewOutlet(review *catalog.Review) string {
	if review.OutletID != "" {
		return review.OutletID
	}
	return d.norm.Outlet(review.Outlet)
}

func (d *Detector) reviewCriticSlug(review *catalog.Review) string {
	if review.CriticSlug != "" {
		return review.CriticSlug
	}
	return d.norm.Critic(review.CriticName)
}
