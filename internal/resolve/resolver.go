package resolve

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"

	"broadwayscore/internal/config"
	"broadwayscore/internal/logging"
	"broadwayscore/internal/normalize"
)

// MatchType classifies how two identifiers were matched.
type MatchType string

const (
	MatchExact       MatchType = "exact"
	MatchAlias       MatchType = "alias"
	MatchLevenshtein MatchType = "levenshtein"
	MatchNone        MatchType = "none"
)

// Match is the result of resolving two identifiers. Distance is only
// meaningful for levenshtein matches.
type Match struct {
	Type     MatchType
	Distance int
}

// Trusted reports whether the match may drive an automatic merge.
// Levenshtein matches are candidates for human review, never merges.
func (m Match) Trusted() bool {
	return m.Type == MatchExact || m.Type == MatchAlias
}

// Resolver applies the match tiers with thresholds from configuration.
type Resolver struct {
	norm        *normalize.Normalizer
	maxDistance int
	minLength   int
	audit       *AuditLog
	logger      *slog.Logger
}

// NewResolver constructs a resolver. The audit log may be nil when the
// caller does not collect fuzzy candidates.
func NewResolver(norm *normalize.Normalizer, cfg config.Matching, audit *AuditLog, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		norm:        norm,
		maxDistance: cfg.MaxEditDistance,
		minLength:   cfg.MinFuzzyLength,
		audit:       audit,
		logger:      logger,
	}
}

// Resolve classifies the relationship between two raw identifier strings,
// typically critic bylines.
func (r *Resolver) Resolve(a, b string) Match {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return Match{Type: MatchNone}
	}

	if strings.EqualFold(a, b) {
		return Match{Type: MatchExact}
	}

	slugA := r.norm.Critic(a)
	slugB := r.norm.Critic(b)
	if slugA != "" && slugA == slugB {
		return Match{Type: MatchAlias}
	}

	// Edit distance is consulted only for names long enough to make a
	// small distance meaningful; short names collide constantly.
	if utf8.RuneCountInString(a) > r.minLength && utf8.RuneCountInString(b) > r.minLength {
		distance := matchr.Levenshtein(strings.ToLower(a), strings.ToLower(b))
		if distance <= r.maxDistance {
			candidate := Candidate{
				Left:      a,
				Right:     b,
				LeftSlug:  slugA,
				RightSlug: slugB,
				Distance:  distance,
			}
			if r.audit != nil {
				r.audit.Record(candidate)
			}
			r.logger.Info("fuzzy identity candidate",
				logging.String("left", a),
				logging.String("right", b),
				logging.Int("distance", distance))
			return Match{Type: MatchLevenshtein, Distance: distance}
		}
	}

	return Match{Type: MatchNone}
}
