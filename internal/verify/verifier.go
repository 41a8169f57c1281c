package verify

import (
	"log/slog"
	"strings"

	"broadwayscore/internal/catalog"
	"broadwayscore/internal/config"
	"broadwayscore/internal/logging"
	"broadwayscore/internal/normalize"
)

// Verdict classifies how well scraped text matches its claimed show.
type Verdict string

const (
	VerdictConfidentMatch    Verdict = "confident_match"
	VerdictProbableMatch     Verdict = "probable_match"
	VerdictProbableMismatch  Verdict = "probable_mismatch"
	VerdictConfidentMismatch Verdict = "confident_mismatch"
)

// Signal is one piece of evidence collected from the text.
type Signal struct {
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

// Result is computed fresh from current text and show metadata on every
// run; it is never persisted as state.
type Result struct {
	Verdict             Verdict  `json:"verdict"`
	Score               float64  `json:"score"`
	PositiveSignals     []Signal `json:"positive_signals"`
	NegativeSignals     []Signal `json:"negative_signals"`
	NegativeSignalCount int      `json:"negative_signal_count"`
}

func (r Result) hasSignal(name string) bool {
	for _, s := range r.PositiveSignals {
		if s.Name == name {
			return true
		}
	}
	for _, s := range r.NegativeSignals {
		if s.Name == name {
			return true
		}
	}
	return false
}

type signalContext struct {
	text   string
	show   *catalog.Show
	review *catalog.Review
}

// Verifier evaluates the signal table against article text.
type Verifier struct {
	norm       *normalize.Normalizer
	cfg        config.Verification
	knownShows []*catalog.Show
	logger     *slog.Logger
}

// Option customizes verifier construction.
type Option func(*Verifier)

// WithKnownShows supplies the show collection scanned by the
// different-show negative signal.
func WithKnownShows(shows []*catalog.Show) Option {
	return func(v *Verifier) {
		v.knownShows = shows
	}
}

// NewVerifier constructs a verifier.
func NewVerifier(norm *normalize.Normalizer, cfg config.Verification, logger *slog.Logger, opts ...Option) *Verifier {
	if logger == nil {
		logger = logging.NewNop()
	}
	v := &Verifier{norm: norm, cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify checks free text against a show with no review context. Outlet
// and publish-date signals require a review; use VerifyReview for those.
func (v *Verifier) Verify(text string, show *catalog.Show) Result {
	return v.run(&signalContext{
		text: strings.ToLower(text),
		show: show,
	})
}

// VerifyReview checks a review's text (full text or excerpts) against the
// show, with the review's outlet and publish date contributing signals.
func (v *Verifier) VerifyReview(review *catalog.Review, show *catalog.Show) Result {
	return v.run(&signalContext{
		text:   strings.ToLower(review.Text()),
		show:   show,
		review: review,
	})
}

func (v *Verifier) run(sc *signalContext) Result {
	var res Result
	if strings.TrimSpace(sc.text) == "" || sc.show == nil {
		res.Verdict = VerdictProbableMismatch
		return res
	}

	for _, def := range signalTable {
		hit, detail := def.detect(v, sc)
		if !hit {
			continue
		}
		signal := Signal{Name: def.name, Detail: detail}
		switch def.polarity {
		case positive:
			res.PositiveSignals = append(res.PositiveSignals, signal)
			res.Score += def.weight
		case negative:
			res.NegativeSignals = append(res.NegativeSignals, signal)
			res.Score -= def.weight
		}
	}
	res.NegativeSignalCount = len(res.NegativeSignals)
	res.Verdict = v.verdict(res)

	v.logger.Debug("content verification",
		logging.String("show", sc.show.Title),
		logging.String("verdict", string(res.Verdict)),
		logging.Float64("score", res.Score),
		logging.Int("positive_signals", len(res.PositiveSignals)),
		logging.Int("negative_signals", res.NegativeSignalCount))

	return res
}

// verdict is the decision table over collected signals.
func (v *Verifier) verdict(res Result) Verdict {
	switch {
	case res.hasSignal(signalExactTitle):
		return VerdictConfidentMatch
	case res.hasSignal(signalOtherShow) || res.NegativeSignalCount >= 2:
		return VerdictConfidentMismatch
	case res.NegativeSignalCount >= 1:
		return VerdictProbableMismatch
	case len(res.PositiveSignals) >= 1:
		return VerdictProbableMatch
	default:
		// Nothing ties the text to the show; report it for review without
		// treating silence as a confident contradiction.
		return VerdictProbableMismatch
	}
}
