package verify

import (
	"time"

	"broadwayscore/internal/catalog"
	"broadwayscore/internal/logging"
)

// ShouldQuarantine reports whether a verification result is damning enough
// to move the review's text aside: a confident mismatch backed by at least
// the configured number of negative signals. A single strong signal is
// reported but never auto-remediated.
func (v *Verifier) ShouldQuarantine(res Result) bool {
	return res.Verdict == VerdictConfidentMismatch &&
		res.NegativeSignalCount >= v.cfg.QuarantineMinSignals
}

// QuarantineText moves the review's full text into WrongFullText and
// records the triggering signals. Returns false when the result does not
// warrant quarantine or there is no text to move. The operation is
// reversible via RestoreText; nothing is deleted.
func (v *Verifier) QuarantineText(review *catalog.Review, res Result) bool {
	if review == nil || review.FullText == "" || !v.ShouldQuarantine(res) {
		return false
	}

	signals := make([]string, 0, len(res.NegativeSignals))
	for _, s := range res.NegativeSignals {
		signals = append(signals, s.Name+": "+s.Detail)
	}

	review.WrongFullText = review.FullText
	review.FullText = ""
	review.Quarantine = &catalog.QuarantineRecord{
		Signals: signals,
		Score:   res.Score,
		At:      time.Now().UTC(),
	}

	v.logger.Warn("review text quarantined",
		logging.String("review_id", review.ID),
		logging.String("show_id", review.ShowID),
		logging.Int("negative_signals", res.NegativeSignalCount),
		logging.Float64("score", res.Score))

	return true
}

// RestoreText reverses a quarantine, moving the preserved text back into
// the primary field. Returns false when there is nothing to restore.
func RestoreText(review *catalog.Review) bool {
	if review == nil || review.WrongFullText == "" {
		return false
	}
	review.FullText = review.WrongFullText
	review.WrongFullText = ""
	review.Quarantine = nil
	return true
}
