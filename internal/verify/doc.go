// Package verify checks that a block of scraped article text actually
// concerns the show it is claimed to review.
//
// Signals are declared in one table (name, polarity, weight, detector) and
// evaluated uniformly, so each signal can be tested and audited on its
// own. The verdict is a pure decision table over the collected signals:
// an exact title hit is a confident match; a weaker positive with no
// negatives is probable; negatives grade from probable to confident
// mismatch as they accumulate.
//
// Only a confident mismatch with enough negative signals quarantines text,
// and quarantine moves the text aside rather than deleting it. It is
// always reversible.
package verify
