// Package score blends per-source show scores into one published 0-100
// number and its designation tier.
//
// The discourse source carries a fixed configured weight whenever another
// source is present; the remainder splits between the critic-consensus and
// crowd sources in proportion to their sample sizes, so the source backed
// by more observations dominates. Absent sources are excluded from both
// the numerator and the weight denominator; they are never zero-filled.
// With no sources at all the combined score is nil, not zero.
package score
