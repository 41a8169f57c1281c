package normalize

import "broadwayscore/internal/aliases"

// Normalizer derives canonical keys from raw strings using the curated
// alias tables.
type Normalizer struct {
	tables *aliases.Tables
}

// New constructs a Normalizer over the given tables.
func New(tables *aliases.Tables) *Normalizer {
	return &Normalizer{tables: tables}
}

// Tables exposes the underlying alias tables for membership checks.
func (n *Normalizer) Tables() *aliases.Tables {
	return n.tables
}
