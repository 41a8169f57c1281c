// Package catalog defines the Show and Review records the rest of the
// pipeline reads and annotates.
//
// Records are created and deleted by the ingestion layer; the matching,
// verification, and scoring packages only classify and annotate them.
// Normalized keys (title keys, critic slugs, outlet IDs) are derived
// projections computed by the normalize package and are never treated as
// authoritative storage.
package catalog
