// Package ingest runs the batch pipeline over raw scraped review records:
// normalize names and titles, resolve shows against the catalog, reject or
// flag duplicates, verify that scraped text belongs to the claimed show,
// and persist what survives.
//
// The pipeline is deliberately conservative. Strong duplicates are skipped
// with a reason, weak ones are inserted but tagged for review, and text is
// quarantined only on a confident mismatch with enough negative signals.
// One malformed record never aborts a batch; it is counted and logged.
package ingest
