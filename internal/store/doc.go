// Package store persists the canonical catalog (shows, reviews, source
// scores, and fuzzy-match audit rows) in SQLite and exports the on-disk
// JSON dataset.
//
// The database is the working copy for batch runs. The exported JSON
// layout is the published dataset: one directory per show with per-outlet
// review files, one file per score source, and a combined scores file
// keyed by show ID. Export takes a file lock on the dataset directory so
// concurrent jobs never interleave writes.
//
// Schema changes land as new files under migrations/.
package store
