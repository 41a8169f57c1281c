// Package resolve decides whether two raw identifier strings name the same
// real-world entity.
//
// Matches come in four tiers, strongest first: exact (case-insensitive
// equality), alias (both reduce to one canonical slug via the curated
// tables), levenshtein (bounded edit distance between sufficiently long
// names), and none. Exact and alias matches are trusted automatically.
// Levenshtein matches are only ever surfaced on the audit log for human
// confirmation; nothing downstream may merge on their strength alone.
package resolve
