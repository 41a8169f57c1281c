// Package normalize maps raw scraped identifiers onto canonical keys.
//
// Titles reduce to lowercase keys with subtitles, parentheticals, leading
// articles, and marketing suffixes stripped; the reduction is idempotent.
// Critic names slugify and pass through the curated alias table. Outlet
// names and URLs resolve against the curated domain table, unwrapping
// archive mirrors and stripping subdomains; unmapped input degrades to a
// slug rather than failing, and KnownOutlet lets callers detect the
// unknown case.
//
// Every function here is pure. Tables are supplied at construction and
// never mutated.
package normalize
