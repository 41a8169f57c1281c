// Package aliases loads the curated identity tables: critic name variants,
// outlet names and domains, and show title variants.
//
// The tables ship embedded in the binary as versioned TOML and are parsed
// once into an immutable Tables value that callers pass explicitly into
// the normalizer and resolver. Promotion of a fuzzy-match candidate into a
// table is a manual edit of the TOML (bump the version field); nothing in
// the pipeline mutates these tables at runtime.
package aliases
