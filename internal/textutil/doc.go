// Package textutil provides low-level string helpers shared by the
// normalization and verification packages.
//
// Slug converts free text into the lowercase hyphenated form used for
// critic and outlet identifiers. SignificantWords tokenizes text while
// skipping articles so callers can compare titles by their distinctive
// leading words.
package textutil
