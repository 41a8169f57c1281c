// Package dedup decides whether a candidate show or review duplicates one
// already in the collection.
//
// Show checks run as an ordered chain of named rules, strongest first; the
// first rule to fire wins and its name is recorded on the result so false
// positives can be traced. Before any rule runs, the revival exception
// removes pairs whose opening dates are far enough apart to be separate
// productions of the same title.
//
// Review duplicates key on (show, outlet, critic slug), with a weaker
// flag-only check for unbylined pieces from the same outlet. A fuzzy
// critic-name match alone never marks a duplicate; it is surfaced to the
// resolver's audit log instead.
//
// The detector only classifies. It never mutates its inputs and never
// merges silently.
package dedup
