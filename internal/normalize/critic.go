package normalize

import "broadwayscore/internal/textutil"

// Critic reduces a raw critic byline to its canonical slug. Spellings in
// the curated alias table collapse onto one identity; anything else keeps
// its slugified form.
func (n *Normalizer) Critic(raw string) string {
	slug := textutil.Slug(raw)
	if slug == "" {
		return ""
	}
	if n != nil && n.tables != nil {
		if canonical, ok := n.tables.CanonicalCritic(slug); ok {
			return canonical
		}
	}
	return slug
}

// KnownCritic reports whether slug is a curated critic identity.
func (n *Normalizer) KnownCritic(slug string) bool {
	return n != nil && n.tables != nil && n.tables.KnownCritic(slug)
}
