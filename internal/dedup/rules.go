package dedup

import (
	"fmt"
	"strings"

	"broadwayscore/internal/catalog"
	"broadwayscore/internal/config"
)

// showKey caches the derived comparison keys for one show.
type showKey struct {
	show  *catalog.Show
	id    string
	slug  string
	title string
	venue string
}

// showRule is one named heuristic in the chain. Rules are evaluated in
// slice order; earlier rules are stronger evidence.
type showRule struct {
	name  string
	check func(cfg config.Matching, cand, ex showKey) (bool, string)
}

var showRules = []showRule{
	{name: "exact-identity", check: exactIdentity},
	{name: "slug-equal", check: slugEqual},
	{name: "title-equal", check: titleEqual},
	{name: "slug-containment", check: slugContainment},
	{name: "venue-title-prefix", check: venueTitlePrefix},
	{name: "title-containment", check: titleContainment},
}

func exactIdentity(_ config.Matching, cand, ex showKey) (bool, string) {
	if cand.id != "" && cand.id == ex.id {
		return true, fmt.Sprintf("identical show ID %s", cand.id)
	}
	if strings.EqualFold(strings.TrimSpace(cand.show.Title), strings.TrimSpace(ex.show.Title)) {
		return true, fmt.Sprintf("identical title %q", ex.show.Title)
	}
	return false, ""
}

func slugEqual(_ config.Matching, cand, ex showKey) (bool, string) {
	if cand.slug != "" && cand.slug == ex.slug {
		return true, fmt.Sprintf("identical slug %q", cand.slug)
	}
	return false, ""
}

func titleEqual(cfg config.Matching, cand, ex showKey) (bool, string) {
	if len(cand.title) > cfg.MinTitleLength && cand.title == ex.title {
		return true, fmt.Sprintf("normalized titles equal: %q", cand.title)
	}
	return false, ""
}

func slugContainment(cfg config.Matching, cand, ex showKey) (bool, string) {
	if len(cand.slug) > cfg.MinSlugLength && len(ex.slug) > cfg.MinSlugLength {
		if strings.Contains(cand.slug, ex.slug) || strings.Contains(ex.slug, cand.slug) {
			return true, fmt.Sprintf("slug containment: %q / %q", cand.slug, ex.slug)
		}
	}
	return false, ""
}

func venueTitlePrefix(cfg config.Matching, cand, ex showKey) (bool, string) {
	if cand.venue == "" || !strings.EqualFold(cand.venue, ex.venue) {
		return false, ""
	}
	n := cfg.TitlePrefixLength
	if len(cand.title) < n || len(ex.title) < n {
		return false, ""
	}
	if cand.title[:n] == ex.title[:n] {
		return true, fmt.Sprintf("same venue %q and title prefix %q", ex.venue, ex.title[:n])
	}
	return false, ""
}

func titleContainment(cfg config.Matching, cand, ex showKey) (bool, string) {
	if len(cand.title) > cfg.MinSlugLength && len(ex.title) > cfg.MinSlugLength {
		if strings.Contains(cand.title, ex.title) || strings.Contains(ex.title, cand.title) {
			return true, fmt.Sprintf("title containment: %q / %q", cand.title, ex.title)
		}
	}
	return false, ""
}
