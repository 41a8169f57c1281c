package normalize

import (
	"net/url"
	"strings"

	"broadwayscore/internal/textutil"
)

// archiveHosts serve wrapped copies of other outlets' pages; the original
// URL is embedded in the path.
var archiveHosts = map[string]struct{}{
	"web.archive.org":                {},
	"archive.org":                    {},
	"archive.ph":                     {},
	"archive.today":                  {},
	"webcache.googleusercontent.com": {},
}

var strippedSubdomains = []string{"www.", "amp.", "m.", "mobile.", "edition."}

// Outlet maps a free-text outlet name or a URL/domain to a canonical
// outlet ID. Unmapped input degrades to a slug of itself; it never fails.
// Callers distinguish curated from unknown outlets via KnownOutlet.
func (n *Normalizer) Outlet(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if domain, ok := extractDomain(s); ok {
		if id, ok := n.lookupDomain(domain); ok {
			return id
		}
		// Degrade to the registrable label: "reviews.example.com" -> "example".
		labels := strings.Split(domain, ".")
		if len(labels) >= 2 {
			return textutil.Slug(labels[len(labels)-2])
		}
		return textutil.Slug(domain)
	}

	key := textutil.Slug(s)
	if n != nil && n.tables != nil {
		if id, ok := n.tables.OutletByKey(key); ok {
			return id
		}
	}
	return key
}

// KnownOutlet reports whether id is a curated outlet identifier.
func (n *Normalizer) KnownOutlet(id string) bool {
	return n != nil && n.tables != nil && n.tables.KnownOutlet(id)
}

func (n *Normalizer) lookupDomain(domain string) (string, bool) {
	if n == nil || n.tables == nil {
		return "", false
	}
	if id, ok := n.tables.OutletByDomain(domain); ok {
		return id, ok
	}
	// Walk up through subdomains: reviews.site.example.com -> example.com.
	labels := strings.Split(domain, ".")
	for i := 1; i < len(labels)-1; i++ {
		if id, ok := n.tables.OutletByDomain(strings.Join(labels[i:], ".")); ok {
			return id, ok
		}
	}
	return "", false
}

// extractDomain pulls the lowercase host out of a URL or bare domain
// string, unwrapping archive mirrors and stripping cosmetic subdomains.
func extractDomain(raw string) (string, bool) {
	if !looksLikeURL(raw) {
		return "", false
	}

	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", false
	}

	if _, ok := archiveHosts[host]; ok {
		if inner, ok := unwrapArchivePath(parsed.Path); ok {
			return extractDomain(inner)
		}
		return "", false
	}

	for _, prefix := range strippedSubdomains {
		if strings.HasPrefix(host, prefix) {
			host = host[len(prefix):]
			break
		}
	}
	if !strings.Contains(host, ".") {
		return "", false
	}
	return host, true
}

// unwrapArchivePath finds the original URL embedded in an archive path,
// e.g. "/web/20230915120000/https://www.nytimes.com/...".
func unwrapArchivePath(path string) (string, bool) {
	idx := strings.Index(path, "http")
	if idx < 0 {
		return "", false
	}
	inner := path[idx:]
	// url.Parse collapses "https://" to "https:/" inside a path.
	if !strings.Contains(inner, "://") {
		inner = strings.Replace(inner, ":/", "://", 1)
	}
	return inner, true
}

func looksLikeURL(raw string) bool {
	if strings.Contains(raw, "://") || strings.HasPrefix(raw, "www.") {
		return true
	}
	return strings.Contains(raw, ".") && !strings.Contains(raw, " ")
}
