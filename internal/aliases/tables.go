package aliases

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"broadwayscore/internal/textutil"
)

//go:embed critic_aliases.toml
var criticAliasesTOML []byte

//go:embed outlets.toml
var outletsTOML []byte

//go:embed title_aliases.toml
var titleAliasesTOML []byte

// Outlet is one curated publication entry.
type Outlet struct {
	ID      string   `toml:"id"`
	Name    string   `toml:"name"`
	Domains []string `toml:"domains"`
	Aliases []string `toml:"aliases"`
}

type criticFile struct {
	Version int                 `toml:"version"`
	Critics map[string][]string `toml:"critics"`
}

type outletFile struct {
	Version int      `toml:"version"`
	Outlets []Outlet `toml:"outlet"`
}

type titleFile struct {
	Version int                 `toml:"version"`
	Titles  map[string][]string `toml:"titles"`
}

// Tables holds every curated mapping, indexed for lookup. Values are
// immutable after Load.
type Tables struct {
	CriticVersion int
	OutletVersion int
	TitleVersion  int

	criticByVariant map[string]string
	criticCanonical map[string]struct{}

	outletByKey    map[string]string
	outletByDomain map[string]string
	outletByID     map[string]Outlet

	titleByVariant map[string]string
}

// Load parses the embedded tables and builds the lookup indexes.
func Load() (*Tables, error) {
	var critics criticFile
	if err := toml.Unmarshal(criticAliasesTOML, &critics); err != nil {
		return nil, fmt.Errorf("parse critic aliases: %w", err)
	}
	var outlets outletFile
	if err := toml.Unmarshal(outletsTOML, &outlets); err != nil {
		return nil, fmt.Errorf("parse outlets: %w", err)
	}
	var titles titleFile
	if err := toml.Unmarshal(titleAliasesTOML, &titles); err != nil {
		return nil, fmt.Errorf("parse title aliases: %w", err)
	}

	t := &Tables{
		CriticVersion:   critics.Version,
		OutletVersion:   outlets.Version,
		TitleVersion:    titles.Version,
		criticByVariant: make(map[string]string),
		criticCanonical: make(map[string]struct{}, len(critics.Critics)),
		outletByKey:     make(map[string]string),
		outletByDomain:  make(map[string]string),
		outletByID:      make(map[string]Outlet, len(outlets.Outlets)),
		titleByVariant:  make(map[string]string),
	}

	for canonical, variants := range critics.Critics {
		canonical = textutil.Slug(canonical)
		if canonical == "" {
			continue
		}
		t.criticCanonical[canonical] = struct{}{}
		t.criticByVariant[canonical] = canonical
		for _, variant := range variants {
			slug := textutil.Slug(variant)
			if slug == "" {
				continue
			}
			if existing, ok := t.criticByVariant[slug]; ok && existing != canonical {
				return nil, fmt.Errorf("critic variant %q maps to both %q and %q", variant, existing, canonical)
			}
			t.criticByVariant[slug] = canonical
		}
	}

	for _, outlet := range outlets.Outlets {
		id := textutil.Slug(outlet.ID)
		if id == "" {
			return nil, fmt.Errorf("outlet %q has an empty id", outlet.Name)
		}
		if _, ok := t.outletByID[id]; ok {
			return nil, fmt.Errorf("outlet id %q appears twice", id)
		}
		outlet.ID = id
		t.outletByID[id] = outlet
		t.outletByKey[id] = id
		if key := textutil.Slug(outlet.Name); key != "" {
			t.outletByKey[key] = id
		}
		for _, alias := range outlet.Aliases {
			if key := textutil.Slug(alias); key != "" {
				t.outletByKey[key] = id
			}
		}
		for _, domain := range outlet.Domains {
			domain = strings.ToLower(strings.TrimSpace(domain))
			if domain == "" {
				continue
			}
			if existing, ok := t.outletByDomain[domain]; ok && existing != id {
				return nil, fmt.Errorf("domain %q maps to both %q and %q", domain, existing, id)
			}
			t.outletByDomain[domain] = id
		}
	}

	for canonical, variants := range titles.Titles {
		canonical = strings.ToLower(strings.TrimSpace(canonical))
		if canonical == "" {
			continue
		}
		for _, variant := range variants {
			variant = strings.ToLower(strings.TrimSpace(variant))
			if variant == "" {
				continue
			}
			t.titleByVariant[variant] = canonical
		}
	}

	return t, nil
}

// CanonicalCritic returns the canonical slug for a critic name variant.
func (t *Tables) CanonicalCritic(slug string) (string, bool) {
	canonical, ok := t.criticByVariant[slug]
	return canonical, ok
}

// KnownCritic reports whether slug is a canonical critic identity.
func (t *Tables) KnownCritic(slug string) bool {
	_, ok := t.criticCanonical[slug]
	return ok
}

// OutletByKey resolves a slugged outlet name or alias to an outlet ID.
func (t *Tables) OutletByKey(key string) (string, bool) {
	id, ok := t.outletByKey[key]
	return id, ok
}

// OutletByDomain resolves a bare lowercase domain to an outlet ID.
func (t *Tables) OutletByDomain(domain string) (string, bool) {
	id, ok := t.outletByDomain[domain]
	return id, ok
}

// KnownOutlet reports whether id is a curated outlet identifier.
func (t *Tables) KnownOutlet(id string) bool {
	_, ok := t.outletByID[id]
	return ok
}

// Outlet returns the curated entry for id.
func (t *Tables) Outlet(id string) (Outlet, bool) {
	outlet, ok := t.outletByID[id]
	return outlet, ok
}

// CanonicalTitle maps an already-normalized title variant to its canonical
// key. Both sides of the table are stored in normalized form.
func (t *Tables) CanonicalTitle(normalized string) (string, bool) {
	canonical, ok := t.titleByVariant[normalized]
	return canonical, ok
}
