package docs

import (
	"fmt"
	"net/http"
	"strings"
)

// reservedIDPrefix marks path segments owned by the HTTP surface, such as
// the _nav route next to page slugs.
const reservedIDPrefix = "_"

// Store is the immutable documentation content tree. It is built once and
// only read afterwards; callers must not modify values reachable from it.
type Store struct {
	versions []Version
	byName   map[string]int
	latest   int
}

// NewStore validates versions and builds the lookup indexes.
func NewStore(versions []Version) (*Store, error) {
	s := &Store{
		versions: versions,
		byName:   make(map[string]int, len(versions)),
		latest:   -1,
	}

	for i := range versions {
		v := &versions[i]
		if v.Version == "" {
			return nil, fmt.Errorf("%w: version #%d has no identifier", ErrInvalidContent, i)
		}
		if _, dup := s.byName[v.Version]; dup {
			return nil, fmt.Errorf("%w: duplicate version %s", ErrInvalidContent, v.Version)
		}
		s.byName[v.Version] = i

		if v.Latest {
			if s.latest != -1 {
				return nil, fmt.Errorf("%w: versions %s and %s are both flagged latest",
					ErrInvalidContent, versions[s.latest].Version, v.Version)
			}
			s.latest = i
		}

		if err := validateVersion(v); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Len returns the number of versions.
func (s *Store) Len() int {
	return len(s.versions)
}

// Versions returns the version identifiers in load order.
func (s *Store) Versions() []string {
	names := make([]string, 0, len(s.versions))
	for _, v := range s.versions {
		names = append(names, v.Version)
	}
	return names
}

// HasVersion reports whether version exists.
func (s *Store) HasVersion(version string) bool {
	_, ok := s.byName[version]
	return ok
}

// Version returns the named version. The result is shared with every other
// reader of the store and must not be modified.
func (s *Store) Version(version string) (*Version, bool) {
	i, ok := s.byName[version]
	if !ok {
		return nil, false
	}
	return &s.versions[i], true
}

// Default returns the version used when none is requested: the one flagged
// latest, else the first entry. Returns false for an empty store.
func (s *Store) Default() (*Version, bool) {
	if s.latest >= 0 {
		return &s.versions[s.latest], true
	}
	if len(s.versions) > 0 {
		return &s.versions[0], true
	}
	return nil, false
}

// PageCount returns the total number of pages across all versions and tabs.
func (s *Store) PageCount() int {
	total := 0
	for _, v := range s.versions {
		for _, categories := range v.Tabs {
			for _, c := range categories {
				total += len(c.Pages)
			}
		}
	}
	return total
}

func validateVersion(v *Version) error {
	for tab, categories := range v.Tabs {
		if _, ok := ParseTab(string(tab)); !ok {
			return fmt.Errorf("%w: version %s has unknown tab %q", ErrInvalidContent, v.Version, tab)
		}

		seen := make(map[string]struct{})
		for _, c := range categories {
			for i := range c.Pages {
				p := &c.Pages[i]
				if p.ID == "" {
					return fmt.Errorf("%w: %s/%s category %q has a page without id",
						ErrInvalidContent, v.Version, tab, c.Title)
				}
				if strings.HasPrefix(p.ID, reservedIDPrefix) {
					return fmt.Errorf("%w: page id %s in %s/%s uses the reserved prefix %q",
						ErrInvalidContent, p.ID, v.Version, tab, reservedIDPrefix)
				}
				if _, dup := seen[p.ID]; dup {
					return fmt.Errorf("%w: duplicate page id %s in %s/%s", ErrInvalidContent, p.ID, v.Version, tab)
				}
				seen[p.ID] = struct{}{}

				if err := validatePage(p); err != nil {
					return fmt.Errorf("%s/%s/%s: %w", v.Version, tab, p.ID, err)
				}
			}
		}
	}
	return nil
}

func validatePage(p *Page) error {
	switch p.Status {
	case StatusDev, StatusProduction:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidContent, p.Status)
	}

	for i := range p.Content {
		if err := validateBlock(&p.Content[i]); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}
	return nil
}

func validateBlock(b *Block) error {
	switch b.Kind {
	case BlockText:
		return nil
	case BlockAlert:
		switch b.Variant {
		case "", AlertInfo, AlertWarning, AlertDanger, AlertSuccess:
			return nil
		}
		return fmt.Errorf("%w: unknown alert variant %q", ErrInvalidContent, b.Variant)
	case BlockCode:
		if b.Code == nil {
			return fmt.Errorf("%w: code block without snippet", ErrInvalidContent)
		}
		return nil
	case BlockEnum:
		if b.Enum == nil {
			return fmt.Errorf("%w: enum block without table", ErrInvalidContent)
		}
		return nil
	case BlockEndpoint:
		if b.Endpoint == nil {
			return fmt.Errorf("%w: endpoint block without descriptor", ErrInvalidContent)
		}
		switch b.Endpoint.Method {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
			return nil
		}
		return fmt.Errorf("%w: unsupported endpoint method %q", ErrInvalidContent, b.Endpoint.Method)
	default:
		return fmt.Errorf("%w: unknown block type %q", ErrInvalidContent, b.Kind)
	}
}
