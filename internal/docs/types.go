// Package docs provides the documentation content tree, the resolver that maps
// URL segments to pages, and substring search over visible pages.
package docs

import (
	"fmt"
	"slices"
)

// Status controls where a page may be shown.
type Status string

const (
	// StatusDev pages are only visible in development mode.
	StatusDev Status = "DEV"
	// StatusProduction pages are always visible.
	StatusProduction Status = "PRODUCTION"
)

// TabID identifies one of the fixed top-level documentation sections.
type TabID string

const (
	TabGuides       TabID = "guides"
	TabAPIReference TabID = "api-reference"
	TabSDKs         TabID = "sdks"
	TabChangelog    TabID = "changelog"
)

// DefaultTab is used when the requested tab is absent or unknown.
const DefaultTab = TabGuides

//nolint:gochecknoglobals // Canonical tab order, never mutated.
var tabOrder = []TabID{TabGuides, TabAPIReference, TabSDKs, TabChangelog}

//nolint:gochecknoglobals // Display labels, never mutated.
var tabLabels = map[TabID]string{
	TabGuides:       "Guides",
	TabAPIReference: "API Reference",
	TabSDKs:         "SDKs",
	TabChangelog:    "Changelog",
}

// Tabs returns all tab ids in canonical display order.
func Tabs() []TabID {
	return slices.Clone(tabOrder)
}

// ParseTab returns the TabID named by s and whether it is a known tab.
func ParseTab(s string) (TabID, bool) {
	tab := TabID(s)
	if _, ok := tabLabels[tab]; ok {
		return tab, true
	}
	return "", false
}

// Label returns the human readable tab name.
func (t TabID) Label() string {
	return tabLabels[t]
}

// BlockKind discriminates the ContentBlock union.
type BlockKind string

const (
	BlockText     BlockKind = "text"
	BlockCode     BlockKind = "code"
	BlockEnum     BlockKind = "enum"
	BlockAlert    BlockKind = "alert"
	BlockEndpoint BlockKind = "endpoint"
)

// AlertVariant is the severity of an alert block.
type AlertVariant string

const (
	AlertInfo    AlertVariant = "info"
	AlertWarning AlertVariant = "warning"
	AlertDanger  AlertVariant = "danger"
	AlertSuccess AlertVariant = "success"
)

// CodeSnippet is a code sample, optionally runnable with a canned output.
type CodeSnippet struct {
	Language string `yaml:"language" json:"language"`
	Body     string `yaml:"body" json:"body"`
	Runnable bool   `yaml:"runnable,omitempty" json:"runnable,omitempty"`
	Output   string `yaml:"output,omitempty" json:"output,omitempty"`
}

// EnumValue is one row of an enumeration table.
type EnumValue struct {
	Name        string `yaml:"name" json:"name"`
	Value       string `yaml:"value" json:"value"`
	Description string `yaml:"description" json:"description"`
}

// Enum is an enumeration table.
type Enum struct {
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Values      []EnumValue `yaml:"values" json:"values"`
}

// Endpoint describes an HTTP endpoint badge.
type Endpoint struct {
	Method      string `yaml:"method" json:"method"`
	Path        string `yaml:"path" json:"path"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Block is one renderable unit of page content. Exactly one payload matching
// Kind is set; text and alert blocks carry Content.
type Block struct {
	Kind     BlockKind    `yaml:"type" json:"type"`
	Content  string       `yaml:"content,omitempty" json:"content,omitempty"`
	Variant  AlertVariant `yaml:"variant,omitempty" json:"variant,omitempty"`
	Code     *CodeSnippet `yaml:"code,omitempty" json:"code,omitempty"`
	Enum     *Enum        `yaml:"enum,omitempty" json:"enum,omitempty"`
	Endpoint *Endpoint    `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
}

// Page is the addressable unit of documentation.
type Page struct {
	// ID is the URL slug, unique within a (version, tab) pair.
	ID          string  `yaml:"id" json:"id"`
	Title       string  `yaml:"title" json:"title"`
	Description string  `yaml:"description" json:"description"`
	Status      Status  `yaml:"status" json:"status"`
	Content     []Block `yaml:"content" json:"content"`
	// Hidden pages are left out of the sidebar but remain addressable.
	Hidden bool `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// IsDev reports whether the page is restricted to development mode.
func (p *Page) IsDev() bool {
	return p.Status == StatusDev
}

// Snippet returns the code snippet of the block at index.
func (p *Page) Snippet(index int) (*CodeSnippet, error) {
	if index < 0 || index >= len(p.Content) {
		return nil, fmt.Errorf("%w: %s has %d blocks, index %d", ErrBlockNotFound, p.ID, len(p.Content), index)
	}
	block := &p.Content[index]
	if block.Kind != BlockCode || block.Code == nil {
		return nil, fmt.Errorf("%w: %s block %d is %s", ErrBlockNotFound, p.ID, index, block.Kind)
	}
	return block.Code, nil
}

// Category is a named group of pages within a tab.
type Category struct {
	Title string `yaml:"title" json:"title"`
	Pages []Page `yaml:"pages" json:"pages"`
}

// Version is a documentation release.
type Version struct {
	Version string               `yaml:"version" json:"version"`
	Latest  bool                 `yaml:"latest" json:"latest"`
	Tabs    map[TabID][]Category `yaml:"tabs" json:"tabs"`
}
