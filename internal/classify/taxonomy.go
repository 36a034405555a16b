// Package classify assigns research themes to papers with deterministic
// keyword heuristics. Nothing in this package performs I/O: callers pass a
// snapshot of the current themes and persist the decisions themselves.
package classify

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultTaxonomyYAML []byte

// Bucket is a named group of terms.
type Bucket struct {
	Name  string   `yaml:"name"`
	Terms []string `yaml:"terms"`
}

// KeywordTheme maps a single term to a specific theme name.
type KeywordTheme struct {
	Term  string `yaml:"term"`
	Theme string `yaml:"theme"`
}

// ConsolidatedTheme is one entry of the fixed consolidation taxonomy.
type ConsolidatedTheme struct {
	Name  string   `yaml:"name"`
	Color string   `yaml:"color"`
	Terms []string `yaml:"terms"`
}

// Taxonomy holds every dictionary the classifier consults.
type Taxonomy struct {
	Palette            []string            `yaml:"palette"`
	GenericAreaMarkers []string            `yaml:"generic_area_markers"`
	CatchAll           Bucket              `yaml:"catch_all"`
	Buckets            []Bucket            `yaml:"buckets"`
	KeywordThemes      []KeywordTheme      `yaml:"keyword_themes"`
	BroadThemes        []Bucket            `yaml:"broad_themes"`
	Consolidated       []ConsolidatedTheme `yaml:"consolidated"`
}

// ParseTaxonomy decodes a taxonomy document and checks it is usable.
func ParseTaxonomy(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}
	if len(t.Palette) == 0 {
		return nil, fmt.Errorf("taxonomy palette is empty")
	}
	if t.CatchAll.Name == "" {
		return nil, fmt.Errorf("taxonomy catch_all name is required")
	}
	if len(t.Consolidated) == 0 {
		return nil, fmt.Errorf("taxonomy consolidated themes are required")
	}
	return &t, nil
}

var (
	defaultOnce     sync.Once
	defaultTaxonomy *Taxonomy
)

// Default returns the embedded taxonomy. It panics if the embedded document is invalid.
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		t, err := ParseTaxonomy(defaultTaxonomyYAML)
		if err != nil {
			panic(err)
		}
		defaultTaxonomy = t
	})
	return defaultTaxonomy
}

// ColorFor returns the palette color for the n-th theme.
func (t *Taxonomy) ColorFor(n int) string {
	if n < 0 {
		n = -n
	}
	return t.Palette[n%len(t.Palette)]
}
