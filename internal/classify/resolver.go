package classify

import (
	"fmt"
	"sort"
	"strings"

	"research-portfolio/internal/textnorm"
)

// Fallback selects what happens when no existing theme scores well enough.
type Fallback int

const (
	// FallbackFirstTheme picks the lowest-id existing theme.
	FallbackFirstTheme Fallback = iota
	// FallbackCreateArea creates a theme named after the research area.
	FallbackCreateArea
	// FallbackBroadThemes maps onto the broad theme table, then the catch-all theme.
	FallbackBroadThemes
)

// Reason explains how a Decision was reached.
type Reason string

const (
	ReasonScored    Reason = "scored"
	ReasonNameMatch Reason = "name_match"
	ReasonBroad     Reason = "broad_theme"
	ReasonCatchAll  Reason = "catch_all"
	ReasonArea      Reason = "research_area"
	ReasonFirst     Reason = "first_theme"
)

// NewTheme describes a theme the caller should create.
type NewTheme struct {
	Name        string
	Description string
	Color       string
}

// Decision is the outcome of resolving a research area to a theme.
// Exactly one of ThemeID (non-zero) or Create is set.
type Decision struct {
	ThemeID int64
	Create  *NewTheme
	Area    string
	Score   float64
	Reason  Reason
}

// ResolveRequest carries the classifier inputs for one paper.
type ResolveRequest struct {
	Area           string
	Keywords       []string
	AuthorKeywords []string
	Mode           MatchMode
	// RefineGenericArea replaces empty or generic areas with a keyword-derived theme name.
	RefineGenericArea bool
	Fallback          Fallback
}

// Resolver resolves research areas against the current theme set.
type Resolver struct {
	tax *Taxonomy
}

// NewResolver creates a Resolver over the given taxonomy.
func NewResolver(tax *Taxonomy) *Resolver {
	if tax == nil {
		tax = Default()
	}
	return &Resolver{tax: tax}
}

// Taxonomy returns the dictionaries the resolver uses.
func (r *Resolver) Taxonomy() *Taxonomy {
	return r.tax
}

// Resolve picks or proposes a theme for req. themes is a snapshot of every stored theme.
func (r *Resolver) Resolve(req ResolveRequest, themes []Theme) Decision {
	themes = byID(themes)
	area := strings.TrimSpace(req.Area)

	if req.RefineGenericArea && r.IsGenericArea(area) {
		if refined, ok := r.RefineArea(req.AuthorKeywords, req.Keywords); ok {
			area = refined
		}
	}

	if best, score, ok := Best(themes, area, req.Keywords); ok && req.Mode.Accepts(score) {
		return Decision{ThemeID: best.ID, Area: area, Score: score, Reason: ReasonScored}
	}

	switch req.Fallback {
	case FallbackCreateArea:
		if area == "" {
			return r.catchAll(themes, area)
		}
		if existing, ok := findByName(themes, area); ok {
			return Decision{ThemeID: existing.ID, Area: area, Reason: ReasonArea}
		}
		return Decision{Create: r.newTheme(area, req.Keywords, len(themes)), Area: area, Reason: ReasonArea}

	case FallbackBroadThemes:
		if broad, ok := r.BroadThemeFor(area, req.Keywords); ok {
			if existing, found := findByName(themes, broad.Name); found {
				return Decision{ThemeID: existing.ID, Area: area, Reason: ReasonBroad}
			}
			return Decision{Create: r.newTheme(broad.Name, broad.Terms, len(themes)), Area: area, Reason: ReasonBroad}
		}
		return r.catchAll(themes, area)

	default:
		if len(themes) == 0 {
			return r.catchAll(themes, area)
		}
		return Decision{ThemeID: themes[0].ID, Area: area, Reason: ReasonFirst}
	}
}

// ResolveByName matches area against theme names in either direction and falls
// back to the lowest-id theme. It never proposes a new theme; ok is false only
// when themes is empty.
func (r *Resolver) ResolveByName(area string, themes []Theme) (Decision, bool) {
	themes = byID(themes)
	if len(themes) == 0 {
		return Decision{}, false
	}
	if area = strings.TrimSpace(area); area != "" {
		folded := textnorm.Fold(area)
		for _, t := range themes {
			name := textnorm.Fold(t.Name)
			if strings.Contains(name, folded) || strings.Contains(folded, name) {
				return Decision{ThemeID: t.ID, Area: area, Reason: ReasonNameMatch}, true
			}
		}
	}
	return Decision{ThemeID: themes[0].ID, Area: area, Reason: ReasonFirst}, true
}

// IsGenericArea reports whether area is empty or too broad to classify with.
func (r *Resolver) IsGenericArea(area string) bool {
	if strings.TrimSpace(area) == "" {
		return true
	}
	for _, marker := range r.tax.GenericAreaMarkers {
		if textnorm.Contains(area, marker) {
			return true
		}
	}
	return false
}

// RefineArea finds the first keyword theme matching an author keyword, then any keyword.
func (r *Resolver) RefineArea(authorKeywords, keywords []string) (string, bool) {
	for _, group := range [][]string{authorKeywords, keywords} {
		for _, kt := range r.tax.KeywordThemes {
			if anyContains(group, kt.Term) {
				return kt.Theme, true
			}
		}
	}
	return "", false
}

// BroadThemeFor returns the first broad theme with a term found in area or in any keyword.
func (r *Resolver) BroadThemeFor(area string, keywords []string) (Bucket, bool) {
	for _, broad := range r.tax.BroadThemes {
		for _, term := range broad.Terms {
			if textnorm.Contains(area, term) || anyContains(keywords, term) {
				return broad, true
			}
		}
	}
	return Bucket{}, false
}

func (r *Resolver) catchAll(themes []Theme, area string) Decision {
	if existing, ok := findByName(themes, r.tax.CatchAll.Name); ok {
		return Decision{ThemeID: existing.ID, Area: area, Reason: ReasonCatchAll}
	}
	return Decision{
		Create: r.newTheme(r.tax.CatchAll.Name, r.tax.CatchAll.Terms, len(themes)),
		Area:   area,
		Reason: ReasonCatchAll,
	}
}

func (r *Resolver) newTheme(name string, keywords []string, themeCount int) *NewTheme {
	return &NewTheme{
		Name:        name,
		Description: Describe(name, keywords),
		Color:       r.tax.ColorFor(themeCount),
	}
}

// Describe builds the description used for automatically created themes.
func Describe(name string, keywords []string) string {
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	return fmt.Sprintf("Research focusing on %s with emphasis on %s", strings.ToLower(name), strings.Join(keywords, ", "))
}

func findByName(themes []Theme, name string) (Theme, bool) {
	folded := textnorm.Fold(strings.TrimSpace(name))
	for _, t := range themes {
		if textnorm.Fold(t.Name) == folded {
			return t, true
		}
	}
	return Theme{}, false
}

func anyContains(values []string, term string) bool {
	for _, v := range values {
		if textnorm.Contains(v, term) {
			return true
		}
	}
	return false
}

// byID returns a copy of themes ordered by ascending id.
func byID(themes []Theme) []Theme {
	sorted := make([]Theme, len(themes))
	copy(sorted, themes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return sorted
}
