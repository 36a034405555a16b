package classify

import (
	"strings"

	"research-portfolio/internal/textnorm"
)

// ConsolidatedThemes returns the fixed theme set installed by consolidation,
// with their descriptions.
func (r *Resolver) ConsolidatedThemes() []NewTheme {
	out := make([]NewTheme, 0, len(r.tax.Consolidated))
	for _, c := range r.tax.Consolidated {
		out = append(out, NewTheme{
			Name:        c.Name,
			Description: "Research focusing on " + strings.ToLower(c.Name),
			Color:       c.Color,
		})
	}
	return out
}

// ConsolidatedThemeFor returns the consolidated theme name for a paper's text.
// Rules are tried in order; the last consolidated theme is the default.
func (r *Resolver) ConsolidatedThemeFor(title string, keywords []string, summary string) string {
	text := textnorm.Fold(title + " " + strings.Join(keywords, " ") + " " + summary)
	rules := r.tax.Consolidated
	for _, rule := range rules[:len(rules)-1] {
		for _, term := range rule.Terms {
			if strings.Contains(text, term) {
				return rule.Name
			}
		}
	}
	return rules[len(rules)-1].Name
}
