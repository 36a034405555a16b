package classify

import (
	"strings"

	"research-portfolio/internal/textnorm"
)

// MatchBuckets returns, in bucket order, every bucket with a term contained in any keyword.
func MatchBuckets(keywords []string, buckets []Bucket) []Bucket {
	if len(keywords) == 0 {
		return nil
	}
	var matched []Bucket
	for _, b := range buckets {
		for _, term := range b.Terms {
			if anyContains(keywords, term) {
				matched = append(matched, b)
				break
			}
		}
	}
	return matched
}

// AssignThemes returns the ordered, deduplicated theme ids for a paper.
// Bucket matches come first, then themes matching the research area. When
// nothing matches the lowest-id theme is returned, so the result is empty only
// when themes is empty.
func (r *Resolver) AssignThemes(area string, keywords []string, themes []Theme) []int64 {
	themes = byID(themes)
	if len(themes) == 0 {
		return nil
	}

	seen := make(map[int64]struct{})
	var ids []int64
	add := func(id int64) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, b := range MatchBuckets(keywords, r.tax.Buckets) {
		word := firstWord(b.Name)
		for _, t := range themes {
			if textnorm.Contains(t.Name, word) {
				add(t.ID)
				break
			}
		}
	}

	if area = strings.TrimSpace(area); area != "" {
		for _, t := range themes {
			if textnorm.Contains(t.Name, area) || textnorm.Contains(t.Description, area) {
				add(t.ID)
			}
		}
	}

	if len(ids) == 0 {
		add(themes[0].ID)
	}
	return ids
}

func firstWord(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return s
}
