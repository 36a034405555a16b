package rag

import (
	"sort"
	"strings"

	"research-portfolio/internal/storage"
)

// Relevance weights by field.
const (
	titleRelevance    = 3
	summaryRelevance  = 2
	fullTextRelevance = 1
)

// relevance rates a paper by the most important field containing any keyword.
// Keywords must already be lowercased.
func relevance(p storage.Paper, keywords []string) int {
	fields := []struct {
		text   string
		weight int
	}{
		{p.Title, titleRelevance},
		{p.Summary, summaryRelevance},
		{p.FullText, fullTextRelevance},
	}
	for _, f := range fields {
		lower := strings.ToLower(f.text)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return f.weight
			}
		}
	}
	return 0
}

// rankKeywordHits orders papers by relevance DESC, then year DESC, and keeps
// at most limit. Equal papers keep their input order.
func rankKeywordHits(papers []storage.Paper, keywords []string, limit int) []Hit {
	hits := make([]Hit, 0, len(papers))
	for _, p := range papers {
		hits = append(hits, Hit{Paper: p, Relevance: relevance(p, keywords), Source: SourceKeyword})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Relevance != hits[j].Relevance {
			return hits[i].Relevance > hits[j].Relevance
		}
		return hits[i].Paper.Year > hits[j].Paper.Year
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}
