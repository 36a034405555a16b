package rag

import "research-portfolio/internal/storage"

// Hit sources.
const (
	SourceKeyword  = "keyword"
	SourceSemantic = "semantic"
	SourceRecent   = "recent"
)

// Hit is one retrieved paper with how it was found.
type Hit struct {
	Paper storage.Paper
	// Relevance is 3 for a title match, 2 for summary, 1 for full text, 0 otherwise.
	Relevance int
	// Score is the vector similarity for semantic hits.
	Score  float32
	Source string
}

// Result is the context retrieved for a question.
type Result struct {
	Keywords []string
	Hits     []Hit
}

// Papers returns the hit papers in rank order.
func (r Result) Papers() []storage.Paper {
	out := make([]storage.Paper, len(r.Hits))
	for i, h := range r.Hits {
		out[i] = h.Paper
	}
	return out
}
