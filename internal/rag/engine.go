// Package rag retrieves the papers used as context for research questions.
package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_retriever.go -package=mocks research-portfolio/internal/rag Retriever

import (
	"context"
	"errors"
	"fmt"

	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/storage"
	"research-portfolio/internal/textnorm"
	"research-portfolio/internal/vectorstore"
)

// Retrieval limits.
const (
	MaxPapers    = 10
	RecentPapers = 5
	semanticK    = 5
)

// Retriever finds the papers relevant to a question.
type Retriever interface {
	Retrieve(ctx context.Context, question string) (Result, error)
}

// QueryEmbedder embeds a single query text.
type QueryEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Option configures the engine.
type Option func(*engine)

// WithSemantic adds vector search hits after the keyword hits.
func WithSemantic(embedder QueryEmbedder, store vectorstore.VectorStore) Option {
	return func(e *engine) {
		e.embedder = embedder
		e.vectors = store
	}
}

type engine struct {
	papers   storage.PaperStore
	embedder QueryEmbedder
	vectors  vectorstore.VectorStore
}

// NewEngine creates a Retriever over the paper store.
func NewEngine(papers storage.PaperStore, opts ...Option) Retriever {
	e := &engine{papers: papers}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Retrieve implements Retriever. Questions without usable keywords get the
// most recent papers. A failed keyword search also falls back to recent papers.
func (e *engine) Retrieve(ctx context.Context, question string) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	keywords := textnorm.QuestionKeywords(question)
	res := Result{Keywords: keywords}

	if len(keywords) == 0 {
		hits, err := e.recent(ctx)
		if err != nil {
			return Result{}, err
		}
		res.Hits = hits
		return res, nil
	}

	matched, err := e.papers.Search(ctx, keywords)
	if err != nil {
		logger.WarnContext(ctx, "keyword search failed, using recent papers", "error", err)
		hits, err := e.recent(ctx)
		if err != nil {
			return Result{}, err
		}
		res.Hits = hits
		return res, nil
	}
	res.Hits = rankKeywordHits(matched, keywords, MaxPapers)

	if e.embedder != nil && e.vectors != nil && len(res.Hits) < MaxPapers {
		res.Hits = append(res.Hits, e.semantic(ctx, question, res.Hits)...)
	}

	logger.InfoContext(ctx, "retrieved papers", "keywords", len(keywords), "papers", len(res.Hits))
	return res, nil
}

func (e *engine) recent(ctx context.Context) ([]Hit, error) {
	papers, err := e.papers.Recent(ctx, RecentPapers)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent papers: %w", err)
	}
	hits := make([]Hit, len(papers))
	for i, p := range papers {
		hits[i] = Hit{Paper: p, Source: SourceRecent}
	}
	return hits, nil
}

// semantic returns vector hits not already present, up to the free slots.
// Failures are logged and yield no hits.
func (e *engine) semantic(ctx context.Context, question string, existing []Hit) []Hit {
	logger := contextutil.LoggerFromContext(ctx)

	vec, err := e.embedder.Embed(ctx, question)
	if err != nil {
		logger.WarnContext(ctx, "failed to embed question", "error", err)
		return nil
	}
	results, err := e.vectors.Search(ctx, vec, semanticK, vectorstore.Filters{})
	if err != nil {
		logger.WarnContext(ctx, "semantic search failed", "error", err)
		return nil
	}

	seen := make(map[int64]struct{}, len(existing))
	for _, h := range existing {
		seen[h.Paper.ID] = struct{}{}
	}

	free := MaxPapers - len(existing)
	var hits []Hit
	for _, r := range results {
		if len(hits) == free {
			break
		}
		if _, dup := seen[r.PaperID]; dup {
			continue
		}
		p, err := e.papers.Get(ctx, r.PaperID)
		if errors.Is(err, storage.ErrNotFound) {
			logger.DebugContext(ctx, "semantic hit for deleted paper", "paper_id", r.PaperID)
			continue
		}
		if err != nil {
			logger.WarnContext(ctx, "failed to load semantic hit", "paper_id", r.PaperID, "error", err)
			continue
		}
		seen[r.PaperID] = struct{}{}
		hits = append(hits, Hit{Paper: *p, Score: r.Score, Source: SourceSemantic})
	}
	return hits
}
