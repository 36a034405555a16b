// Package indexer keeps the semantic paper index in Qdrant in step with the
// paper table.
package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks research-portfolio/internal/indexer Embedder

import (
	"context"
	"fmt"
	"strings"

	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/storage"
	"research-portfolio/internal/textnorm"
	"research-portfolio/internal/vectorstore"
)

// BatchSize is the number of papers embedded per request.
const BatchSize = 16

// maxDocumentChars bounds the text embedded per paper.
const maxDocumentChars = 4000

// Embedder produces one vector per input text, in input order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline embeds papers and stores them in the vector index.
type Pipeline struct {
	embedder Embedder
	store    vectorstore.VectorStore
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(embedder Embedder, store vectorstore.VectorStore) *Pipeline {
	return &Pipeline{embedder: embedder, store: store}
}

// Stats summarizes a full reindex.
type Stats struct {
	Papers  int `json:"papers"`
	Indexed int `json:"indexed"`
	Failed  int `json:"failed"`
}

// Document is the text embedded for a paper.
func Document(p storage.Paper) string {
	var b strings.Builder
	b.WriteString(p.Title)
	if p.Summary != "" {
		b.WriteString("\n")
		b.WriteString(p.Summary)
	}
	if len(p.Keywords) > 0 {
		b.WriteString("\nKeywords: ")
		b.WriteString(strings.Join(p.Keywords, ", "))
	}
	return textnorm.Truncate(b.String(), maxDocumentChars)
}

func payload(p storage.Paper) map[string]any {
	themeIDs := make([]any, 0, len(p.Themes))
	for _, t := range p.Themes {
		themeIDs = append(themeIDs, t.ID)
	}
	return map[string]any{
		vectorstore.KeyTitle:    p.Title,
		vectorstore.KeyYear:     p.Year,
		vectorstore.KeyThemeIDs: themeIDs,
	}
}

// IndexPapers embeds and upserts papers in batches of BatchSize.
func (p *Pipeline) IndexPapers(ctx context.Context, papers []storage.Paper) error {
	for start := 0; start < len(papers); start += BatchSize {
		end := min(start+BatchSize, len(papers))
		if err := p.indexBatch(ctx, papers[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) indexBatch(ctx context.Context, batch []storage.Paper) error {
	texts := make([]string, len(batch))
	for i, paper := range batch {
		texts[i] = Document(paper)
	}

	vecs, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(vecs) != len(batch) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(vecs))
	}

	points := make([]vectorstore.Point, len(batch))
	for i, paper := range batch {
		points[i] = vectorstore.Point{PaperID: paper.ID, Vec: vecs[i], Meta: payload(paper)}
	}
	if err := p.store.Upsert(ctx, points); err != nil {
		return fmt.Errorf("failed to upsert vectors: %w", err)
	}
	return nil
}

// Remove deletes papers from the index.
func (p *Pipeline) Remove(ctx context.Context, paperIDs ...int64) error {
	return p.store.Delete(ctx, paperIDs)
}

// Reindex embeds every stored paper. A failed batch is logged and counted,
// and indexing continues with the next one.
func (p *Pipeline) Reindex(ctx context.Context, papers storage.PaperStore) (Stats, error) {
	logger := contextutil.LoggerFromContext(ctx)

	all, err := papers.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list papers: %w", err)
	}

	stats := Stats{Papers: len(all)}
	logger.InfoContext(ctx, "starting reindex", "papers", len(all))

	for start := 0; start < len(all); start += BatchSize {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		end := min(start+BatchSize, len(all))
		batch := all[start:end]
		if err := p.indexBatch(ctx, batch); err != nil {
			stats.Failed += len(batch)
			logger.ErrorContext(ctx, "failed to index batch", "first_id", batch[0].ID, "count", len(batch), "error", err)
			continue
		}
		stats.Indexed += len(batch)
	}

	logger.InfoContext(ctx, "reindex completed", "papers", stats.Papers, "indexed", stats.Indexed, "failed", stats.Failed)
	if stats.Failed > 0 {
		return stats, fmt.Errorf("reindex completed with %d failed papers", stats.Failed)
	}
	return stats, nil
}
