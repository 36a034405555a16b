package service

import (
	"context"
	"time"

	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/pdftext"
	"research-portfolio/internal/storage"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_indexer.go -package=mocks research-portfolio/internal/service Indexer

// Indexer keeps the semantic index in step with stored papers.
type Indexer interface {
	IndexPapers(ctx context.Context, papers []storage.Paper) error
	Remove(ctx context.Context, paperIDs ...int64) error
}

// TextExtractor returns the plain text of a PDF.
type TextExtractor func(data []byte) (string, error)

// Option configures the batch services.
type Option func(*options)

type options struct {
	indexer Indexer
	obs     BatchObserver
	extract TextExtractor
	now     func() time.Time
}

func newOptions(opts []Option) options {
	o := options{
		extract: func(data []byte) (string, error) { return pdftext.Extract(data, 0) },
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithIndexer updates the semantic index after papers change.
func WithIndexer(idx Indexer) Option {
	return func(o *options) { o.indexer = idx }
}

// WithBatchObserver records item outcomes.
func WithBatchObserver(obs BatchObserver) Option {
	return func(o *options) { o.obs = obs }
}

// WithTextExtractor replaces the PDF text extractor.
func WithTextExtractor(f TextExtractor) Option {
	return func(o *options) { o.extract = f }
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// index pushes papers to the semantic index. Failures are logged only.
func (o options) index(ctx context.Context, papers storage.PaperStore, ids ...int64) {
	if o.indexer == nil || len(ids) == 0 {
		return
	}
	logger := contextutil.LoggerFromContext(ctx)
	batch := make([]storage.Paper, 0, len(ids))
	for _, id := range ids {
		p, err := papers.Get(ctx, id)
		if err != nil {
			logger.WarnContext(ctx, "failed to load paper for indexing", "paper_id", id, "error", err)
			continue
		}
		batch = append(batch, *p)
	}
	if err := o.indexer.IndexPapers(ctx, batch); err != nil {
		logger.WarnContext(ctx, "failed to index papers", "count", len(batch), "error", err)
	}
}
