package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"research-portfolio/internal/contextutil"
	"research-portfolio/internal/storage"
)

// Batch kinds.
const (
	KindSync        = "sync"
	KindReanalyze   = "reanalyze"
	KindImport      = "import"
	KindConsolidate = "consolidate"
)

// Item outcomes.
const (
	ItemSucceeded = "succeeded"
	ItemFailed    = "failed"
	ItemSkipped   = "skipped"
)

// ItemResult is the outcome of one batch item.
type ItemResult struct {
	Key     string
	Status  string
	PaperID int64
	Error   string
}

// Summary counts the outcomes of a batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	// Cancelled is set when the context ended before every item ran.
	Cancelled bool
}

// Summarize counts results by status.
func Summarize(results []ItemResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case ItemSucceeded:
			s.Succeeded++
		case ItemFailed:
			s.Failed++
		case ItemSkipped:
			s.Skipped++
		}
	}
	return s
}

// BatchObserver records per-item batch outcomes.
type BatchObserver interface {
	ObserveBatchItem(kind, status string)
}

// batch accumulates item results and, when a store is set, checkpoints them.
type batch struct {
	kind    string
	store   storage.BatchStore
	run     *storage.BatchRun
	obs     BatchObserver
	results []ItemResult
}

// startBatch begins a batch. With a store, an empty runID creates a new run
// and a known runID resumes it; without a store nothing is persisted.
func startBatch(ctx context.Context, kind string, store storage.BatchStore, obs BatchObserver, runID string) (*batch, error) {
	b := &batch{kind: kind, store: store, obs: obs}
	if store == nil {
		if runID != "" {
			return nil, &ValidationError{Field: "runId", Message: "Resuming requires a batch store"}
		}
		return b, nil
	}

	if runID == "" {
		run, err := store.Create(ctx, kind)
		if err != nil {
			return nil, WrapError(err, "failed to create batch run")
		}
		b.run = run
		return b, nil
	}

	run, err := store.Get(ctx, runID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newError(ErrNotFound, "Batch run not found")
	}
	if err != nil {
		return nil, WrapError(err, "failed to load batch run")
	}
	if run.Kind != kind {
		return nil, &ValidationError{Field: "runId", Message: fmt.Sprintf("Run %s is a %s batch", run.ID, run.Kind)}
	}
	run.Status = storage.RunRunning
	run.FinishedAt = nil
	b.run = run
	return b, nil
}

// RunID returns the checkpoint id, or "" when nothing is persisted.
func (b *batch) RunID() string {
	if b.run == nil {
		return ""
	}
	return b.run.ID
}

// cursorInt returns the stored cursor as an integer, or 0.
func (b *batch) cursorInt() int64 {
	if b.run == nil || b.run.Cursor == "" {
		return 0
	}
	n, err := strconv.ParseInt(b.run.Cursor, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// record appends res and checkpoints with the given cursor.
// Checkpoint failures are logged and do not stop the batch.
func (b *batch) record(ctx context.Context, res ItemResult, cursor string) {
	logger := contextutil.LoggerFromContext(ctx)

	b.results = append(b.results, res)
	if b.obs != nil {
		b.obs.ObserveBatchItem(b.kind, res.Status)
	}
	switch res.Status {
	case ItemFailed:
		logger.WarnContext(ctx, "batch item failed", "kind", b.kind, "key", res.Key, "error", res.Error)
	default:
		logger.InfoContext(ctx, "batch item done", "kind", b.kind, "key", res.Key, "status", res.Status)
	}

	if b.run == nil {
		return
	}
	b.run.Processed++
	switch res.Status {
	case ItemSucceeded:
		b.run.Succeeded++
	case ItemFailed:
		b.run.Failed++
		b.run.LastError = res.Error
	case ItemSkipped:
		b.run.Skipped++
	}
	b.run.Cursor = cursor
	if err := b.store.Checkpoint(ctx, b.run); err != nil {
		logger.WarnContext(ctx, "failed to checkpoint batch", "run_id", b.run.ID, "error", err)
	}
}

// finish closes the run. A cancelled context marks it cancelled; a non-nil
// err marks it failed.
func (b *batch) finish(ctx context.Context, err error) Summary {
	logger := contextutil.LoggerFromContext(ctx)

	sum := Summarize(b.results)
	if ctx.Err() != nil {
		sum.Cancelled = true
	}
	logger.InfoContext(ctx, "batch finished",
		"kind", b.kind,
		"total", sum.Total,
		"succeeded", sum.Succeeded,
		"failed", sum.Failed,
		"skipped", sum.Skipped,
		"cancelled", sum.Cancelled,
	)

	if b.run == nil {
		return sum
	}
	switch {
	case sum.Cancelled:
		b.run.Status = storage.RunCancelled
	case err != nil:
		b.run.Status = storage.RunFailed
		b.run.LastError = err.Error()
	default:
		b.run.Status = storage.RunCompleted
	}
	// The request context may already be done; the final write must still land.
	if ferr := b.store.Finish(context.WithoutCancel(ctx), b.run); ferr != nil {
		logger.WarnContext(ctx, "failed to finish batch run", "run_id", b.run.ID, "error", ferr)
	}
	return sum
}

func failed(key string, paperID int64, err error) ItemResult {
	return ItemResult{Key: key, Status: ItemFailed, PaperID: paperID, Error: err.Error()}
}

// sharedRunTimeout bounds a run that outlives the caller that started it.
const sharedRunTimeout = 30 * time.Minute

// runShared runs fn once per key for all concurrent callers. The run is
// detached from the starting caller's cancellation; each caller stops
// waiting when its own context ends.
func runShared[T any](ctx context.Context, g *singleflight.Group, key string, fn func(context.Context) (T, error)) (T, error) {
	ch := g.DoChan(key, func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedRunTimeout)
		defer cancel()
		return fn(runCtx)
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Shared {
			contextutil.LoggerFromContext(ctx).InfoContext(ctx, "joined running batch", "kind", key)
		}
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
