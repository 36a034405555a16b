package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_batch_store.go -package=mocks research-portfolio/internal/storage BatchStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// BatchStore persists batch run checkpoints.
type BatchStore interface {
	// Create starts a run of the given kind in the running state.
	Create(ctx context.Context, kind string) (*BatchRun, error)
	// Get returns a run, or ErrNotFound.
	Get(ctx context.Context, id string) (*BatchRun, error)
	// Checkpoint stores the cursor and counters of a running batch.
	Checkpoint(ctx context.Context, run *BatchRun) error
	// Finish stores the final counters and status and sets finished_at.
	Finish(ctx context.Context, run *BatchRun) error
}

// BatchRepo implements BatchStore on database/sql.
type BatchRepo struct {
	db *sql.DB
}

// NewBatchRepo creates a new BatchRepo.
func NewBatchRepo(db *sql.DB) *BatchRepo {
	return &BatchRepo{db: db}
}

// Create implements BatchStore.
func (r *BatchRepo) Create(ctx context.Context, kind string) (*BatchRun, error) {
	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO batch_runs (id, kind, status) VALUES ($1, $2, $3)", id, kind, RunRunning,
	); err != nil {
		return nil, fmt.Errorf("failed to create batch run: %w", err)
	}
	return r.Get(ctx, id)
}

// Get implements BatchStore.
func (r *BatchRepo) Get(ctx context.Context, id string) (*BatchRun, error) {
	var (
		run               BatchRun
		started, finished flexTime
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, kind, status, cursor, processed, succeeded, failed, skipped,
			last_error, started_at, finished_at
		FROM batch_runs WHERE id = $1`, id,
	).Scan(&run.ID, &run.Kind, &run.Status, &run.Cursor, &run.Processed, &run.Succeeded,
		&run.Failed, &run.Skipped, &run.LastError, &started, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query batch run: %w", err)
	}
	run.StartedAt = started.Time
	run.FinishedAt = finished.ptr()
	return &run, nil
}

// Checkpoint implements BatchStore.
func (r *BatchRepo) Checkpoint(ctx context.Context, run *BatchRun) error {
	return r.save(ctx, run, false)
}

// Finish implements BatchStore.
func (r *BatchRepo) Finish(ctx context.Context, run *BatchRun) error {
	return r.save(ctx, run, true)
}

func (r *BatchRepo) save(ctx context.Context, run *BatchRun, finish bool) error {
	q := `UPDATE batch_runs SET status = $1, cursor = $2, processed = $3, succeeded = $4,
		failed = $5, skipped = $6, last_error = $7`
	if finish {
		q += ", finished_at = CURRENT_TIMESTAMP"
	}
	q += " WHERE id = $8"

	res, err := r.db.ExecContext(ctx, q, run.Status, run.Cursor, run.Processed, run.Succeeded,
		run.Failed, run.Skipped, run.LastError, run.ID)
	if err != nil {
		return fmt.Errorf("failed to save batch run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save batch run: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
