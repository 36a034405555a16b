package storage

import (
	"context"
	"errors"
	"testing"
)

func TestBatchRepo_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewBatchRepo(db.DB)
	ctx := context.Background()

	run, err := repo.Create(ctx, "reanalyze")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if run.ID == "" || run.Status != RunRunning || run.Kind != "reanalyze" {
		t.Errorf("Create() = %+v, want running reanalyze run", run)
	}
	if run.FinishedAt != nil {
		t.Errorf("Create() FinishedAt = %v, want nil", run.FinishedAt)
	}

	run.Cursor = "42"
	run.Processed = 3
	run.Succeeded = 2
	run.Failed = 1
	run.LastError = "model unavailable"
	if err := repo.Checkpoint(ctx, run); err != nil {
		t.Fatalf("Checkpoint() error = %v", err)
	}

	got, err := repo.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Cursor != "42" || got.Processed != 3 || got.Failed != 1 {
		t.Errorf("Get() after Checkpoint = %+v", got)
	}
	if got.FinishedAt != nil {
		t.Errorf("Get() FinishedAt after Checkpoint = %v, want nil", got.FinishedAt)
	}

	got.Status = RunCompleted
	if err := repo.Finish(ctx, got); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	done, err := repo.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if done.Status != RunCompleted || done.FinishedAt == nil {
		t.Errorf("Get() after Finish = %+v, want completed with finished_at", done)
	}
}

func TestBatchRepo_Missing(t *testing.T) {
	db := newTestDB(t)
	repo := NewBatchRepo(db.DB)
	ctx := context.Background()

	if _, err := repo.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if err := repo.Checkpoint(ctx, &BatchRun{ID: "nope", Status: RunRunning}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Checkpoint(missing) error = %v, want ErrNotFound", err)
	}
}
