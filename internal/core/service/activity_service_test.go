package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-api/internal/core/domain"
	"github.com/taskhive/task-api/internal/core/ports"
)

type failingActivityRepo struct{}

func (failingActivityRepo) Insert(context.Context, *domain.ActivityEvent) error {
	return errors.New("insert failed")
}

func (failingActivityRepo) ListByTask(context.Context, string, int) ([]*domain.ActivityEvent, error) {
	return nil, nil
}

func TestActivityService_Process(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, zerolog.Nop())

	in := ports.ActivityInput{
		TaskID:     "task-1",
		OwnerID:    "alice",
		Action:     string(domain.ActivityCreated),
		Detail:     "task created",
		OccurredAt: time.Now().UTC(),
	}
	if err := svc.Process(context.Background(), in); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 persisted event, got %d", len(repo.events))
	}
	got := repo.events[0]
	if got.ID == "" {
		t.Fatalf("event id not assigned")
	}
	if got.TaskID != "task-1" || got.Action != domain.ActivityCreated {
		t.Fatalf("unexpected event: %+v", got)
	}

	// ULIDs from later calls sort after earlier ones.
	if err := svc.Process(context.Background(), in); err != nil {
		t.Fatalf("Process(2): %v", err)
	}
	if repo.events[1].ID <= repo.events[0].ID {
		t.Fatalf("event ids not monotonic: %q then %q", repo.events[0].ID, repo.events[1].ID)
	}
}

func TestActivityService_ProcessError(t *testing.T) {
	svc := NewActivityService(failingActivityRepo{}, zerolog.Nop())

	err := svc.Process(context.Background(), ports.ActivityInput{TaskID: "task-1"})
	if err == nil {
		t.Fatalf("expected error from failing repo")
	}
}
