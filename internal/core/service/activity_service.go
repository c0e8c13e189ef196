package service

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/taskhive/task-api/internal/core/domain"
	"github.com/taskhive/task-api/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns the worker-side consumer that persists queued
// activity events.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process assigns the event a ULID (monotonic enough for feed ordering) and
// persists it. Persistence failures are returned to the dispatcher for
// logging; they never affect the task mutation that produced the event.
func (s *activityService) Process(ctx context.Context, in ports.ActivityInput) error {
	event := &domain.ActivityEvent{
		ID:         ulid.Make().String(),
		TaskID:     in.TaskID,
		OwnerID:    in.OwnerID,
		Action:     domain.ActivityAction(in.Action),
		Detail:     in.Detail,
		OccurredAt: in.OccurredAt,
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("process activity: %w", err)
	}

	s.log.Debug().
		Str("task_id", in.TaskID).
		Str("action", in.Action).
		Msg("activity recorded")
	return nil
}
