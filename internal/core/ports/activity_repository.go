package ports

import (
	"context"

	"github.com/taskhive/task-api/internal/core/domain"
)

// ActivityRepository persists the task activity audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
	// ListByTask returns the activity feed for a task, newest first.
	ListByTask(ctx context.Context, taskID string, limit int) ([]*domain.ActivityEvent, error)
}
