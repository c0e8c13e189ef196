package ports

import (
	"context"
	"time"

	"github.com/taskhive/task-api/internal/core/domain"
)

// ListTasksFilter carries all query parameters for listing tasks.
// OwnerID is always set by the service layer from the authenticated
// principal; repositories conjoin it into the store query before execution,
// never as a post-filter on fetched rows.
type ListTasksFilter struct {
	OwnerID   string     // required: scope to this principal
	Status    string     // optional: filter by task status
	Search    string     // optional: partial match on title
	DueBefore *time.Time // optional: due_date <= DueBefore
	DueAfter  *time.Time // optional: due_date >= DueAfter
	Page      int        // 1-based
	Limit     int        // max rows per page (capped at 100 by service)
}

// TaskRepository defines persistence operations for tasks. Every method that
// names a task id also takes the owner id; an id that exists under a
// different owner behaves exactly like a missing id (domain.ErrTaskNotFound).
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id, ownerID string) (*domain.Task, error)
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, int64, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id, ownerID string) error
}
