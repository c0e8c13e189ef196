package ports

import (
	"context"
	"time"

	"github.com/taskhive/task-api/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a task. The owner is not
// part of the input: the service stamps it from the authenticated principal,
// overriding anything a client might have sent.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	DueDate     *time.Time
}

// UpdateTaskInput carries a partial update. Nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *time.Time
	ClearDue    bool
}

// ListTasksInput carries all parameters for the list endpoint.
type ListTasksInput struct {
	Status    string
	Search    string
	DueBefore *time.Time
	DueAfter  *time.Time
	Page      int
	Limit     int
}

// ListTasksResult is returned by ListTasks.
type ListTasksResult struct {
	Items      []*domain.Task
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TaskService defines use-case operations for tasks. Every operation takes
// the owner id of the authenticated principal and never returns another
// principal's task: a foreign task id yields domain.ErrTaskNotFound.
type TaskService interface {
	CreateTask(ctx context.Context, ownerID string, input CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, ownerID string, input ListTasksInput) (*ListTasksResult, error)
	UpdateTask(ctx context.Context, ownerID, taskID string, input UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
	// TaskActivity returns the audit feed for one of the principal's tasks.
	TaskActivity(ctx context.Context, ownerID, taskID string, limit int) ([]*domain.ActivityEvent, error)
}
