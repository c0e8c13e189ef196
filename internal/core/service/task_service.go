package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskhive/task-api/internal/core/domain"
	"github.com/taskhive/task-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	defaultFeedLimit = 50
	maxFeedLimit     = 200
)

// ErrInvalidStatus rejects task statuses outside the known set.
var ErrInvalidStatus = errors.New("invalid task status")

// ActivityQueue is the interface the task service uses to emit audit events.
// Enqueueing never blocks the mutation that triggered it.
type ActivityQueue interface {
	Enqueue(event ports.ActivityInput)
}

// TaskService implements owner-scoped task operations. The owner id of the
// authenticated principal is threaded through every call and conjoined into
// the store query before it runs; the service never post-filters fetched
// rows and never discloses whether a foreign task id exists.
type TaskService struct {
	repo         ports.TaskRepository
	activityRepo ports.ActivityRepository
	queue        ActivityQueue
	log          zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, activityRepo ports.ActivityRepository, queue ActivityQueue, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, activityRepo: activityRepo, queue: queue, log: log}
}

// CreateTask creates a task owned by ownerID. Any owner value a client may
// have smuggled into the payload is irrelevant: the owner is stamped here.
func (s *TaskService) CreateTask(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*domain.Task, error) {
	status := domain.TaskStatus(input.Status)
	if input.Status == "" {
		status = domain.StatusTodo
	} else if !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.log.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.emit(task, domain.ActivityCreated, "task created")
	s.log.Info().Str("task_id", task.ID).Str("owner_id", ownerID).Msg("task created")
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, taskID, ownerID)
}

func (s *TaskService) ListTasks(ctx context.Context, ownerID string, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListTasksFilter{
		OwnerID:   ownerID,
		Status:    input.Status,
		Search:    input.Search,
		DueBefore: input.DueBefore,
		DueAfter:  input.DueAfter,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &ports.ListTasksResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateTask applies a partial update to one of the principal's tasks.
func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID string, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	completed := false
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		next := domain.TaskStatus(*input.Status)
		if !domain.ValidStatus(next) {
			return nil, ErrInvalidStatus
		}
		completed = next == domain.StatusDone && task.Status != domain.StatusDone
		task.Status = next
	}
	if input.ClearDue {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	if completed {
		s.emit(task, domain.ActivityCompleted, "task completed")
	} else {
		s.emit(task, domain.ActivityUpdated, "task updated")
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	// Fetch first so the emitted event carries the task snapshot and so a
	// foreign id fails with the same not-found as a missing one.
	task, err := s.repo.FindByID(ctx, taskID, ownerID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, taskID, ownerID); err != nil {
		return err
	}
	s.emit(task, domain.ActivityDeleted, "task deleted")
	s.log.Info().Str("task_id", taskID).Str("owner_id", ownerID).Msg("task deleted")
	return nil
}

// TaskActivity returns the audit feed for one of the principal's tasks. The
// task is resolved under the caller's owner scope before the feed is read, so
// a foreign task id yields domain.ErrTaskNotFound rather than its feed.
func (s *TaskService) TaskActivity(ctx context.Context, ownerID, taskID string, limit int) ([]*domain.ActivityEvent, error) {
	if _, err := s.repo.FindByID(ctx, taskID, ownerID); err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	return s.activityRepo.ListByTask(ctx, taskID, limit)
}

func (s *TaskService) emit(task *domain.Task, action domain.ActivityAction, detail string) {
	if s.queue == nil {
		return
	}
	s.queue.Enqueue(ports.ActivityInput{
		TaskID:     task.ID,
		OwnerID:    task.OwnerID,
		Action:     string(action),
		Detail:     detail,
		OccurredAt: time.Now().UTC(),
	})
}
