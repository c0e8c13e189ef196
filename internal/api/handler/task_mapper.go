package handler

import (
	"github.com/taskhive/task-api/internal/core/domain"
	"github.com/taskhive/task-api/internal/core/ports"
)

// The response types are owned by the transport layer so the JSON contract
// is not coupled to internal domain changes; note owner_id is deliberately
// absent from responses — a caller only ever sees their own tasks.

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func toListResponse(r *ports.ListTasksResult) listTasksResponse {
	items := make([]taskResponse, len(r.Items))
	for i, t := range r.Items {
		items[i] = toTaskResponse(t)
	}
	return listTasksResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

func toActivityResponse(taskID string, events []*domain.ActivityEvent) activityFeedResponse {
	out := make([]activityEventResponse, len(events))
	for i, e := range events {
		out[i] = activityEventResponse{
			ID:         e.ID,
			Action:     string(e.Action),
			Detail:     e.Detail,
			OccurredAt: e.OccurredAt.UTC(),
		}
	}
	return activityFeedResponse{TaskID: taskID, Events: out}
}
