package ports

import (
	"context"
	"time"
)

// ActivityInput is the DTO handed from the task service to the activity
// pipeline.
type ActivityInput struct {
	TaskID     string
	OwnerID    string
	Action     string
	Detail     string
	OccurredAt time.Time
}

// ActivityService processes queued activity events.
type ActivityService interface {
	Process(ctx context.Context, event ActivityInput) error
}
