package domain

import "time"

// ActivityAction identifies what happened to a task.
type ActivityAction string

const (
	ActivityCreated   ActivityAction = "created"
	ActivityUpdated   ActivityAction = "updated"
	ActivityCompleted ActivityAction = "completed"
	ActivityDeleted   ActivityAction = "deleted"
)

// ActivityEvent is one entry in a task's audit trail. IDs are ULIDs so the
// feed sorts lexically by creation time.
type ActivityEvent struct {
	ID         string         `json:"id" bson:"_id,omitempty"`
	TaskID     string         `json:"task_id" bson:"task_id"`
	OwnerID    string         `json:"owner_id" bson:"owner_id"`
	Action     ActivityAction `json:"action" bson:"action"`
	Detail     string         `json:"detail,omitempty" bson:"detail,omitempty"`
	OccurredAt time.Time      `json:"occurred_at" bson:"occurred_at"`
}
