package models

import "time"

// Activity event types.
const (
	ActivityRegister   = "REGISTER"
	ActivityTodoUpsert = "TODO_UPSERT"
)

// ActivityEvent is a single entry of a user's activity history.
type ActivityEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // REGISTER | TODO_UPSERT
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
