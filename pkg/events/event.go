package events

import "time"

// Event is the contract for everything published to the bus.
type Event interface {
	// EventType returns the unique code for this event (e.g. "NOTE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a ready-made Event implementation for simple payloads.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by the agent pipeline and resource processing.
const (
	TypeNoteCreated       = "NOTE_CREATED"
	TypeTasksCreated      = "TASKS_CREATED"
	TypePlanCreated       = "LEARNING_PLAN_CREATED"
	TypeResourceUploaded  = "RESOURCE_UPLOADED"
	TypeResourceProcessed = "RESOURCE_PROCESSED"
)

// New builds a BaseEvent stamped with the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
