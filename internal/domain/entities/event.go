package entities

import (
	"time"

	"github.com/google/uuid"
)

// Analytics event names emitted by the quiz.
const (
	EventQuizOpen          = "quiz_open"
	EventQuizStepView      = "quiz_step_view"
	EventQuizStepSubmit    = "quiz_step_submit"
	EventQuizComplete      = "quiz_complete"
	EventQuizClose         = "quiz_close"
	EventQuizPurchaseClick = "quiz_purchase_click"
)

// Payload is a flat mapping of analytics fields to primitive values
// (string, bool, int, float64).
type Payload map[string]any

// Event is a single analytics notification as delivered to sinks.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"event"`
	Payload    Payload   `json:"payload"`
	OccurredAt time.Time `json:"timestamp"`
}

// NewEvent stamps a notification with an id and the current time.
func NewEvent(name string, payload Payload) Event {
	if payload == nil {
		payload = Payload{}
	}
	return Event{
		ID:         uuid.New(),
		Name:       name,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// RunID returns the quiz run identifier carried in the payload, if any.
func (e Event) RunID() string {
	if v, ok := e.Payload["run_id"].(string); ok {
		return v
	}
	return ""
}
