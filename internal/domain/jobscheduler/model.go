package jobscheduler

import "time"

type DispatchStatus string

const (
	StatusSent      DispatchStatus = "sent"
	StatusCompleted DispatchStatus = "completed"
	StatusFailed    DispatchStatus = "failed"
)

// DispatchEvent is one step in the life of a queued job: enqueue, then completion or failure.
type DispatchEvent struct {
	DispatchID    string
	JobName       string
	JobPath       string
	CompetitionID string
	Status        DispatchStatus
	Payload       map[string]any
	ErrorMessage  string
	OccurredAt    time.Time
	TraceID       string
	SpanID        string
}
