package events

// Event is the contract for messages emitted by the appointment workflow.
type Event interface {
	// EventType returns the unique code for this event
	// (e.g. "notification.queued").
	EventType() string
}
