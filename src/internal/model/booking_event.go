package model

import "time"

// Event is the constraint for messages published through gateway/messaging.
type Event interface {
	GetId() string
}

type EventKind string

const (
	EventAssigned  EventKind = "ASSIGNED"
	EventConfirmed EventKind = "CONFIRMED"
	EventStarted   EventKind = "STARTED"
	EventCompleted EventKind = "COMPLETED"
)

// BookingEvent is one notification derived by the change-detector: a booking
// gained a driver or moved to a new status. Deduplication is positional, since
// an event kind fires at most once per booking because the underlying
// transition happens at most once.
type BookingEvent struct {
	EventID    string    `json:"event_id"`
	TenantID   string    `json:"tenant_id"`
	BookingID  string    `json:"booking_id"`
	Kind       EventKind `json:"kind"`
	CustomerID string    `json:"customer_id"`
	DriverID   string    `json:"driver_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *BookingEvent) GetId() string {
	return e.EventID
}
