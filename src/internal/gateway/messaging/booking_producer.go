package messaging

import (
	"fmt"

	"booking-service/src/internal/model"
	"booking-service/src/pkg/kafka"
	"booking-service/src/pkg/log"
)

// BookingProducer fans booking lifecycle events out to one topic per event
// kind, keyed by event id.
type BookingProducer struct {
	AssignedProducer  Producer[*model.BookingEvent]
	ConfirmedProducer Producer[*model.BookingEvent]
	StartedProducer   Producer[*model.BookingEvent]
	CompletedProducer Producer[*model.BookingEvent]
}

func NewBookingProducer(producer kafka.Producer, log log.Log) *BookingProducer {
	return &BookingProducer{
		AssignedProducer: Producer[*model.BookingEvent]{
			Producer: producer,
			Topic:    "booking-assigned",
			Log:      log,
		},
		ConfirmedProducer: Producer[*model.BookingEvent]{
			Producer: producer,
			Topic:    "booking-confirmed",
			Log:      log,
		},
		StartedProducer: Producer[*model.BookingEvent]{
			Producer: producer,
			Topic:    "booking-started",
			Log:      log,
		},
		CompletedProducer: Producer[*model.BookingEvent]{
			Producer: producer,
			Topic:    "booking-completed",
			Log:      log,
		},
	}
}

func (u *BookingProducer) PublishEvent(event *model.BookingEvent) error {
	switch event.Kind {
	case model.EventAssigned:
		return u.AssignedProducer.Send(event)
	case model.EventConfirmed:
		return u.ConfirmedProducer.Send(event)
	case model.EventStarted:
		return u.StartedProducer.Send(event)
	case model.EventCompleted:
		return u.CompletedProducer.Send(event)
	default:
		return fmt.Errorf("unknown event kind %s", event.Kind)
	}
}
