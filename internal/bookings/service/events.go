package service

import (
	"context"

	"bookit/pkg/kafka"
	"bookit/pkg/logger"
	"bookit/pkg/model"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"

	eventSource = "bookings-service"
)

// EventPublisher announces booking lifecycle transitions. Publishing is
// best effort: the booking is already committed when an event goes out, so
// delivery failures are logged and swallowed.
type EventPublisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingUpdated(ctx context.Context, booking *model.Booking)
	BookingCancelled(ctx context.Context, booking *model.Booking)
}

type kafkaEventPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaEventPublisher(producer *kafka.Producer, log *logger.Logger) EventPublisher {
	return &kafkaEventPublisher{producer: producer, log: log}
}

func (p *kafkaEventPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, EventBookingCreated, booking)
}

func (p *kafkaEventPublisher) BookingUpdated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, EventBookingUpdated, booking)
}

func (p *kafkaEventPublisher) BookingCancelled(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, EventBookingCancelled, booking)
}

func (p *kafkaEventPublisher) publish(ctx context.Context, eventType string, booking *model.Booking) {
	// Keyed by facility so one facility's events stay ordered.
	msg, err := kafka.NewMessage().
		WithKey(booking.FacilityID).
		WithEventType(eventType).
		WithSource(eventSource).
		WithValue(booking).
		Build()
	if err != nil {
		p.log.Error("Failed to build booking event", "event_type", eventType, "booking_id", booking.ID, "error", err)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event", "event_type", eventType, "booking_id", booking.ID, "error", err)
		return
	}

	p.log.Debug("Booking event published", "event_type", eventType, "booking_id", booking.ID)
}

// noopEventPublisher keeps the service wiring uniform when eventing is
// disabled by configuration.
type noopEventPublisher struct{}

func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

func (noopEventPublisher) BookingCreated(context.Context, *model.Booking)   {}
func (noopEventPublisher) BookingUpdated(context.Context, *model.Booking)   {}
func (noopEventPublisher) BookingCancelled(context.Context, *model.Booking) {}
