package worker

import (
	"context"
	"fmt"

	bookingsservice "bookit/internal/bookings/service"
	"bookit/pkg/kafka"
	"bookit/pkg/logger"
	"bookit/pkg/model"
)

// Worker consumes booking lifecycle events and dispatches notifications.
// Delivery is currently a structured log line per event; the handler is
// the seam where mail or chat integrations plug in.
type Worker struct {
	log *logger.Logger
}

func New(log *logger.Logger) *Worker {
	return &Worker{log: log}
}

// Handle implements kafka.MessageHandler. Unknown event types are
// permanent failures: redelivery cannot fix them, so they go to the DLQ.
func (w *Worker) Handle(ctx context.Context, msg kafka.Message) error {
	var booking model.Booking
	if err := msg.DecodeValue(&booking); err != nil {
		return kafka.NewPermanentError("undecodable booking event "+msg.GetEventID(), err)
	}

	eventType := msg.GetEventType()
	switch eventType {
	case bookingsservice.EventBookingCreated:
		w.log.Info("Booking confirmation notification",
			"event_id", msg.GetEventID(),
			"booking_id", booking.ID,
			"user_id", booking.UserID,
			"facility_id", booking.FacilityID,
			"date", booking.Date,
			"start_time", booking.StartTime,
			"end_time", booking.EndTime,
		)
	case bookingsservice.EventBookingUpdated:
		w.log.Info("Booking change notification",
			"event_id", msg.GetEventID(),
			"booking_id", booking.ID,
			"user_id", booking.UserID,
			"facility_id", booking.FacilityID,
			"date", booking.Date,
			"start_time", booking.StartTime,
			"end_time", booking.EndTime,
		)
	case bookingsservice.EventBookingCancelled:
		w.log.Info("Booking cancellation notification",
			"event_id", msg.GetEventID(),
			"booking_id", booking.ID,
			"user_id", booking.UserID,
			"facility_id", booking.FacilityID,
			"date", booking.Date,
		)
	default:
		return kafka.NewPermanentError(fmt.Sprintf("unknown event type %q", eventType), nil)
	}

	return nil
}
