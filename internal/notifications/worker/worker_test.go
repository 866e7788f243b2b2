package worker

import (
	"context"
	"io"
	"testing"

	bookingsservice "bookit/internal/bookings/service"
	"bookit/pkg/kafka"
	"bookit/pkg/logger"
	"bookit/pkg/model"
)

func newTestWorker() *Worker {
	return New(logger.New(logger.Config{Level: "error", Format: "text", Output: io.Discard}))
}

func eventMessage(t *testing.T, eventType string, booking *model.Booking) kafka.Message {
	t.Helper()
	msg, err := kafka.NewMessage().
		WithKey(booking.FacilityID).
		WithEventType(eventType).
		WithSource("test").
		WithValue(booking).
		Build()
	if err != nil {
		t.Fatalf("building message: %v", err)
	}
	return msg
}

func TestHandle_KnownEvents(t *testing.T) {
	w := newTestWorker()
	booking := &model.Booking{
		ID:         "60c72b2f9b1e8a5f4c8b4501",
		UserID:     "507f1f77bcf86cd799439011",
		FacilityID: "507f191e810c19729de860ea",
		Date:       "2030-06-01",
		StartTime:  "09:00",
		EndTime:    "10:00",
		Status:     model.StatusConfirmed,
	}

	for _, eventType := range []string{
		bookingsservice.EventBookingCreated,
		bookingsservice.EventBookingUpdated,
		bookingsservice.EventBookingCancelled,
	} {
		if err := w.Handle(context.Background(), eventMessage(t, eventType, booking)); err != nil {
			t.Errorf("Handle(%s) error = %v", eventType, err)
		}
	}
}

func TestHandle_UnknownEventIsPermanent(t *testing.T) {
	w := newTestWorker()
	msg := eventMessage(t, "booking.exploded", &model.Booking{FacilityID: "507f191e810c19729de860ea"})

	err := w.Handle(context.Background(), msg)
	if err == nil {
		t.Fatal("Handle() accepted unknown event type")
	}
	if !kafka.IsPermanent(err) {
		t.Errorf("error %v should be permanent", err)
	}
}

func TestHandle_UndecodableValueIsPermanent(t *testing.T) {
	w := newTestWorker()
	msg := kafka.Message{
		Value: []byte("{not json"),
		Headers: map[string]string{
			kafka.HeaderEventType: bookingsservice.EventBookingCreated,
		},
	}

	err := w.Handle(context.Background(), msg)
	if err == nil {
		t.Fatal("Handle() accepted undecodable payload")
	}
	if !kafka.IsPermanent(err) {
		t.Errorf("error %v should be permanent", err)
	}
}
