package validator

import (
	"io"
	"testing"

	"bookit/pkg/logger"
	"bookit/pkg/model"
)

func newTestValidator() *BookingValidator {
	log := logger.New(logger.Config{Level: "error", Format: "text", Output: io.Discard})
	return NewBookingValidator(log)
}

func validBooking() *model.Booking {
	return &model.Booking{
		UserID:     "507f1f77bcf86cd799439011",
		FacilityID: "507f191e810c19729de860ea",
		Date:       "2030-06-01",
		StartTime:  "09:00",
		EndTime:    "10:00",
		Status:     model.StatusConfirmed,
		Purpose:    "team standup",
	}
}

func TestValidate_ValidBooking(t *testing.T) {
	v := newTestValidator()
	if err := v.Validate(validBooking()); err != nil {
		t.Errorf("Validate() returned error for valid booking: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Booking)
		field  string
	}{
		{
			name:   "missing user id",
			mutate: func(b *model.Booking) { b.UserID = "" },
			field:  "UserID",
		},
		{
			name:   "malformed facility id",
			mutate: func(b *model.Booking) { b.FacilityID = "not-an-oid" },
			field:  "FacilityID",
		},
		{
			name:   "bad date layout",
			mutate: func(b *model.Booking) { b.Date = "01/06/2030" },
			field:  "Date",
		},
		{
			name:   "unpadded date",
			mutate: func(b *model.Booking) { b.Date = "2030-6-1" },
			field:  "Date",
		},
		{
			name:   "impossible date",
			mutate: func(b *model.Booking) { b.Date = "2030-02-31" },
			field:  "Date",
		},
		{
			name:   "unpadded start time",
			mutate: func(b *model.Booking) { b.StartTime = "9:00" },
			field:  "StartTime",
		},
		{
			name:   "out of range end time",
			mutate: func(b *model.Booking) { b.EndTime = "24:30" },
			field:  "EndTime",
		},
		{
			name:   "unknown status",
			mutate: func(b *model.Booking) { b.Status = "pending" },
			field:  "Status",
		},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)

			err := v.Validate(b)
			if err == nil {
				t.Fatal("Validate() returned nil, want error")
			}

			verrs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("Validate() returned %T, want ValidationErrors", err)
			}

			found := false
			for _, ve := range verrs {
				if ve.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no validation error for field %s in %v", tt.field, verrs)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	v := newTestValidator()

	// Empty update is structurally valid; whether there is anything to
	// apply is the service's call.
	if err := v.ValidateUpdate(&model.BookingUpdate{}); err != nil {
		t.Errorf("ValidateUpdate(empty) returned error: %v", err)
	}

	if err := v.ValidateUpdate(&model.BookingUpdate{Date: "2030-06-01", StartTime: "10:00"}); err != nil {
		t.Errorf("ValidateUpdate(partial) returned error: %v", err)
	}

	if err := v.ValidateUpdate(&model.BookingUpdate{StartTime: "10am"}); err == nil {
		t.Error("ValidateUpdate() accepted malformed start time")
	}
	if err := v.ValidateUpdate(&model.BookingUpdate{StartTime: "9:00"}); err == nil {
		t.Error("ValidateUpdate() accepted unpadded start time")
	}
	if err := v.ValidateUpdate(&model.BookingUpdate{Date: "2030-6-1"}); err == nil {
		t.Error("ValidateUpdate() accepted unpadded date")
	}
}
