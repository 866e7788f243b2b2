package model

import (
	"regexp"
	"time"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Date and time-of-day layouts used across the API. Times are wall-clock
// values on a single calendar day, no timezone attached. Zero-padded HH:MM
// strings compare correctly with <, which the overlap check relies on.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// ValidDate reports whether s is a real calendar date in zero-padded
// DateLayout form. time.Parse alone is lenient about padding, and an
// unpadded date would break lexicographic ordering and slot keying.
func ValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidTime reports whether s is a zero-padded HH:MM wall-clock value.
func ValidTime(s string) bool {
	return timeRegex.MatchString(s)
}

// Booking is one claim on a facility for a half-open [start, end) interval.
// It references its user and facility by id only; the owning documents are
// resolved through their repositories.
type Booking struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID     string    `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	FacilityID string    `json:"facility_id" bson:"facility_id" validate:"required,mongodb"`
	Date       string    `json:"date" bson:"date" validate:"required,bookingdate"`
	StartTime  string    `json:"start_time" bson:"start_time" validate:"required,clocktime"`
	EndTime    string    `json:"end_time" bson:"end_time" validate:"required,clocktime"`
	Status     string    `json:"status" bson:"status" validate:"required,oneof=confirmed cancelled"`
	Purpose    string    `json:"purpose,omitempty" bson:"purpose,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingUpdate carries the mutable fields of a confirmed booking.
// Status and CreatedAt are deliberately absent: status moves only through
// Cancel, and CreatedAt is written exactly once.
type BookingUpdate struct {
	UserID     string `json:"user_id,omitempty" validate:"omitempty,mongodb"`
	FacilityID string `json:"facility_id,omitempty" validate:"omitempty,mongodb"`
	Date       string `json:"date,omitempty" validate:"omitempty,bookingdate"`
	StartTime  string `json:"start_time,omitempty" validate:"omitempty,clocktime"`
	EndTime    string `json:"end_time,omitempty" validate:"omitempty,clocktime"`
	Purpose    *string `json:"purpose,omitempty"`
}
