package model

import "time"

// Facility is a bookable physical resource. IsAvailable is the
// facility-level on/off switch, independent of individual bookings;
// it is a pointer so a create request that omits it defaults to true
// instead of silently closing the facility.
type Facility struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Location    string    `json:"location" bson:"location" validate:"required,min=2,max=200"`
	Capacity    int       `json:"capacity" bson:"capacity" validate:"required,min=1"`
	IsAvailable *bool     `json:"is_available" bson:"is_available" validate:"required"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Available reports the facility-level switch, treating a missing flag
// as closed.
func (f *Facility) Available() bool {
	return f.IsAvailable != nil && *f.IsAvailable
}

type FacilityUpdate struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Location    string `json:"location,omitempty" validate:"omitempty,min=2,max=200"`
	Capacity    *int   `json:"capacity,omitempty" validate:"omitempty,min=1"`
	IsAvailable *bool  `json:"is_available,omitempty"`
}
