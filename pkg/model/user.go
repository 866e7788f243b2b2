package model

import "time"

const (
	RoleStudent = "student"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

// User is the identity placing bookings. Identity management lives
// outside the booking core; the booking service only checks existence
// and never mutates users.
type User struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Role      string    `json:"role" bson:"role" validate:"required,oneof=student staff admin"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
