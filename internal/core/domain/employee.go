package domain

import (
	"errors"
	"time"
)

var ErrMissingFields = errors.New("missing required fields")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmployeeNotFound = errors.New("employee not found")
var ErrForbidden = errors.New("access denied")
var ErrTooManyAttempts = errors.New("too many login attempts")

// Employee is the record entity managed by the service. Bson field names
// are camelCase to stay compatible with documents written by earlier
// versions of the system.
type Employee struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Name       string    `json:"name" bson:"name"`
	Position   string    `json:"position,omitempty" bson:"position,omitempty"`
	Department string    `json:"department,omitempty" bson:"department,omitempty"`
	Salary     float64   `json:"salary,omitempty" bson:"salary,omitempty"`
	CreatedBy  string    `json:"createdBy" bson:"createdBy"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// EmployeeUpdate carries a partial update. Nil fields are left untouched.
// CreatedBy is deliberately absent: ownership is immutable after creation.
type EmployeeUpdate struct {
	Name       *string
	Position   *string
	Department *string
	Salary     *float64
	UpdatedAt  time.Time
}
