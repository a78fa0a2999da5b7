package ports

import (
	"context"

	"github.com/staffdesk/employee-api/internal/core/domain"
)

// CreateEmployeeInput carries caller-supplied record fields. Ownership and
// timestamp fields are stamped by the service, never taken from the caller.
type CreateEmployeeInput struct {
	Name       string
	Position   string
	Department string
	Salary     float64
}

// UpdateEmployeeInput carries a partial update. Nil fields are untouched.
type UpdateEmployeeInput struct {
	Name       *string
	Position   *string
	Department *string
	Salary     *float64
}

// EmployeeService defines the record use-cases, all scoped by the acting
// identity.
type EmployeeService interface {
	Create(ctx context.Context, identity domain.Identity, input CreateEmployeeInput) (string, error)
	Get(ctx context.Context, identity domain.Identity, id string) (*domain.Employee, error)
	List(ctx context.Context, identity domain.Identity) ([]*domain.Employee, error)
	// Update returns the store's modified count on success.
	Update(ctx context.Context, identity domain.Identity, id string, input UpdateEmployeeInput) (int64, error)
	// Delete returns the store's deleted count on success.
	Delete(ctx context.Context, identity domain.Identity, id string) (int64, error)
}
