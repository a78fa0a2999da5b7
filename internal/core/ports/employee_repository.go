package ports

import (
	"context"

	"github.com/staffdesk/employee-api/internal/core/domain"
)

// EmployeeFilter scopes list queries. An empty CreatedBy means no
// restriction (admin view). The policy layer builds it; the repository
// applies it verbatim.
type EmployeeFilter struct {
	CreatedBy string
}

// EmployeeRepository defines persistence operations for employee records.
// It has no authorization awareness: scoping is decided by the caller.
type EmployeeRepository interface {
	Insert(ctx context.Context, e *domain.Employee) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	// FindMany returns records matching filter, sorted by updatedAt
	// descending with _id descending as tie-break.
	FindMany(ctx context.Context, filter EmployeeFilter) ([]*domain.Employee, error)
	// UpdateByID applies a partial update and returns the matched and
	// modified counts.
	UpdateByID(ctx context.Context, id string, update domain.EmployeeUpdate) (matched, modified int64, err error)
	// DeleteByID removes a record and returns the deleted count.
	DeleteByID(ctx context.Context, id string) (int64, error)
}
