package ports

import (
	"context"

	"github.com/staffdesk/employee-api/internal/core/domain"
)

// UserRepository defines the interface for credential persistence.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}
