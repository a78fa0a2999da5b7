package ports

import (
	"context"

	"github.com/staffdesk/employee-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	// Login returns a signed access token and the user's role.
	Login(ctx context.Context, username, password string) (string, string, error)
	ChangePassword(ctx context.Context, identity domain.Identity, oldPassword, newPassword string) error
}
