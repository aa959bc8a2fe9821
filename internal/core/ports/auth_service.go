package ports

import (
	"context"

	"github.com/99minutos/todo-list/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Authenticate returns domain.ErrInvalidCredentials for both an unknown
	// username and a wrong password.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}
