package ports

import (
	"context"

	"github.com/99minutos/todo-list/internal/core/domain"
)

// UserRepository persists credentials. Create returns domain.ErrUserExists
// when the username is taken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
