package ports

import (
	"context"

	"github.com/99minutos/todo-list/internal/core/domain"
)

// TodoRepository defines persistence operations for todo items.
// Ownership is not checked here; callers enforce it.
type TodoRepository interface {
	Create(ctx context.Context, item *domain.TodoItem) (*domain.TodoItem, error)
	// FindByID returns domain.ErrItemNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*domain.TodoItem, error)
	// Update replaces content, due date, priority and category.
	Update(ctx context.Context, item *domain.TodoItem) error
	MarkCompleted(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	// ListByOwner returns the owner's items ordered by id ascending.
	ListByOwner(ctx context.Context, ownerID uint) ([]*domain.TodoItem, error)
	// SearchByOwner returns the owner's items whose content contains substr,
	// ignoring case.
	SearchByOwner(ctx context.Context, ownerID uint, substr string) ([]*domain.TodoItem, error)
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
	CountCompletedByOwner(ctx context.Context, ownerID uint) (int64, error)
	Ping(ctx context.Context) error
}
