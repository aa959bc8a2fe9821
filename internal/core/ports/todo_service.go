package ports

import (
	"context"
	"time"

	"github.com/99minutos/todo-list/internal/core/domain"
)

// TodoInput carries the editable fields of an item.
type TodoInput struct {
	Content  string
	DueDate  *time.Time // optional
	Priority string
	Category string
}

// TodoList is the list view: the visible items plus owner-wide counters.
type TodoList struct {
	Items     []*domain.TodoItem
	Query     string
	Completed int64
	Total     int64
}

// TodoService defines the owner-scoped use cases behind the list routes.
// Mutations on an item the caller does not own return domain.ErrNotOwner and
// leave the item untouched.
type TodoService interface {
	Create(ctx context.Context, ownerID uint, in TodoInput) (*domain.TodoItem, error)
	List(ctx context.Context, ownerID uint, query string) (*TodoList, error)
	Get(ctx context.Context, ownerID, itemID uint) (*domain.TodoItem, error)
	Update(ctx context.Context, ownerID, itemID uint, in TodoInput) error
	Complete(ctx context.Context, ownerID, itemID uint) error
	Delete(ctx context.Context, ownerID, itemID uint) error
}
