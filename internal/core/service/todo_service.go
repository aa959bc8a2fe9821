package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/todo-list/internal/api/metrics"
	"github.com/99minutos/todo-list/internal/core/domain"
	"github.com/99minutos/todo-list/internal/core/ports"
)

type TodoService struct {
	repo    ports.TodoRepository
	metrics *metrics.Recorder
	log     zerolog.Logger
}

func NewTodoService(repo ports.TodoRepository, rec *metrics.Recorder, log zerolog.Logger) *TodoService {
	if rec == nil {
		rec = metrics.NewRecorder(nil)
	}
	return &TodoService{repo: repo, metrics: rec, log: log}
}

// Create stores a new item for ownerID. Blank content is rejected with
// domain.ErrEmptyContent before the repository is touched.
func (s *TodoService) Create(ctx context.Context, ownerID uint, in ports.TodoInput) (*domain.TodoItem, error) {
	if domain.IsBlank(in.Content) {
		s.log.Debug().Uint("user_id", ownerID).Msg("blank content ignored")
		return nil, domain.ErrEmptyContent
	}

	item, err := s.repo.Create(ctx, &domain.TodoItem{
		Content:  in.Content,
		DueDate:  in.DueDate,
		Priority: priorityOrDefault(in.Priority),
		Category: in.Category,
		UserID:   ownerID,
	})
	if err != nil {
		s.log.Error().Err(err).Uint("user_id", ownerID).Msg("failed to create item")
		return nil, err
	}

	s.metrics.ItemsCreatedTotal.Inc()
	s.log.Info().Uint("user_id", ownerID).Uint("item_id", item.ID).Msg("item created")
	return item, nil
}

// List returns all of the owner's items, or those whose content contains
// query when it is non-empty. The counters always cover every owned item.
func (s *TodoService) List(ctx context.Context, ownerID uint, query string) (*ports.TodoList, error) {
	var (
		items []*domain.TodoItem
		err   error
	)
	if query != "" {
		items, err = s.repo.SearchByOwner(ctx, ownerID, query)
	} else {
		items, err = s.repo.ListByOwner(ctx, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	completed, err := s.repo.CountCompletedByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count completed: %w", err)
	}
	total, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}

	return &ports.TodoList{Items: items, Query: query, Completed: completed, Total: total}, nil
}

func (s *TodoService) Get(ctx context.Context, ownerID, itemID uint) (*domain.TodoItem, error) {
	return s.owned(ctx, ownerID, itemID, "edit")
}

// Update replaces the editable fields; completed and owner are preserved.
func (s *TodoService) Update(ctx context.Context, ownerID, itemID uint, in ports.TodoInput) error {
	item, err := s.owned(ctx, ownerID, itemID, "edit")
	if err != nil {
		return err
	}
	if domain.IsBlank(in.Content) {
		return domain.ErrEmptyContent
	}

	item.Content = in.Content
	item.DueDate = in.DueDate
	item.Priority = priorityOrDefault(in.Priority)
	item.Category = in.Category

	if err := s.repo.Update(ctx, item); err != nil {
		s.log.Error().Err(err).Uint("item_id", itemID).Msg("failed to update item")
		return err
	}

	s.metrics.ItemsUpdatedTotal.Inc()
	s.log.Info().Uint("user_id", ownerID).Uint("item_id", itemID).Msg("item updated")
	return nil
}

// Complete marks the item done. Completing an already completed item is a
// successful no-op.
func (s *TodoService) Complete(ctx context.Context, ownerID, itemID uint) error {
	if _, err := s.owned(ctx, ownerID, itemID, "complete"); err != nil {
		return err
	}
	if err := s.repo.MarkCompleted(ctx, itemID); err != nil {
		s.log.Error().Err(err).Uint("item_id", itemID).Msg("failed to complete item")
		return err
	}

	s.metrics.ItemsCompletedTotal.Inc()
	s.log.Info().Uint("user_id", ownerID).Uint("item_id", itemID).Msg("item completed")
	return nil
}

func (s *TodoService) Delete(ctx context.Context, ownerID, itemID uint) error {
	if _, err := s.owned(ctx, ownerID, itemID, "delete"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		s.log.Error().Err(err).Uint("item_id", itemID).Msg("failed to delete item")
		return err
	}

	s.metrics.ItemsDeletedTotal.Inc()
	s.log.Info().Uint("user_id", ownerID).Uint("item_id", itemID).Msg("item deleted")
	return nil
}

// owned fetches the item and checks it belongs to ownerID.
func (s *TodoService) owned(ctx context.Context, ownerID, itemID uint, action string) (*domain.TodoItem, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.OwnedBy(ownerID) {
		s.metrics.OwnershipDeniedTotal.WithLabelValues(action).Inc()
		s.log.Warn().
			Uint("user_id", ownerID).
			Uint("item_id", itemID).
			Str("action", action).
			Msg("ownership check failed")
		return nil, domain.ErrNotOwner
	}
	return item, nil
}

func priorityOrDefault(p string) string {
	if p == "" {
		return domain.DefaultPriority
	}
	return p
}
