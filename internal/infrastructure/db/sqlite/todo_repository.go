package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/99minutos/todo-list/internal/core/domain"
)

type todoRow struct {
	ID        uint       `gorm:"primaryKey"`
	Content   string     `gorm:"size:200"`
	Completed bool       `gorm:"not null;default:false"`
	DueDate   *time.Time `gorm:"type:date"`
	Priority  string     `gorm:"size:10;default:Medium"`
	Category  string     `gorm:"size:50"`
	UserID    uint       `gorm:"index;not null"`
}

func (todoRow) TableName() string { return "todo_items" }

// TodoRepository implements ports.TodoRepository on SQLite.
type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, item *domain.TodoItem) (*domain.TodoItem, error) {
	row := fromDomain(item)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return row.toDomain(), nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id uint) (*domain.TodoItem, error) {
	var row todoRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return row.toDomain(), nil
}

// Update writes the editable columns only. A map is used so that a cleared
// due date or empty category is written instead of skipped as a zero value.
func (r *TodoRepository) Update(ctx context.Context, item *domain.TodoItem) error {
	res := r.db.WithContext(ctx).Model(&todoRow{}).Where("id = ?", item.ID).Updates(map[string]any{
		"content":  item.Content,
		"due_date": item.DueDate,
		"priority": item.Priority,
		"category": item.Category,
	})
	if res.Error != nil {
		return fmt.Errorf("update item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *TodoRepository) MarkCompleted(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&todoRow{}).Where("id = ?", id).Update("completed", true)
	if res.Error != nil {
		return fmt.Errorf("complete item: %w", res.Error)
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&todoRow{}, id).Error; err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*domain.TodoItem, error) {
	var rows []todoRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return toDomainSlice(rows), nil
}

// SearchByOwner matches with LIKE, which SQLite evaluates case-insensitively
// for ASCII. Wildcards in substr are escaped so they match literally.
func (r *TodoRepository) SearchByOwner(ctx context.Context, ownerID uint, substr string) ([]*domain.TodoItem, error) {
	var rows []todoRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND content LIKE ? ESCAPE '\\'", ownerID, "%"+escapeLike(substr)+"%").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return toDomainSlice(rows), nil
}

func (r *TodoRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&todoRow{}).Where("user_id = ?", ownerID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

func (r *TodoRepository) CountCompletedByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&todoRow{}).
		Where("user_id = ? AND completed = ?", ownerID, true).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count completed items: %w", err)
	}
	return n, nil
}

func (r *TodoRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func fromDomain(t *domain.TodoItem) todoRow {
	return todoRow{
		ID:        t.ID,
		Content:   t.Content,
		Completed: t.Completed,
		DueDate:   t.DueDate,
		Priority:  t.Priority,
		Category:  t.Category,
		UserID:    t.UserID,
	}
}

func (row *todoRow) toDomain() *domain.TodoItem {
	item := &domain.TodoItem{
		ID:        row.ID,
		Content:   row.Content,
		Completed: row.Completed,
		Priority:  row.Priority,
		Category:  row.Category,
		UserID:    row.UserID,
	}
	if row.DueDate != nil {
		d := time.Date(row.DueDate.Year(), row.DueDate.Month(), row.DueDate.Day(), 0, 0, 0, 0, time.UTC)
		item.DueDate = &d
	}
	return item
}

func toDomainSlice(rows []todoRow) []*domain.TodoItem {
	items := make([]*domain.TodoItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toDomain())
	}
	return items
}
