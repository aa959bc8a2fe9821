package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultPriority is applied when an item is submitted without a priority.
const DefaultPriority = "Medium"

// DateLayout is the calendar-date wire format for due dates.
const DateLayout = "2006-01-02"

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrNotOwner          = errors.New("item belongs to another user")
	ErrEmptyContent      = errors.New("content is empty")
	ErrInvalidDateFormat = errors.New("invalid due date, expected YYYY-MM-DD")
)

// TodoItem is a single entry on a user's list.
type TodoItem struct {
	ID        uint       `json:"id"`
	Content   string     `json:"content"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Priority  string     `json:"priority"`
	Category  string     `json:"category,omitempty"`
	UserID    uint       `json:"user_id"`
}

// OwnedBy reports whether userID owns the item.
func (t *TodoItem) OwnedBy(userID uint) bool {
	return t != nil && t.UserID == userID
}

// DueDateString renders the due date as YYYY-MM-DD, or "" when absent.
func (t *TodoItem) DueDateString() string {
	if t == nil || t.DueDate == nil {
		return ""
	}
	return t.DueDate.Format(DateLayout)
}

// IsBlank reports whether content is empty after trimming whitespace.
func IsBlank(content string) bool {
	return strings.TrimSpace(content) == ""
}

// ParseDueDate converts a form value into an optional calendar date.
// The empty string means no due date.
func ParseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return &d, nil
}
