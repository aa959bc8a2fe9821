package domain

import (
	"errors"
	"testing"
)

func TestParseDueDate(t *testing.T) {
	d, err := ParseDueDate("2024-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d == nil || d.Format(DateLayout) != "2024-01-01" {
		t.Fatalf("unexpected date: %v", d)
	}
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Fatalf("expected midnight, got %v", d)
	}
}

func TestParseDueDate_Empty(t *testing.T) {
	d, err := ParseDueDate("")
	if err != nil || d != nil {
		t.Fatalf("expected absent date, got %v, %v", d, err)
	}
}

func TestParseDueDate_Invalid(t *testing.T) {
	for _, in := range []string{"01/02/2024", "2024-13-01", "tomorrow", "2024-1-1"} {
		if _, err := ParseDueDate(in); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("%q: expected ErrInvalidDateFormat, got %v", in, err)
		}
	}
}

func TestTodoItem_OwnedBy(t *testing.T) {
	item := &TodoItem{ID: 1, UserID: 7}
	if !item.OwnedBy(7) {
		t.Error("expected owner 7 to own the item")
	}
	if item.OwnedBy(8) {
		t.Error("user 8 must not own the item")
	}
	var missing *TodoItem
	if missing.OwnedBy(7) {
		t.Error("nil item has no owner")
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank("  \t\n") {
		t.Error("whitespace should be blank")
	}
	if IsBlank(" x ") {
		t.Error("non-whitespace content is not blank")
	}
}
