package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/99minutos/todo-list/internal/core/domain"
	"github.com/99minutos/todo-list/internal/core/ports"
)

func TestRenderer_Index(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	data := &ports.TodoList{
		Items: []*domain.TodoItem{
			{ID: 1, Content: "<b>Buy milk</b>", DueDate: &due, Priority: "High", Category: "Errand"},
			{ID: 2, Content: "Done already", Completed: true, Priority: "Low"},
		},
		Completed: 1,
		Total:     2,
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, PageIndex, data, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<title>My Todos</title>",
		"1 of 2 completed",
		"&lt;b&gt;Buy milk&lt;/b&gt;",
		`<span class="due">2024-01-01</span>`,
		`href="/complete/1"`,
		`href="/edit/2"`,
		`class="item completed"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, `href="/complete/2"`) {
		t.Error("completed item must not offer a complete link")
	}
}

func TestRenderer_Edit(t *testing.T) {
	r, _ := New()
	item := &domain.TodoItem{ID: 5, Content: "Call mom", Priority: "Medium"}

	var buf bytes.Buffer
	if err := r.Render(&buf, PageEdit, item, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), `action="/edit/5"`) || !strings.Contains(buf.String(), `value="Call mom"`) {
		t.Fatalf("unexpected edit page: %s", buf.String())
	}
}

func TestRenderer_LoginAndRegister(t *testing.T) {
	r, _ := New()
	for page, title := range map[string]string{PageLogin: "Login", PageRegister: "Register"} {
		var buf bytes.Buffer
		if err := r.Render(&buf, page, nil, nil); err != nil {
			t.Fatalf("render %s: %v", page, err)
		}
		if !strings.Contains(buf.String(), "<title>"+title+"</title>") {
			t.Errorf("%s: missing title", page)
		}
	}
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, _ := New()
	if err := r.Render(&bytes.Buffer{}, "nope.html", nil, nil); err == nil {
		t.Fatal("expected error for unknown page")
	}
}
