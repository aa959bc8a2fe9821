// Package view renders the HTML pages through echo's Renderer hook.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// Page names accepted by Render.
const (
	PageIndex    = "index.html"
	PageLogin    = "login.html"
	PageRegister = "register.html"
	PageEdit     = "edit.html"
)

//go:embed templates/*.html
var files embed.FS

// Renderer holds one parsed template set per page, each combined with layout.html.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageIndex, PageLogin, PageRegister, PageEdit} {
		t, err := template.New(page).ParseFS(files, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render satisfies echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
