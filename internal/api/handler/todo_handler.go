package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/todo-list/internal/api/view"
	"github.com/99minutos/todo-list/internal/core/domain"
	"github.com/99minutos/todo-list/internal/core/ports"
)

type TodoHandler struct {
	todoService ports.TodoService
	log         zerolog.Logger
}

func NewTodoHandler(todoService ports.TodoService, log zerolog.Logger) *TodoHandler {
	return &TodoHandler{todoService: todoService, log: log}
}

// Index lists the caller's items, filtered by ?q= when present.
//
// @Summary      List todo items
// @Tags         todos
// @Produce      html
// @Param        q  query  string  false  "Content substring"
// @Success      200
// @Failure      302  "No session"
// @Router       / [get]
func (h *TodoHandler) Index(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	var q listQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	list, err := h.todoService.List(c.Request().Context(), userID, q.Q)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, view.PageIndex, list)
}

// Create adds an item from the index page form. Blank content is ignored.
//
// @Summary      Create a todo item
// @Tags         todos
// @Accept       x-www-form-urlencoded
// @Param        content   formData  string  false  "Content"
// @Param        due_date  formData  string  false  "Due date (YYYY-MM-DD)"
// @Param        priority  formData  string  false  "Priority"
// @Param        category  formData  string  false  "Category"
// @Success      302
// @Failure      400  {string}  string  "Invalid date format"
// @Router       / [post]
func (h *TodoHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	in, err := h.bindInput(c)
	if err != nil {
		return err
	}

	if _, err := h.todoService.Create(c.Request().Context(), userID, in); err != nil && !errors.Is(err, domain.ErrEmptyContent) {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

// Complete marks an item done.
//
// @Summary      Complete a todo item
// @Tags         todos
// @Param        id  path  int  true  "Item id"
// @Success      302
// @Failure      404  {string}  string  "Item not found"
// @Router       /complete/{id} [get]
func (h *TodoHandler) Complete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.todoService.Complete(c.Request().Context(), userID, id); err != nil && !errors.Is(err, domain.ErrNotOwner) {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

// Delete removes an item.
//
// @Summary      Delete a todo item
// @Tags         todos
// @Param        id  path  int  true  "Item id"
// @Success      302
// @Failure      404  {string}  string  "Item not found"
// @Router       /delete/{id} [get]
func (h *TodoHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.todoService.Delete(c.Request().Context(), userID, id); err != nil && !errors.Is(err, domain.ErrNotOwner) {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

// EditPage renders the edit form for an item.
//
// @Summary      Edit form
// @Tags         todos
// @Produce      html
// @Param        id  path  int  true  "Item id"
// @Success      200
// @Failure      404  {string}  string  "Item not found"
// @Router       /edit/{id} [get]
func (h *TodoHandler) EditPage(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	item, err := h.todoService.Get(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotOwner) {
			return c.Redirect(http.StatusFound, "/")
		}
		return err
	}
	return c.Render(http.StatusOK, view.PageEdit, item)
}

// Edit saves the edit form. Ownership is resolved before the form is read,
// so a foreign item is a no-op whatever was submitted.
//
// @Summary      Update a todo item
// @Tags         todos
// @Accept       x-www-form-urlencoded
// @Param        id        path      int     true   "Item id"
// @Param        content   formData  string  true   "Content"
// @Param        due_date  formData  string  false  "Due date (YYYY-MM-DD)"
// @Param        priority  formData  string  false  "Priority"
// @Param        category  formData  string  false  "Category"
// @Success      302
// @Failure      400  {string}  string  "Invalid date format"
// @Failure      404  {string}  string  "Item not found"
// @Router       /edit/{id} [post]
func (h *TodoHandler) Edit(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if _, err := h.todoService.Get(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrNotOwner) {
			return c.Redirect(http.StatusFound, "/")
		}
		return err
	}
	in, err := h.bindInput(c)
	if err != nil {
		return err
	}

	err = h.todoService.Update(c.Request().Context(), userID, id, in)
	if err != nil && !errors.Is(err, domain.ErrNotOwner) && !errors.Is(err, domain.ErrEmptyContent) {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

// bindInput reads and validates the item form. Blank content makes the whole
// submission a no-op, so it is returned before any length or date check.
func (h *TodoHandler) bindInput(c echo.Context) (ports.TodoInput, error) {
	var form todoForm
	if err := c.Bind(&form); err != nil {
		return ports.TodoInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if domain.IsBlank(form.Content) {
		return ports.TodoInput{Content: form.Content}, nil
	}
	if err := c.Validate(&form); err != nil {
		return ports.TodoInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.TodoInput{Content: form.Content, Priority: form.Priority, Category: form.Category}
	due, err := domain.ParseDueDate(form.DueDate)
	if err != nil {
		return ports.TodoInput{}, err
	}
	in.DueDate = due
	return in, nil
}
