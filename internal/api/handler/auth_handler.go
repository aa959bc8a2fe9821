package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/todo-list/internal/api/session"
	"github.com/99minutos/todo-list/internal/api/view"
	"github.com/99minutos/todo-list/internal/core/domain"
	"github.com/99minutos/todo-list/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    session.Manager
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, sessions session.Manager, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, log: log}
}

// RegisterPage renders the registration form.
//
// @Summary      Registration form
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /register [get]
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageRegister, nil)
}

// Register creates a new account and sends the client to the login page.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302
// @Failure      400  {string}  string
// @Failure      409  {string}  string  "Username already exists"
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form credentialsForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authService.Register(c.Request().Context(), form.Username, form.Password); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/login")
}

// LoginPage renders the login form.
//
// @Summary      Login form
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageLogin, nil)
}

// Login checks the credentials and establishes the session.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302
// @Failure      400  {string}  string
// @Failure      401  {string}  string  "Invalid credentials"
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var form credentialsForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Authenticate(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.log.Info().Str("username", form.Username).Msg("login rejected")
		}
		return err
	}

	if err := h.sessions.Establish(c, user.ID); err != nil {
		return err
	}
	h.log.Info().Uint("user_id", user.ID).Msg("login")
	return c.Redirect(http.StatusFound, "/")
}

// Logout ends the session.
//
// @Summary      Logout
// @Tags         auth
// @Success      302
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Clear(c); err != nil {
		h.log.Warn().Err(err).Msg("failed to clear session")
	}
	return c.Redirect(http.StatusFound, "/login")
}
