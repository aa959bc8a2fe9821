package session

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/todo-list/internal/core/ports"
)

// Server keeps an opaque random token in the cookie and resolves it through
// a ports.SessionStore.
type Server struct {
	store ports.SessionStore
	opts  CookieOptions
	log   zerolog.Logger
}

func NewServer(store ports.SessionStore, opts CookieOptions, log zerolog.Logger) *Server {
	return &Server{store: store, opts: opts, log: log}
}

func (m *Server) Establish(c echo.Context, userID uint) error {
	ctx := c.Request().Context()
	if old, ok := readCookie(c, m.opts.name()); ok {
		if err := m.store.Delete(ctx, old); err != nil {
			m.log.Warn().Err(err).Msg("failed to drop previous session")
		}
	}

	token := uuid.NewString()
	if err := m.store.Save(ctx, token, userID, m.opts.TTL); err != nil {
		return err
	}
	c.SetCookie(m.opts.cookie(token))
	return nil
}

func (m *Server) CurrentUser(c echo.Context) (uint, bool) {
	token, ok := readCookie(c, m.opts.name())
	if !ok {
		return 0, false
	}
	id, found, err := m.store.Lookup(c.Request().Context(), token)
	if err != nil {
		m.log.Error().Err(err).Msg("session lookup failed")
		return 0, false
	}
	return id, found
}

func (m *Server) Clear(c echo.Context) error {
	if token, ok := readCookie(c, m.opts.name()); ok {
		if err := m.store.Delete(c.Request().Context(), token); err != nil {
			return err
		}
	}
	c.SetCookie(m.opts.expired())
	return nil
}
