// Package session maps a client to its authenticated user between requests.
//
// Two managers are provided: Cookie keeps the user id in a signed JWT cookie,
// Server keeps an opaque token in the cookie and the user id in a
// ports.SessionStore.
package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Manager is the per-client session context consulted by protected routes.
type Manager interface {
	// Establish binds the client to userID, replacing any previous session.
	Establish(c echo.Context, userID uint) error
	// CurrentUser reports the authenticated user, if any. Invalid, expired or
	// unknown sessions read as absent.
	CurrentUser(c echo.Context) (uint, bool)
	// Clear ends the session. Clearing an absent session is not an error.
	Clear(c echo.Context) error
}

// CookieOptions are shared by both managers.
type CookieOptions struct {
	Name string
	// TTL bounds the session lifetime; zero means until Clear.
	TTL    time.Duration
	Secure bool
}

func (o CookieOptions) name() string {
	if o.Name == "" {
		return "todo_session"
	}
	return o.Name
}

func (o CookieOptions) cookie(value string) *http.Cookie {
	ck := &http.Cookie{
		Name:     o.name(),
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if o.TTL > 0 {
		ck.MaxAge = int(o.TTL.Seconds())
		ck.Expires = time.Now().Add(o.TTL)
	}
	return ck
}

func (o CookieOptions) expired() *http.Cookie {
	return &http.Cookie{
		Name:     o.name(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	}
}

func readCookie(c echo.Context, name string) (string, bool) {
	ck, err := c.Cookie(name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}
