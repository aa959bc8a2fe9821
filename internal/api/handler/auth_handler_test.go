package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/todo-list/internal/api/view"
	"github.com/99minutos/todo-list/internal/core/domain"
)

type stubAuthService struct {
	registerFn     func(ctx context.Context, username, password string) (*domain.User, error)
	authenticateFn func(ctx context.Context, username, password string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, username, password)
}

// stubSessions records the user bound to the client without touching cookies.
type stubSessions struct {
	userID  uint
	cleared bool
}

func (s *stubSessions) Establish(_ echo.Context, userID uint) error {
	s.userID = userID
	return nil
}

func (s *stubSessions) CurrentUser(echo.Context) (uint, bool) {
	return s.userID, s.userID != 0
}

func (s *stubSessions) Clear(echo.Context) error {
	s.userID = 0
	s.cleared = true
	return nil
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	r, err := view.New()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	e.Renderer = r
	return e
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubAuthService{
		registerFn: func(_ context.Context, username, password string) (*domain.User, error) {
			if username != "alice" || password != "pw1" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{ID: 1, Username: username}, nil
		},
	}
	h := NewAuthHandler(stub, &stubSessions{}, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/register", url.Values{"username": {"alice"}, "password": {"pw1"}}), rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, &stubSessions{}, zerolog.Nop())

	c := e.NewContext(formRequest(http.MethodPost, "/register", url.Values{"username": {"bob"}, "password": {"x"}}), httptest.NewRecorder())

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_MissingField(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string) (*domain.User, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, &stubSessions{}, zerolog.Nop())

	c := e.NewContext(formRequest(http.MethodPost, "/register", url.Values{"username": {"bob"}}), httptest.NewRecorder())

	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_UsernameTooLong(t *testing.T) {
	e := newTestEcho(t)
	h := NewAuthHandler(&stubAuthService{}, &stubSessions{}, zerolog.Nop())

	long := strings.Repeat("a", 101)
	c := e.NewContext(formRequest(http.MethodPost, "/register", url.Values{"username": {long}, "password": {"x"}}), httptest.NewRecorder())

	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if !strings.Contains(he.Message.(string), "username") {
		t.Fatalf("expected message to name the field, got %v", he.Message)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubAuthService{
		authenticateFn: func(_ context.Context, username, password string) (*domain.User, error) {
			return &domain.User{ID: 7, Username: username}, nil
		},
	}
	sessions := &stubSessions{}
	h := NewAuthHandler(stub, sessions, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"pw1"}}), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected redirect to /, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if sessions.userID != 7 {
		t.Fatalf("expected session for user 7, got %d", sessions.userID)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho(t)
	stub := &stubAuthService{
		authenticateFn: func(context.Context, string, string) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	sessions := &stubSessions{}
	h := NewAuthHandler(stub, sessions, zerolog.Nop())

	c := e.NewContext(formRequest(http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"wrong"}}), httptest.NewRecorder())

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sessions.userID != 0 {
		t.Fatal("session must not be established")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho(t)
	sessions := &stubSessions{userID: 3}
	h := NewAuthHandler(&stubAuthService{}, sessions, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/logout", nil), rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !sessions.cleared || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected cleared session and redirect, got cleared=%v loc=%q", sessions.cleared, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestAuthHandler_Pages(t *testing.T) {
	e := newTestEcho(t)
	h := NewAuthHandler(&stubAuthService{}, &stubSessions{}, zerolog.Nop())

	for path, fn := range map[string]echo.HandlerFunc{"/login": h.LoginPage, "/register": h.RegisterPage} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, path, nil), rec)
		if err := fn(c); err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `name="username"`) {
			t.Fatalf("%s: unexpected page %d %s", path, rec.Code, rec.Body.String())
		}
	}
}
