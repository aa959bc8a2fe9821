package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// roundTrip establishes a session on one request and returns a context for a
// follow-up request that carries the resulting cookies.
func roundTrip(t *testing.T, m Manager, userID uint) (echo.Context, []*http.Cookie) {
	t.Helper()
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), rec)
	if err := m.Establish(c, userID); err != nil {
		t.Fatalf("establish: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	return e.NewContext(req, httptest.NewRecorder()), cookies
}

func TestCookie_EstablishAndCurrentUser(t *testing.T) {
	m := NewCookie(testSecret, CookieOptions{Name: "sid"})
	c, cookies := roundTrip(t, m, 7)

	if cookies[0].Name != "sid" || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookie: %+v", cookies[0])
	}
	id, ok := m.CurrentUser(c)
	if !ok || id != 7 {
		t.Fatalf("expected user 7, got %d (%v)", id, ok)
	}
}

func TestCookie_NoCookie(t *testing.T) {
	m := NewCookie(testSecret, CookieOptions{})
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if _, ok := m.CurrentUser(c); ok {
		t.Fatal("expected no session")
	}
}

func TestCookie_WrongSecret(t *testing.T) {
	c, _ := roundTrip(t, NewCookie(testSecret, CookieOptions{}), 7)

	other := NewCookie("another-secret-another-secret-xx", CookieOptions{})
	if _, ok := other.CurrentUser(c); ok {
		t.Fatal("cookie signed with another secret must be rejected")
	}
}

func TestCookie_RejectsUnsignedToken(t *testing.T) {
	m := NewCookie(testSecret, CookieOptions{})
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "todo_session", Value: unsigned})
	c := echo.New().NewContext(req, httptest.NewRecorder())

	if _, ok := m.CurrentUser(c); ok {
		t.Fatal("alg=none token must be rejected")
	}
}

func TestCookie_Expiry(t *testing.T) {
	m := NewCookie(testSecret, CookieOptions{TTL: time.Hour})
	c, cookies := roundTrip(t, m, 3)

	if cookies[0].MaxAge != 3600 {
		t.Fatalf("expected Max-Age 3600, got %d", cookies[0].MaxAge)
	}
	if _, ok := m.CurrentUser(c); !ok {
		t.Fatal("fresh session must be valid")
	}

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, ok := m.CurrentUser(c); ok {
		t.Fatal("expired session must be rejected")
	}
}

func TestCookie_Clear(t *testing.T) {
	m := NewCookie(testSecret, CookieOptions{})
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/logout", nil), rec)

	if err := m.Clear(c); err != nil {
		t.Fatalf("clear: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expiring cookie, got %+v", cookies)
	}
}

// ---------------------------------------------------------------------------
// Server-side sessions
// ---------------------------------------------------------------------------

type memoryStore struct {
	mu   sync.Mutex
	data map[string]uint
	ttls map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]uint{}, ttls: map[string]time.Duration{}}
}

func (s *memoryStore) Save(_ context.Context, token string, userID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = userID
	s.ttls[token] = ttl
	return nil
}

func (s *memoryStore) Lookup(_ context.Context, token string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.data[token]
	return id, ok, nil
}

func (s *memoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, token)
	return nil
}

func TestServer_Lifecycle(t *testing.T) {
	store := newMemoryStore()
	m := NewServer(store, CookieOptions{TTL: time.Minute}, zerolog.Nop())

	c, cookies := roundTrip(t, m, 11)
	token := cookies[0].Value
	if store.data[token] != 11 || store.ttls[token] != time.Minute {
		t.Fatalf("session not persisted: %+v", store.data)
	}

	id, ok := m.CurrentUser(c)
	if !ok || id != 11 {
		t.Fatalf("expected user 11, got %d (%v)", id, ok)
	}

	if err := m.Clear(c); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, exists := store.data[token]; exists {
		t.Fatal("token still stored after clear")
	}
	if _, ok := m.CurrentUser(c); ok {
		t.Fatal("cleared session must read as absent")
	}
}

func TestServer_ReplayedCookieAfterClear(t *testing.T) {
	m := NewServer(newMemoryStore(), CookieOptions{}, zerolog.Nop())

	c, cookies := roundTrip(t, m, 12)
	if err := m.Clear(c); err != nil {
		t.Fatalf("clear: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	if _, ok := m.CurrentUser(echo.New().NewContext(req, httptest.NewRecorder())); ok {
		t.Fatal("a copied cookie must not outlive logout")
	}
}

func TestServer_UnknownToken(t *testing.T) {
	m := NewServer(newMemoryStore(), CookieOptions{}, zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "todo_session", Value: "forged"})
	c := echo.New().NewContext(req, httptest.NewRecorder())

	if _, ok := m.CurrentUser(c); ok {
		t.Fatal("unknown token must read as absent")
	}
}

func TestServer_EstablishReplacesPrevious(t *testing.T) {
	store := newMemoryStore()
	m := NewServer(store, CookieOptions{}, zerolog.Nop())

	c, first := roundTrip(t, m, 1)
	if err := m.Establish(c, 2); err != nil {
		t.Fatalf("establish: %v", err)
	}
	if _, exists := store.data[first[0].Value]; exists {
		t.Fatal("previous token must be dropped")
	}
	if len(store.data) != 1 {
		t.Fatalf("expected a single live session, got %d", len(store.data))
	}
}
