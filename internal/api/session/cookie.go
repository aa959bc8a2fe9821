package session

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Cookie stores the user id client-side in an HS256-signed JWT.
type Cookie struct {
	secret []byte
	opts   CookieOptions
	now    func() time.Time
}

func NewCookie(secret string, opts CookieOptions) *Cookie {
	return &Cookie{secret: []byte(secret), opts: opts, now: time.Now}
}

func (m *Cookie) Establish(c echo.Context, userID uint) error {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:  strconv.FormatUint(uint64(userID), 10),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if m.opts.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.opts.TTL))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}
	c.SetCookie(m.opts.cookie(signed))
	return nil
}

func (m *Cookie) CurrentUser(c echo.Context) (uint, bool) {
	raw, ok := readCookie(c, m.opts.name())
	if !ok {
		return 0, false
	}

	var claims jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !tkn.Valid {
		return 0, false
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (m *Cookie) Clear(c echo.Context) error {
	c.SetCookie(m.opts.expired())
	return nil
}

