package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/the-chronicles/Creditflow/internal/domain/session"
)

// CookieName carries the signed session reference in the browser.
const CookieName = "creditflow_session"

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// SignSession mints the cookie value: a JWT holding only the session id.
// The remote bearer token never reaches the browser.
func SignSession(secret, sid string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSession validates the cookie value and returns the session id.
func ParseSession(secret, value string) (string, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(value, &claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if claims.SID == "" {
		return "", errors.New("empty session id")
	}
	return claims.SID, nil
}

// Session resolves the cookie into a session id on the request context.
// A missing or invalid cookie does not reject the request: unauthenticated
// calls proceed and the remote API decides what they may see.
func Session(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			sid, err := ParseSession(secret, cookie.Value)
			if err != nil {
				return next(c)
			}
			req := c.Request()
			c.SetRequest(req.WithContext(session.WithID(req.Context(), sid)))
			return next(c)
		}
	}
}

// NewCookie builds the session cookie for value, or an expired cookie when
// value is empty (logout).
func NewCookie(value string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	} else {
		cookie.MaxAge = int(ttl / time.Second)
	}
	return cookie
}
