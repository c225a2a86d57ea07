// Package middleware contains reusable HTTP middleware.  Planning sessions
// are anonymous: opening a session mints a signed token whose subject is a
// random session id, and every planner route requires that token so state
// reads and writes land under the right key namespace.
package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const sessionContextKey = "session_id"

// NewSessionToken signs an HS256 JWT binding the given session id for ttl.
// The token carries standard claims only: subject (sub), expiration (exp)
// and issued at (iat).
func NewSessionToken(secret, sessionID string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub": sessionID,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// SessionAuth returns an Echo middleware that validates a Bearer session
// token and injects its session id into the request context.  Handlers
// read it back through SessionID.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// Reject any signing method other than HMAC.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			sub, _ := claims["sub"].(string)
			if sub == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			c.Set(sessionContextKey, sub)
			return next(c)
		}
	}
}

// SessionID extracts the session id injected by SessionAuth.
func SessionID(c echo.Context) (string, error) {
	sid, _ := c.Get(sessionContextKey).(string)
	if sid == "" {
		return "", errors.New("no session in context")
	}
	return sid, nil
}
