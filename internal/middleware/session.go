package middleware

import (
	"club-service/internal/authz"
	"club-service/internal/session"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "club_session"

const principalContextKey = "principal"

// Session returns middleware that resolves the session cookie to a principal
// and stores it in the echo context. It performs resolution only: it never
// blocks a request and makes no authorization decision. A missing, expired,
// or malformed cookie leaves the request anonymous.
func Session(sessions session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err == nil && cookie.Value != "" {
				if p, ok := sessions.Get(cookie.Value); ok {
					c.Set(principalContextKey, p)
				}
			}
			return next(c)
		}
	}
}

// PrincipalFromContext returns the resolved principal for the request, or the
// anonymous principal if the session did not resolve.
func PrincipalFromContext(c echo.Context) authz.Principal {
	if p, ok := c.Get(principalContextKey).(authz.Principal); ok {
		return p
	}
	return authz.Nobody
}

// SessionToken returns the raw session token from the request cookie.
func SessionToken(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   false, // Allow HTTP for local development
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
