package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/motoflow/web-dashboard/internal/core/domain"
	"github.com/motoflow/web-dashboard/internal/core/service"
)

const (
	sessionContextKey = "session"
	sidContextKey     = "session_id"
)

// WithSession resolves the session cookie into a domain.Session exactly once
// per request and injects it into the Echo context before any page handler or
// guard runs. No page content is produced until this read has completed, so a
// protected page never flashes in a half-known auth state.
func WithSession(sessions *service.SessionService, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if cookie, err := c.Cookie(cookieName); err == nil {
				sid = cookie.Value
			}

			c.Set(sidContextKey, sid)
			c.Set(sessionContextKey, sessions.Resolve(c.Request().Context(), sid))
			return next(c)
		}
	}
}

// SessionFrom returns the session resolved for this request. Requests that
// never passed WithSession read as Anonymous.
func SessionFrom(c echo.Context) domain.Session {
	if s, ok := c.Get(sessionContextKey).(domain.Session); ok {
		return s
	}
	return domain.Anonymous
}

// SessionID returns the session cookie value for this request, or "".
func SessionID(c echo.Context) string {
	if sid, ok := c.Get(sidContextKey).(string); ok {
		return sid
	}
	return ""
}
