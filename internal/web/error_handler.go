package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/motoflow/web-dashboard/internal/core/domain"
)

// errorView feeds the rendered error page.
type errorView struct {
	Title   string
	Code    int
	Message string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends a session-expiry signal that escaped a handler back to login.
//   - Maps known failures to friendly rendered error pages.
//   - Logs unexpected errors internally without leaking details to the visitor.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.SessionExpired() {
			_ = c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		code, msg := resolveError(err, log, c)
		view := errorView{Title: http.StatusText(code), Code: code, Message: msg}
		if rerr := c.Render(code, "error", view); rerr != nil {
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (404 from the router, method not allowed, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	if errors.Is(err, domain.ErrBackendUnreachable) {
		return http.StatusBadGateway, "The service backend is unreachable."
	}

	// Unexpected error: log the real cause, show a generic page.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong on our side."
}
