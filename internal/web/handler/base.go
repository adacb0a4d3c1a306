package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/motoflow/web-dashboard/internal/core/domain"
	"github.com/motoflow/web-dashboard/internal/core/service"
	"github.com/motoflow/web-dashboard/internal/web/middleware"
)

// CookieConfig describes the session cookie the dashboard issues.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// Base carries the pieces every page handler needs: the session service and
// the cookie settings. Page handlers embed it.
type Base struct {
	Sessions *service.SessionService
	Cookies  CookieConfig
}

// view assembles the fields shared by every rendered page: the resolved
// session and its role's menu.
func (b Base) view(c echo.Context, title string) baseView {
	sess := middleware.SessionFrom(c)
	return baseView{
		Title:   title,
		Session: sess,
		Menu:    domain.MenuFor(sess.Role),
	}
}

func (b Base) issueCookie(c echo.Context, sid string) {
	c.SetCookie(&http.Cookie{
		Name:     b.Cookies.Name,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(b.Cookies.TTL.Seconds()),
		HttpOnly: true,
		Secure:   b.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (b Base) clearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     b.Cookies.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   b.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// endExpiredSession is the policy for a backend 401/403 on an authenticated
// call: equivalent to logout. The stored session is discarded, the cookie
// dropped, and the visitor lands on the login screen.
func (b Base) endExpiredSession(c echo.Context) error {
	b.Sessions.Expire(c.Request().Context(), middleware.SessionID(c))
	b.clearCookie(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}

// sessionExpired reports whether err is the backend's token-rejected signal.
func sessionExpired(err error) bool {
	var apiErr *domain.APIError
	return errors.As(err, &apiErr) && apiErr.SessionExpired()
}

// errorText converts a gateway failure into the inline message a page shows.
// API errors surface the server's message verbatim.
func errorText(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, domain.ErrBackendUnreachable) {
		return "The service is temporarily unreachable. Please try again."
	}
	return "Something went wrong. Please try again."
}
