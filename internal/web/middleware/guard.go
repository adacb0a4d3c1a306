package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/motoflow/web-dashboard/internal/core/domain"
)

// Requirement declares what a protected page needs from the current session.
type Requirement struct {
	roles []domain.Role // empty means any authenticated session
}

// AnyAuthenticated admits every authenticated session regardless of role.
func AnyAuthenticated() Requirement {
	return Requirement{}
}

// RoleIn admits only sessions whose role is in the given set.
func RoleIn(roles ...domain.Role) Requirement {
	return Requirement{roles: roles}
}

// Decision is the route guard's verdict for one navigation.
type Decision int

const (
	Allow Decision = iota
	ToLogin
	ToHome
)

// Decide is the pure redirect policy evaluated on each protected-page
// request. Anonymous visitors go to the login screen; authenticated visitors
// with an insufficient role go to the dashboard home — fail closed, the
// restricted view is never rendered.
func Decide(s domain.Session, req Requirement) Decision {
	if !s.Authenticated() {
		return ToLogin
	}
	if len(req.roles) == 0 {
		return Allow
	}
	for _, r := range req.roles {
		if s.Role == r {
			return Allow
		}
	}
	return ToHome
}

// Guard enforces a Requirement on a route. It expects WithSession to have run.
func Guard(req Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch Decide(SessionFrom(c), req) {
			case ToLogin:
				return c.Redirect(http.StatusSeeOther, "/login")
			case ToHome:
				return c.Redirect(http.StatusSeeOther, "/dashboard")
			default:
				return next(c)
			}
		}
	}
}
