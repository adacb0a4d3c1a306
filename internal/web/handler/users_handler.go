package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/motoflow/web-dashboard/internal/core/domain"
	"github.com/motoflow/web-dashboard/internal/core/ports"
	"github.com/motoflow/web-dashboard/internal/web/middleware"
)

// UsersHandler serves the admin's user management screen, including the
// one-directional Customer → Mechanic promotion.
type UsersHandler struct {
	Base
	backend ports.BackendGateway
}

func NewUsersHandler(backend ports.BackendGateway, base Base) *UsersHandler {
	return &UsersHandler{Base: base, backend: backend}
}

type promoteForm struct {
	UserID int `form:"user_id" validate:"required,gt=0"`
}

// List renders the user table. The promote control appears only on Customer
// rows; the viewer's own row is marked instead of actionable.
func (h *UsersHandler) List(c echo.Context) error {
	return h.renderList(c, "")
}

// Promote requests the Customer → Mechanic escalation and re-fetches. The
// client never flips a role locally; the refreshed list reflects whatever the
// server decided.
func (h *UsersHandler) Promote(c echo.Context) error {
	var form promoteForm
	if err := c.Bind(&form); err != nil {
		return h.renderList(c, "Invalid form submission.")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderList(c, err.Error())
	}

	sess := middleware.SessionFrom(c)
	if _, err := h.backend.PromoteUser(c.Request().Context(), sess.Token, form.UserID, domain.RoleMechanic); err != nil {
		if sessionExpired(err) {
			return h.endExpiredSession(c)
		}
		return h.renderList(c, errorText(err))
	}

	return c.Redirect(http.StatusSeeOther, "/dashboard/users")
}

func (h *UsersHandler) renderList(c echo.Context, errMsg string) error {
	sess := middleware.SessionFrom(c)
	view := usersView{
		baseView: h.view(c, "User Management"),
		Query:    strings.TrimSpace(c.QueryParam("q")),
	}
	view.Error = errMsg

	users, err := h.backend.ListUsers(c.Request().Context(), sess.Token)
	if err != nil {
		if sessionExpired(err) {
			return h.endExpiredSession(c)
		}
		if view.Error == "" {
			view.Error = errorText(err)
		}
		return c.Render(http.StatusOK, "users", view)
	}

	query := strings.ToLower(view.Query)
	for _, u := range users {
		if query != "" &&
			!strings.Contains(strings.ToLower(u.Name), query) &&
			!strings.Contains(strings.ToLower(u.Username), query) {
			continue
		}
		view.Rows = append(view.Rows, userRow{
			User:       u,
			CanPromote: u.Role == domain.RoleCustomer && sess.Role.Can(domain.CapPromoteUser),
			IsSelf:     u.ID == sess.UserID,
		})
	}

	return c.Render(http.StatusOK, "users", view)
}
