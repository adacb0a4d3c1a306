package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/motoflow/web-dashboard/internal/core/domain"
	"github.com/motoflow/web-dashboard/internal/core/ports"
	"github.com/motoflow/web-dashboard/internal/web/middleware"
)

// OrdersHandler serves the workshop's order management screen: list, filter,
// and drive each order one step along its status path.
type OrdersHandler struct {
	Base
	backend ports.BackendGateway
}

func NewOrdersHandler(backend ports.BackendGateway, base Base) *OrdersHandler {
	return &OrdersHandler{Base: base, backend: backend}
}

type statusForm struct {
	OrderID int    `form:"order_id" validate:"required,gt=0"`
	Status  string `form:"status"   validate:"required"`
}

// List renders the order management table. Every row shows exactly the action
// its current status allows; the server remains the authority on legality.
func (h *OrdersHandler) List(c echo.Context) error {
	return h.renderList(c, "")
}

// UpdateStatus submits a requested transition and, on success, redirects into
// a full re-fetch of the list. On failure the list re-renders with the server
// message and no local patching happens.
func (h *OrdersHandler) UpdateStatus(c echo.Context) error {
	var form statusForm
	if err := c.Bind(&form); err != nil {
		return h.renderList(c, "Invalid form submission.")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderList(c, err.Error())
	}

	next := domain.ParseOrderStatus(form.Status)
	if next == domain.StatusUnknown {
		return h.renderList(c, "Unknown order status requested.")
	}

	sess := middleware.SessionFrom(c)
	if _, err := h.backend.UpdateOrderStatus(c.Request().Context(), sess.Token, form.OrderID, next); err != nil {
		if sessionExpired(err) {
			return h.endExpiredSession(c)
		}
		return h.renderList(c, errorText(err))
	}

	return c.Redirect(http.StatusSeeOther, "/dashboard/orders")
}

// renderList fetches the current orders and renders the management screen,
// optionally with an error banner from a failed mutation.
func (h *OrdersHandler) renderList(c echo.Context, errMsg string) error {
	sess := middleware.SessionFrom(c)
	view := ordersView{
		baseView: h.view(c, "Service Management"),
		Query:    strings.TrimSpace(c.QueryParam("q")),
	}
	view.Error = errMsg

	orders, err := h.backend.ListOrders(c.Request().Context(), sess.Token)
	if err != nil {
		if sessionExpired(err) {
			return h.endExpiredSession(c)
		}
		if view.Error == "" {
			view.Error = errorText(err)
		}
		return c.Render(http.StatusOK, "orders", view)
	}

	for _, o := range orders {
		if view.Query != "" && !strings.Contains(strconv.Itoa(o.ID), view.Query) {
			continue
		}
		row := orderRow{Order: o}
		if action, ok := o.Status.NextAction(); ok {
			row.Action = &action
		}
		view.Rows = append(view.Rows, row)
	}

	return c.Render(http.StatusOK, "orders", view)
}
