package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/motoflow/web-dashboard/internal/core/domain"
	"github.com/motoflow/web-dashboard/internal/core/ports"
	"github.com/motoflow/web-dashboard/internal/web/middleware"
)

// DashboardHandler serves the overview screen every role lands on.
type DashboardHandler struct {
	Base
	backend ports.BackendGateway
}

func NewDashboardHandler(backend ports.BackendGateway, base Base) *DashboardHandler {
	return &DashboardHandler{Base: base, backend: backend}
}

// Overview fetches the visitor's orders and renders the stat cards and order
// table. A failed fetch keeps the page alive: the error shows inline and the
// table renders empty.
func (h *DashboardHandler) Overview(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	view := dashboardView{
		baseView: h.view(c, "Overview"),
		CanBook:  sess.Role.Can(domain.CapBookService),
	}

	orders, err := h.backend.ListOrders(c.Request().Context(), sess.Token)
	if err != nil {
		if sessionExpired(err) {
			return h.endExpiredSession(c)
		}
		view.Error = errorText(err)
		return c.Render(http.StatusOK, "dashboard", view)
	}

	view.Orders = orders
	view.Stats = domain.SummarizeOrders(orders)
	return c.Render(http.StatusOK, "dashboard", view)
}
