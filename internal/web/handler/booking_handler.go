package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/motoflow/web-dashboard/internal/core/ports"
	"github.com/motoflow/web-dashboard/internal/web/middleware"
)

// BookingHandler serves the customer's booking wizard: a details step and a
// terminal success step.
type BookingHandler struct {
	Base
	backend ports.BackendGateway
}

func NewBookingHandler(backend ports.BackendGateway, base Base) *BookingHandler {
	return &BookingHandler{Base: base, backend: backend}
}

type bookingForm struct {
	BikeID int `form:"bike_id" validate:"required,gt=0"`
}

// Form renders the booking details step.
func (h *BookingHandler) Form(c echo.Context) error {
	return c.Render(http.StatusOK, "booking", bookingView{baseView: h.view(c, "New Booking")})
}

// Create submits the booking. Success reaches the terminal success step;
// failure stays on the details step with the server's message verbatim.
func (h *BookingHandler) Create(c echo.Context) error {
	var form bookingForm
	if err := c.Bind(&form); err != nil {
		return h.renderForm(c, "Invalid form submission.", form)
	}
	if err := c.Validate(&form); err != nil {
		return h.renderForm(c, err.Error(), form)
	}

	sess := middleware.SessionFrom(c)
	order, err := h.backend.CreateOrder(c.Request().Context(), sess.Token, form.BikeID)
	if err != nil {
		if sessionExpired(err) {
			return h.endExpiredSession(c)
		}
		return h.renderForm(c, errorText(err), form)
	}

	view := bookingView{baseView: h.view(c, "Booking Confirmed"), Success: true, Order: order}
	return c.Render(http.StatusOK, "booking", view)
}

func (h *BookingHandler) renderForm(c echo.Context, msg string, form bookingForm) error {
	view := bookingView{baseView: h.view(c, "New Booking"), BikeID: form.BikeID}
	view.Error = msg
	return c.Render(http.StatusOK, "booking", view)
}
