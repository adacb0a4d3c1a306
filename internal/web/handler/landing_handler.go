package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// LandingHandler serves the public marketing page.
type LandingHandler struct {
	Base
}

func NewLandingHandler(base Base) *LandingHandler {
	return &LandingHandler{Base: base}
}

func (h *LandingHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "landing", landingView{baseView: h.view(c, "MotoFlow")})
}
