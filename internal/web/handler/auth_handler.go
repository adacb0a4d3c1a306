package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/motoflow/web-dashboard/internal/core/domain"
	"github.com/motoflow/web-dashboard/internal/core/ports"
	"github.com/motoflow/web-dashboard/internal/web/middleware"
)

// AuthHandler serves the login and registration screens and owns the session
// lifecycle transitions they trigger.
type AuthHandler struct {
	Base
	backend ports.BackendGateway
}

func NewAuthHandler(backend ports.BackendGateway, base Base) *AuthHandler {
	return &AuthHandler{Base: base, backend: backend}
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required,min=8"`
	Name     string `form:"name"     validate:"required"`
	Phone    string `form:"phone"    validate:"required"`
}

// LoginForm renders the sign-in screen. An already authenticated visitor is
// sent straight to the dashboard.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	if middleware.SessionFrom(c).Authenticated() {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}

	view := loginView{baseView: h.view(c, "Sign In")}
	if c.QueryParam("registered") != "" {
		view.Notice = "Account created. Sign in to continue."
	}
	return c.Render(http.StatusOK, "login", view)
}

// Login authenticates against the backend and, on success, establishes the
// session under a fresh cookie and navigates to the default landing screen.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return h.renderLoginError(c, "Invalid form submission.", "")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderLoginError(c, err.Error(), form.Username)
	}

	result, err := h.backend.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		return h.renderLoginError(c, errorText(err), form.Username)
	}

	sid := uuid.NewString()
	if err := h.Sessions.Login(c.Request().Context(), sid, result.Token, result.Identity); err != nil {
		return h.renderLoginError(c, "Could not start your session. Please try again.", form.Username)
	}

	h.issueCookie(c, sid)
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *AuthHandler) renderLoginError(c echo.Context, msg, username string) error {
	view := loginView{baseView: h.view(c, "Sign In"), Username: username}
	view.Error = msg
	return c.Render(http.StatusOK, "login", view)
}

// RegisterForm renders the account creation screen.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	if middleware.SessionFrom(c).Authenticated() {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.Render(http.StatusOK, "register", registerView{baseView: h.view(c, "Create Account")})
}

// Register creates a Customer account; role escalation happens later and only
// through an Admin. Success lands on the login screen with a confirmation.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return h.renderRegisterError(c, "Invalid form submission.", form)
	}
	if err := c.Validate(&form); err != nil {
		return h.renderRegisterError(c, err.Error(), form)
	}

	in := ports.RegisterInput{
		Username: form.Username,
		Password: form.Password,
		Name:     form.Name,
		Phone:    form.Phone,
		Role:     domain.RoleCustomer,
	}
	if err := h.backend.Register(c.Request().Context(), in); err != nil {
		return h.renderRegisterError(c, errorText(err), form)
	}

	return c.Redirect(http.StatusSeeOther, "/login?registered=1")
}

func (h *AuthHandler) renderRegisterError(c echo.Context, msg string, form registerForm) error {
	view := registerView{
		baseView: h.view(c, "Create Account"),
		Username: form.Username,
		Name:     form.Name,
		Phone:    form.Phone,
	}
	view.Error = msg
	return c.Render(http.StatusOK, "register", view)
}

// Logout clears the session and returns to the login screen. Logging out
// while anonymous is a no-op that still lands on login.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Sessions.Logout(c.Request().Context(), middleware.SessionID(c)); err != nil {
		return err
	}
	h.clearCookie(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}
