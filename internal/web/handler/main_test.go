package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/motoflow/web-dashboard/internal/core/domain"
	"github.com/motoflow/web-dashboard/internal/core/ports"
	"github.com/motoflow/web-dashboard/internal/core/service"
	"github.com/motoflow/web-dashboard/internal/web"
	"github.com/motoflow/web-dashboard/internal/web/handler"
)

const testCookieName = "motoflow_sid"

// stubGateway lets each test script the backend's answers. Unscripted calls
// fail loudly so a test never passes on an accidental code path.
type stubGateway struct {
	loginFn       func(username, password string) (ports.LoginResult, error)
	registerFn    func(in ports.RegisterInput) error
	listOrdersFn  func(token string) ([]domain.ServiceOrder, error)
	createOrderFn func(token string, bikeID int) (domain.ServiceOrder, error)
	updateOrderFn func(token string, orderID int, status domain.OrderStatus) (domain.ServiceOrder, error)
	listUsersFn   func(token string) ([]domain.UserAccount, error)
	promoteFn     func(token string, userID int, newRole domain.Role) (domain.UserAccount, error)
}

var errNotScripted = errors.New("backend call not scripted by this test")

func (g *stubGateway) Login(_ context.Context, username, password string) (ports.LoginResult, error) {
	if g.loginFn == nil {
		return ports.LoginResult{}, errNotScripted
	}
	return g.loginFn(username, password)
}

func (g *stubGateway) Register(_ context.Context, in ports.RegisterInput) error {
	if g.registerFn == nil {
		return errNotScripted
	}
	return g.registerFn(in)
}

func (g *stubGateway) ListOrders(_ context.Context, token string) ([]domain.ServiceOrder, error) {
	if g.listOrdersFn == nil {
		return nil, errNotScripted
	}
	return g.listOrdersFn(token)
}

func (g *stubGateway) CreateOrder(_ context.Context, token string, bikeID int) (domain.ServiceOrder, error) {
	if g.createOrderFn == nil {
		return domain.ServiceOrder{}, errNotScripted
	}
	return g.createOrderFn(token, bikeID)
}

func (g *stubGateway) UpdateOrderStatus(_ context.Context, token string, orderID int, status domain.OrderStatus) (domain.ServiceOrder, error) {
	if g.updateOrderFn == nil {
		return domain.ServiceOrder{}, errNotScripted
	}
	return g.updateOrderFn(token, orderID, status)
}

func (g *stubGateway) ListUsers(_ context.Context, token string) ([]domain.UserAccount, error) {
	if g.listUsersFn == nil {
		return nil, errNotScripted
	}
	return g.listUsersFn(token)
}

func (g *stubGateway) PromoteUser(_ context.Context, token string, userID int, newRole domain.Role) (domain.UserAccount, error) {
	if g.promoteFn == nil {
		return domain.UserAccount{}, errNotScripted
	}
	return g.promoteFn(token, userID, newRole)
}

func (g *stubGateway) reset() {
	*g = stubGateway{}
}

// memStore is an in-memory ports.SessionStore.
type memStore struct {
	recs map[string]ports.SessionRecord
}

func (s *memStore) Save(_ context.Context, sid string, rec ports.SessionRecord, _ time.Duration) error {
	s.recs[sid] = rec
	return nil
}

func (s *memStore) Find(_ context.Context, sid string) (ports.SessionRecord, error) {
	rec, ok := s.recs[sid]
	if !ok {
		return ports.SessionRecord{}, domain.ErrSessionNotFound
	}
	return rec, nil
}

func (s *memStore) Delete(_ context.Context, sid string) error {
	delete(s.recs, sid)
	return nil
}

// The prometheus middleware registers collectors on the default registry, so
// the whole package shares one router and resets the stubs between tests.
var (
	routerOnce sync.Once
	router     *echo.Echo
	gateway    = &stubGateway{}
	store      = &memStore{recs: make(map[string]ports.SessionRecord)}
	sessions   *service.SessionService
	sidSeq     int
)

func testRouter(t *testing.T) *echo.Echo {
	t.Helper()
	routerOnce.Do(func() {
		sessions = service.NewSessionService(store, time.Hour, zerolog.Nop())
		e, err := web.NewRouter(web.Dependencies{
			Backend:  gateway,
			Sessions: sessions,
			Cookies:  handler.CookieConfig{Name: testCookieName, TTL: time.Hour},
			Log:      zerolog.Nop(),
		})
		if err != nil {
			t.Fatalf("build router: %v", err)
		}
		router = e
	})

	gateway.reset()
	for sid := range store.recs {
		delete(store.recs, sid)
	}
	return router
}

// loginAs seeds an authenticated session and returns its cookie.
func loginAs(t *testing.T, role domain.Role) *http.Cookie {
	t.Helper()
	return loginWithToken(t, role, "tok-"+strings.ToLower(string(role)))
}

func loginWithToken(t *testing.T, role domain.Role, token string) *http.Cookie {
	t.Helper()
	sidSeq++
	sid := fmt.Sprintf("sid-%d", sidSeq)
	identity := domain.Identity{UserID: 1, Username: "joe", Role: role}
	if err := sessions.Login(context.Background(), sid, token, identity); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return &http.Cookie{Name: testCookieName, Value: sid}
}

func get(e *echo.Echo, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(e *echo.Echo, path string, cookie *http.Cookie, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func wantRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func wantBodyContains(t *testing.T, rec *httptest.ResponseRecorder, substrs ...string) {
	t.Helper()
	for _, s := range substrs {
		if !strings.Contains(rec.Body.String(), s) {
			t.Errorf("body missing %q\n%s", s, rec.Body.String())
		}
	}
}
