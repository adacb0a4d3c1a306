package handler_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/motoflow/web-dashboard/internal/core/domain"
)

func TestOrders_CustomerIsSentHome(t *testing.T) {
	e := testRouter(t)
	cookie := loginAs(t, domain.RoleCustomer)
	wantRedirect(t, get(e, "/dashboard/orders", cookie), "/dashboard")
	wantRedirect(t, postForm(e, "/dashboard/orders/status", cookie, url.Values{}), "/dashboard")
}

func TestOrders_AnonymousIsSentToLogin(t *testing.T) {
	e := testRouter(t)
	wantRedirect(t, get(e, "/dashboard/orders", nil), "/login")
}

func TestOrders_EachRowOffersItsOneLegalAction(t *testing.T) {
	e := testRouter(t)
	cookie := loginAs(t, domain.RoleMechanic)
	gateway.listOrdersFn = func(string) ([]domain.ServiceOrder, error) {
		return []domain.ServiceOrder{
			{ID: 1, Status: domain.StatusBooked},
			{ID: 2, Status: domain.StatusRepairing},
			{ID: 3, Status: domain.StatusPaid},
		}, nil
	}

	rec := get(e, "/dashboard/orders", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	// Booked advances to Repairing, Repairing to Completed.
	wantBodyContains(t, rec,
		">Start Repair</button>", `value="Repairing"`,
		">Complete</button>", `value="Completed"`,
	)
	// A terminal order gets no button at all.
	if n := strings.Count(rec.Body.String(), `class="action"`); n != 2 {
		t.Fatalf("found %d action buttons, want 2", n)
	}
}

func TestOrders_FilterByOrderID(t *testing.T) {
	e := testRouter(t)
	cookie := loginAs(t, domain.RoleAdmin)
	gateway.listOrdersFn = func(string) ([]domain.ServiceOrder, error) {
		return []domain.ServiceOrder{
			{ID: 12, Status: domain.StatusBooked},
			{ID: 34, Status: domain.StatusBooked},
		}, nil
	}

	rec := get(e, "/dashboard/orders?q=3", cookie)
	wantBodyContains(t, rec, "#SO-34")
	if strings.Contains(rec.Body.String(), "#SO-12") {
		t.Fatalf("filter should hide orders whose id does not match")
	}
}

func TestOrders_UpdateStatusRedirectsToFreshList(t *testing.T) {
	e := testRouter(t)
	cookie := loginAs(t, domain.RoleMechanic)
	gateway.updateOrderFn = func(token string, orderID int, status domain.OrderStatus) (domain.ServiceOrder, error) {
		if orderID != 7 || status != domain.StatusRepairing {
			t.Errorf("update called with id=%d status=%q", orderID, status)
		}
		return domain.ServiceOrder{ID: 7, Status: status}, nil
	}

	form := url.Values{"order_id": {"7"}, "status": {"Repairing"}}
	rec := postForm(e, "/dashboard/orders/status", cookie, form)
	wantRedirect(t, rec, "/dashboard/orders")
}

func TestOrders_RejectedTransitionShowsServerMessage(t *testing.T) {
	e := testRouter(t)
	cookie := loginAs(t, domain.RoleMechanic)
	gateway.updateOrderFn = func(string, int, domain.OrderStatus) (domain.ServiceOrder, error) {
		return domain.ServiceOrder{}, &domain.APIError{StatusCode: http.StatusConflict, Message: "order is not in a repairable state"}
	}
	gateway.listOrdersFn = func(string) ([]domain.ServiceOrder, error) {
		return []domain.ServiceOrder{{ID: 7, Status: domain.StatusPaid}}, nil
	}

	form := url.Values{"order_id": {"7"}, "status": {"Repairing"}}
	rec := postForm(e, "/dashboard/orders/status", cookie, form)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	// Message verbatim, with the list freshly re-fetched around it.
	wantBodyContains(t, rec, "order is not in a repairable state", "#SO-7")
}

func TestOrders_UnknownStatusNeverReachesBackend(t *testing.T) {
	e := testRouter(t)
	cookie := loginAs(t, domain.RoleAdmin)
	called := false
	gateway.updateOrderFn = func(string, int, domain.OrderStatus) (domain.ServiceOrder, error) {
		called = true
		return domain.ServiceOrder{}, nil
	}
	gateway.listOrdersFn = func(string) ([]domain.ServiceOrder, error) { return nil, nil }

	form := url.Values{"order_id": {"7"}, "status": {"Vaporized"}}
	rec := postForm(e, "/dashboard/orders/status", cookie, form)
	if called {
		t.Fatalf("an unknown status must be rejected before the backend call")
	}
	wantBodyContains(t, rec, "Unknown order status requested.")
}

func TestOrders_RejectedTokenEndsSession(t *testing.T) {
	e := testRouter(t)
	cookie := loginAs(t, domain.RoleMechanic)
	gateway.listOrdersFn = func(string) ([]domain.ServiceOrder, error) {
		return nil, &domain.APIError{StatusCode: http.StatusForbidden, Message: "token revoked"}
	}

	wantRedirect(t, get(e, "/dashboard/orders", cookie), "/login")
	if len(store.recs) != 0 {
		t.Fatalf("rejected token must clear the stored session")
	}
}
