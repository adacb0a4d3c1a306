package handler_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/motoflow/web-dashboard/internal/core/domain"
)

func TestBooking_OnlyCustomersMayBook(t *testing.T) {
	e := testRouter(t)
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleMechanic} {
		cookie := loginAs(t, role)
		wantRedirect(t, get(e, "/dashboard/new-booking", cookie), "/dashboard")
		wantRedirect(t, postForm(e, "/dashboard/new-booking", cookie, url.Values{}), "/dashboard")
	}
	wantRedirect(t, get(e, "/dashboard/new-booking", nil), "/login")
}

func TestBooking_FormRendersDetailsStep(t *testing.T) {
	e := testRouter(t)
	cookie := loginAs(t, domain.RoleCustomer)

	rec := get(e, "/dashboard/new-booking", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	wantBodyContains(t, rec, "New Booking", `name="bike_id"`)
}

func TestBooking_SuccessReachesConfirmation(t *testing.T) {
	e := testRouter(t)
	cookie := loginAs(t, domain.RoleCustomer)
	gateway.createOrderFn = func(token string, bikeID int) (domain.ServiceOrder, error) {
		if bikeID != 9 {
			t.Errorf("bike id forwarded as %d", bikeID)
		}
		return domain.ServiceOrder{ID: 77, BikeID: bikeID, Status: domain.StatusBooked}, nil
	}

	rec := postForm(e, "/dashboard/new-booking", cookie, url.Values{"bike_id": {"9"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	wantBodyContains(t, rec, "Booking Confirmed", "#SO-77")
	if strings.Contains(rec.Body.String(), `name="bike_id"`) {
		t.Fatalf("confirmation step must not show the details form again")
	}
}

func TestBooking_FailureStaysOnDetailsWithServerMessage(t *testing.T) {
	e := testRouter(t)
	cookie := loginAs(t, domain.RoleCustomer)
	gateway.createOrderFn = func(string, int) (domain.ServiceOrder, error) {
		return domain.ServiceOrder{}, &domain.APIError{StatusCode: http.StatusUnprocessableEntity, Message: "bike is already in service"}
	}

	rec := postForm(e, "/dashboard/new-booking", cookie, url.Values{"bike_id": {"9"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	// Server message verbatim, bike id preserved, no confirmation.
	wantBodyContains(t, rec, "bike is already in service", `value="9"`)
	if strings.Contains(rec.Body.String(), "Booking Confirmed") {
		t.Fatalf("failed booking must not reach the confirmation step")
	}
}

func TestBooking_MissingBikeIDNeverReachesBackend(t *testing.T) {
	e := testRouter(t)
	cookie := loginAs(t, domain.RoleCustomer)
	called := false
	gateway.createOrderFn = func(string, int) (domain.ServiceOrder, error) {
		called = true
		return domain.ServiceOrder{}, nil
	}

	rec := postForm(e, "/dashboard/new-booking", cookie, url.Values{})
	if called {
		t.Fatalf("an empty form must be rejected before the backend call")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestBooking_RejectedTokenEndsSession(t *testing.T) {
	e := testRouter(t)
	cookie := loginAs(t, domain.RoleCustomer)
	gateway.createOrderFn = func(string, int) (domain.ServiceOrder, error) {
		return domain.ServiceOrder{}, &domain.APIError{StatusCode: http.StatusUnauthorized, Message: "token expired"}
	}

	rec := postForm(e, "/dashboard/new-booking", cookie, url.Values{"bike_id": {"9"}})
	wantRedirect(t, rec, "/login")
	if len(store.recs) != 0 {
		t.Fatalf("rejected token must clear the stored session")
	}
}
