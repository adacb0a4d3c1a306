package handler

import "github.com/motoflow/web-dashboard/internal/core/domain"

// baseView carries the fields every template needs.
type baseView struct {
	Title   string
	Session domain.Session
	Menu    []domain.MenuItem
	Error   string
	Notice  string
}

type landingView struct {
	baseView
}

type loginView struct {
	baseView
	Username string
}

type registerView struct {
	baseView
	Username string
	Name     string
	Phone    string
}

type dashboardView struct {
	baseView
	Stats   domain.OrderStats
	Orders  []domain.ServiceOrder
	CanBook bool
}

// orderRow pairs an order with the single action its status allows, so the
// template stays free of transition logic.
type orderRow struct {
	Order  domain.ServiceOrder
	Action *domain.OrderAction
}

type ordersView struct {
	baseView
	Rows  []orderRow
	Query string
}

// userRow decorates a user account with the affordances the current viewer
// gets for it.
type userRow struct {
	User       domain.UserAccount
	CanPromote bool
	IsSelf     bool
}

type usersView struct {
	baseView
	Rows  []userRow
	Query string
}

type bookingView struct {
	baseView
	Success bool
	Order   domain.ServiceOrder
	BikeID  int
}
