package ports

import (
	"context"

	"github.com/motoflow/web-dashboard/internal/core/domain"
)

// LoginResult is what the backend returns on a successful login.
type LoginResult struct {
	Token    string
	Identity domain.Identity
}

// RegisterInput carries a new-account registration.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Phone    string
	Role     domain.Role
}

// BackendGateway is the dashboard's only door to the service backend. Every
// authenticated call carries the session token supplied by the caller; the
// gateway attaches it as the bearer credential.
type BackendGateway interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Register(ctx context.Context, in RegisterInput) error
	ListOrders(ctx context.Context, token string) ([]domain.ServiceOrder, error)
	CreateOrder(ctx context.Context, token string, bikeID int) (domain.ServiceOrder, error)
	UpdateOrderStatus(ctx context.Context, token string, orderID int, status domain.OrderStatus) (domain.ServiceOrder, error)
	ListUsers(ctx context.Context, token string) ([]domain.UserAccount, error)
	PromoteUser(ctx context.Context, token string, userID int, newRole domain.Role) (domain.UserAccount, error)
}
