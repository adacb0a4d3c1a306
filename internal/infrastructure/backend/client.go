// Package backend implements the HTTP client wrapper around the motorcycle
// service backend: it builds requests, attaches the bearer credential, and
// normalizes every failure into the domain error taxonomy. Single attempt,
// no retries; resilience is explicitly not this layer's job.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/motoflow/web-dashboard/internal/core/domain"
	"github.com/motoflow/web-dashboard/internal/core/ports"
	"github.com/motoflow/web-dashboard/internal/metrics"
)

const defaultTimeout = 15 * time.Second

// Client talks JSON over HTTP to the service backend. It satisfies
// ports.BackendGateway.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// ── Wire types of the backend contract ───────────────────────────────────────

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type createOrderRequest struct {
	BikeID int `json:"bike_id"`
}

type updateOrderRequest struct {
	OrderID int    `json:"order_id"`
	Status  string `json:"status"`
}

type promoteRequest struct {
	UserID  int    `json:"user_id"`
	NewRole string `json:"new_role"`
}

// ── Gateway operations ───────────────────────────────────────────────────────

func (c *Client) Login(ctx context.Context, username, password string) (ports.LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, "login", http.MethodPost, "/api/login", "", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return ports.LoginResult{}, err
	}
	return ports.LoginResult{Token: resp.Token, Identity: resp.User}, nil
}

func (c *Client) Register(ctx context.Context, in ports.RegisterInput) error {
	req := registerRequest{
		Username: in.Username,
		Password: in.Password,
		Name:     in.Name,
		Phone:    in.Phone,
		Role:     string(in.Role),
	}
	return c.do(ctx, "register", http.MethodPost, "/api/register", "", req, nil)
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]domain.ServiceOrder, error) {
	var orders []domain.ServiceOrder
	if err := c.do(ctx, "list_orders", http.MethodGet, "/api/orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) CreateOrder(ctx context.Context, token string, bikeID int) (domain.ServiceOrder, error) {
	var order domain.ServiceOrder
	err := c.do(ctx, "create_order", http.MethodPost, "/api/orders", token, createOrderRequest{BikeID: bikeID}, &order)
	return order, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int, status domain.OrderStatus) (domain.ServiceOrder, error) {
	var order domain.ServiceOrder
	req := updateOrderRequest{OrderID: orderID, Status: string(status)}
	err := c.do(ctx, "update_order_status", http.MethodPut, "/api/orders", token, req, &order)
	return order, err
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.UserAccount, error) {
	var users []domain.UserAccount
	if err := c.do(ctx, "list_users", http.MethodGet, "/api/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) PromoteUser(ctx context.Context, token string, userID int, newRole domain.Role) (domain.UserAccount, error) {
	var user domain.UserAccount
	req := promoteRequest{UserID: userID, NewRole: string(newRole)}
	err := c.do(ctx, "promote_user", http.MethodPost, "/api/promote", token, req, &user)
	return user, err
}

// ── Core request path ────────────────────────────────────────────────────────

// do issues a single request. A non-empty token is attached as the bearer
// credential; callers never set the header themselves. On a non-2xx response
// the body's error message is surfaced as a *domain.APIError; transport
// failures wrap domain.ErrBackendUnreachable.
func (c *Client) do(ctx context.Context, operation, method, path, token string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", operation, err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(operation, "unreachable").Inc()
		c.log.Error().Err(err).Str("operation", operation).Msg("backend request failed")
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrBackendUnreachable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(operation, "unreachable").Inc()
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrBackendUnreachable)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.BackendRequestsTotal.WithLabelValues(operation, "api_error").Inc()
		return &domain.APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, raw),
		}
	}

	metrics.BackendRequestsTotal.WithLabelValues(operation, "ok").Inc()

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}

// errorEnvelope covers the two message shapes backends in the wild use.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// errorMessage extracts the server's message from an error body, falling back
// to a generic message keyed by status code when the body is not JSON.
func errorMessage(status int, raw []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Error != "" {
			return env.Error
		}
		if env.Message != "" {
			return env.Message
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("unexpected status %d", status)
}
