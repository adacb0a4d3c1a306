package domain

import "encoding/json"

// OrderStatus represents the lifecycle state of a service order.
type OrderStatus string

const (
	StatusBooked    OrderStatus = "Booked"
	StatusRepairing OrderStatus = "Repairing"
	StatusCompleted OrderStatus = "Completed"
	StatusPaid      OrderStatus = "Paid"
	StatusCancelled OrderStatus = "Cancelled"

	// StatusUnknown marks a status string the backend sent that this client
	// does not recognize. It renders as-is and offers no action.
	StatusUnknown OrderStatus = "Unknown"
)

// validTransitions defines the allowed state machine transitions. The server
// is the authority; this table only decides which action control is rendered.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusBooked:    {StatusRepairing, StatusCancelled},
	StatusRepairing: {StatusCompleted},
	StatusCompleted: {StatusPaid},
}

// ParseOrderStatus normalizes a backend status string into the closed set.
func ParseOrderStatus(s string) OrderStatus {
	switch OrderStatus(s) {
	case StatusBooked, StatusRepairing, StatusCompleted, StatusPaid, StatusCancelled:
		return OrderStatus(s)
	default:
		return StatusUnknown
	}
}

// UnmarshalJSON normalizes statuses at the HTTP boundary.
func (s *OrderStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = ParseOrderStatus(raw)
	return nil
}

// CanTransitionTo reports whether a transition from the current status to next
// is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderAction is the single workshop control rendered for an order row.
type OrderAction struct {
	Label string
	Next  OrderStatus
}

// NextAction returns the workshop action applicable to the current status.
// Statuses past the repair stage (and Unknown) offer no action.
func (s OrderStatus) NextAction() (OrderAction, bool) {
	switch s {
	case StatusBooked:
		return OrderAction{Label: "Start Repair", Next: StatusRepairing}, true
	case StatusRepairing:
		return OrderAction{Label: "Complete", Next: StatusCompleted}, true
	default:
		return OrderAction{}, false
	}
}

// ServiceOrder is a booking record as reported by the backend.
type ServiceOrder struct {
	ID         int         `json:"id"`
	BikeID     int         `json:"bike_id"`
	CustomerID int         `json:"customer_id"`
	Status     OrderStatus `json:"status"`
	TotalPrice float64     `json:"total_price"`
}

// OrderStats are the dashboard stat-card figures derived from one fetch.
type OrderStats struct {
	Active         int
	Completed      int
	ActionRequired int
	Total          int
}

// SummarizeOrders computes the dashboard overview figures. "Action required"
// counts orders awaiting payment.
func SummarizeOrders(orders []ServiceOrder) OrderStats {
	stats := OrderStats{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case StatusBooked, StatusRepairing:
			stats.Active++
		case StatusCompleted:
			stats.Completed++
			stats.ActionRequired++
		case StatusPaid:
			stats.Completed++
		}
	}
	return stats
}
