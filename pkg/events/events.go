package events

import "time"

// Exchange names
const (
	ExchangeCheckout = "checkout.events"
)

// Routing keys
const (
	RoutingKeyCheckoutCompleted = "checkout.completed"
)

// CheckoutCompletedEvent is published when a checkout run finishes
type CheckoutCompletedEvent struct {
	Version   string                   `json:"version"`
	EventType string                   `json:"event_type"`
	Timestamp time.Time                `json:"timestamp"`
	TraceID   string                   `json:"trace_id"`
	Payload   CheckoutCompletedPayload `json:"payload"`
}

// CheckoutCompletedPayload contains the checkout summary.
// Amounts are decimal strings.
type CheckoutCompletedPayload struct {
	OrderID   string `json:"order_id"`
	ItemCount int    `json:"item_count"`
	Subtotal  string `json:"subtotal"`
	Total     string `json:"total"`
}

// NewCheckoutCompletedEvent creates a new CheckoutCompletedEvent
func NewCheckoutCompletedEvent(orderID string, itemCount int, subtotal, total, traceID string) *CheckoutCompletedEvent {
	return &CheckoutCompletedEvent{
		Version:   "1.0",
		EventType: RoutingKeyCheckoutCompleted,
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: CheckoutCompletedPayload{
			OrderID:   orderID,
			ItemCount: itemCount,
			Subtotal:  subtotal,
			Total:     total,
		},
	}
}
