package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"go-checkout/internal/checkout/domain"
)

// Payment charges the customer for an order
type Payment interface {
	// Process charges amount; no validation of the amount is made
	Process(ctx context.Context, amount decimal.Decimal) error
}

// Delivery dispatches an order to the customer
type Delivery interface {
	// Deliver hands the order over to the chosen carrier
	Deliver(ctx context.Context, order *domain.Order) error
}

// Notification tells the customer about the outcome of a checkout
type Notification interface {
	// Send emits message through the chosen channel
	Send(ctx context.Context, message string) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// PublishCheckoutCompleted publishes a checkout completed event
	PublishCheckoutCompleted(ctx context.Context, receipt *Receipt) error
}

// Receipt summarises a completed checkout
type Receipt struct {
	OrderID   string
	ItemCount int
	Subtotal  decimal.Decimal
	Total     decimal.Decimal
}
