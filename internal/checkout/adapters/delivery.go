package adapters

import (
	"context"
	"fmt"
	"io"

	"go-checkout/internal/checkout/domain"
)

// CourierDelivery hands orders to a courier
type CourierDelivery struct {
	out io.Writer
}

// NewCourierDelivery creates a courier delivery writing to out
func NewCourierDelivery(out io.Writer) *CourierDelivery {
	return &CourierDelivery{out: out}
}

// Deliver implements ports.Delivery
func (d *CourierDelivery) Deliver(ctx context.Context, order *domain.Order) error {
	return dispatch(d.out, order, "delivered by courier")
}

// PostDelivery sends orders by post
type PostDelivery struct {
	out io.Writer
}

// NewPostDelivery creates a post delivery writing to out
func NewPostDelivery(out io.Writer) *PostDelivery {
	return &PostDelivery{out: out}
}

// Deliver implements ports.Delivery
func (d *PostDelivery) Deliver(ctx context.Context, order *domain.Order) error {
	return dispatch(d.out, order, "delivered by post service")
}

// PickupPointDelivery leaves orders at a pickup point
type PickupPointDelivery struct {
	out io.Writer
}

// NewPickupPointDelivery creates a pickup point delivery writing to out
func NewPickupPointDelivery(out io.Writer) *PickupPointDelivery {
	return &PickupPointDelivery{out: out}
}

// Deliver implements ports.Delivery
func (d *PickupPointDelivery) Deliver(ctx context.Context, order *domain.Order) error {
	return dispatch(d.out, order, "delivered to pickup point")
}

func dispatch(out io.Writer, order *domain.Order, how string) error {
	if order == nil {
		return domain.NewDeliveryFailed("no order to deliver", nil)
	}
	if _, err := fmt.Fprintf(out, "Order %s %s\n", order.ID, how); err != nil {
		return domain.NewDeliveryFailed("carrier unreachable", err)
	}
	return nil
}
