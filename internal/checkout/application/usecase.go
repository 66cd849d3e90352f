package application

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-checkout/internal/checkout/domain"
	"go-checkout/internal/checkout/ports"
	"go-checkout/pkg/errors"
	"go-checkout/pkg/logger"
)

// CheckoutUseCase runs one checkout: total, pay, deliver, notify
type CheckoutUseCase struct {
	payment      ports.Payment
	delivery     ports.Delivery
	notification ports.Notification
	publisher    ports.EventPublisher
	log          *logger.Logger
}

// NewCheckoutUseCase creates a new checkout use case. publisher may be nil.
func NewCheckoutUseCase(
	payment ports.Payment,
	delivery ports.Delivery,
	notification ports.Notification,
	publisher ports.EventPublisher,
	log *logger.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		payment:      payment,
		delivery:     delivery,
		notification: notification,
		publisher:    publisher,
		log:          log,
	}
}

// CheckoutInput represents the input for a checkout
type CheckoutInput struct {
	Order      *domain.Order
	Calculator *domain.DiscountCalculator
}

// CheckoutOutput represents the output of a checkout
type CheckoutOutput struct {
	OrderID  string
	Subtotal decimal.Decimal
	Total    decimal.Decimal
	Message  string
}

// Checkout computes the discounted total, then charges, delivers and
// notifies in that order. The first failing step aborts the rest.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutOutput, error) {
	order := input.Order
	if order == nil {
		return nil, domain.ErrOrderRequired
	}

	log := uc.log.WithContext(ctx).With(zap.String("order_id", order.ID))

	subtotal := order.Subtotal()
	total := order.ComputeTotal(input.Calculator)

	if err := uc.payment.Process(ctx, total); err != nil {
		log.Error("payment failed", zap.Error(err))
		return nil, errors.Wrap(err, "checkout aborted")
	}

	if err := uc.delivery.Deliver(ctx, order); err != nil {
		log.Error("delivery failed", zap.Error(err))
		return nil, errors.Wrap(err, "checkout aborted")
	}

	message := fmt.Sprintf("Order successfully processed. Total: $%s", total.StringFixed(2))
	if err := uc.notification.Send(ctx, message); err != nil {
		log.Error("notification failed", zap.Error(err))
		return nil, errors.Wrap(err, "checkout aborted")
	}

	items := order.Items()

	// Publish event (don't fail on error)
	if uc.publisher != nil {
		receipt := &ports.Receipt{
			OrderID:   order.ID,
			ItemCount: len(items),
			Subtotal:  subtotal,
			Total:     total,
		}
		if err := uc.publisher.PublishCheckoutCompleted(ctx, receipt); err != nil {
			log.Error("failed to publish checkout completed event", zap.Error(err))
		}
	}

	log.Info("checkout completed",
		zap.Int("items", len(items)),
		zap.String("subtotal", subtotal.StringFixed(2)),
		zap.String("total", total.StringFixed(2)),
	)

	return &CheckoutOutput{
		OrderID:  order.ID,
		Subtotal: subtotal,
		Total:    total,
		Message:  message,
	}, nil
}
