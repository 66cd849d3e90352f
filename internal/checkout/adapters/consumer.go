package adapters

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"go-checkout/pkg/events"
	"go-checkout/pkg/logger"
	"go-checkout/pkg/rabbitmq"
)

// AuditQueue is the queue receiving completed checkouts for auditing
const AuditQueue = "checkout.audit"

// CheckoutAuditConsumer logs every CheckoutCompleted event
type CheckoutAuditConsumer struct {
	consumer *rabbitmq.Consumer
	log      *logger.Logger
}

// NewCheckoutAuditConsumer creates a new consumer for CheckoutCompleted events
func NewCheckoutAuditConsumer(conn *rabbitmq.Connection, log *logger.Logger) (*CheckoutAuditConsumer, error) {
	consumer, err := rabbitmq.NewConsumer(
		conn,
		AuditQueue,
		events.ExchangeCheckout,
		[]string{events.RoutingKeyCheckoutCompleted},
		log,
	)
	if err != nil {
		return nil, err
	}

	return &CheckoutAuditConsumer{
		consumer: consumer,
		log:      log,
	}, nil
}

// Start starts consuming CheckoutCompleted events
func (c *CheckoutAuditConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.HandleMessage)
}

// HandleMessage decodes one event body and writes an audit entry
func (c *CheckoutAuditConsumer) HandleMessage(ctx context.Context, body []byte) error {
	var event events.CheckoutCompletedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.log.WithContext(ctx).Error("failed to unmarshal CheckoutCompletedEvent",
			zap.Error(err),
		)
		return err
	}

	c.log.WithContext(ctx).Info("checkout audited",
		zap.String("order_id", event.Payload.OrderID),
		zap.Int("item_count", event.Payload.ItemCount),
		zap.String("subtotal", event.Payload.Subtotal),
		zap.String("total", event.Payload.Total),
		zap.Time("completed_at", event.Timestamp),
	)

	return nil
}
