package adapters

import (
	"context"

	"go-checkout/internal/checkout/ports"
	"go-checkout/pkg/events"
	"go-checkout/pkg/logger"
)

// MessagePublisher is the part of rabbitmq.Publisher used here
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// RabbitMQPublisher implements ports.EventPublisher using RabbitMQ
type RabbitMQPublisher struct {
	publisher MessagePublisher
	log       *logger.Logger
}

// NewRabbitMQPublisher creates a new RabbitMQ event publisher
func NewRabbitMQPublisher(publisher MessagePublisher, log *logger.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		publisher: publisher,
		log:       log,
	}
}

// PublishCheckoutCompleted publishes a checkout completed event
func (p *RabbitMQPublisher) PublishCheckoutCompleted(ctx context.Context, receipt *ports.Receipt) error {
	event := events.NewCheckoutCompletedEvent(
		receipt.OrderID,
		receipt.ItemCount,
		receipt.Subtotal.StringFixed(2),
		receipt.Total.StringFixed(2),
		logger.GetTraceID(ctx),
	)

	return p.publisher.Publish(ctx, events.RoutingKeyCheckoutCompleted, event)
}
