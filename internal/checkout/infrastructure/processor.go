package infrastructure

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"go-checkout/internal/checkout/adapters"
	"go-checkout/internal/checkout/application"
	"go-checkout/internal/checkout/domain"
	"go-checkout/internal/checkout/ports"
	"go-checkout/pkg/errors"
	"go-checkout/pkg/logger"
)

// CheckoutRequest is the transport-neutral checkout request
type CheckoutRequest struct {
	Items              []ItemRequest `json:"items"`
	Rules              []RuleRequest `json:"rules"`
	PaymentMethod      string        `json:"payment_method,omitempty" example:"credit_card"`
	DeliveryMethod     string        `json:"delivery_method,omitempty" example:"courier"`
	NotificationMethod string        `json:"notification_method,omitempty" example:"email"`
}

// ItemRequest is one order line
type ItemRequest struct {
	Name      string          `json:"name" example:"Laptop"`
	Quantity  int             `json:"quantity" example:"1"`
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"number" example:"1200"`
}

// RuleRequest is one discount rule; rules apply in list order
type RuleRequest struct {
	Type  string          `json:"type" example:"percentage"`
	Value decimal.Decimal `json:"value" swaggertype:"number" example:"10"`
}

// CheckoutResponse is the transport-neutral checkout result.
// Amounts carry two decimals.
type CheckoutResponse struct {
	OrderID  string `json:"order_id" example:"9b2f6c1e-6a1d-4a43-9a4e-0f4f5f0b6d3e"`
	Subtotal string `json:"subtotal" example:"1300.00"`
	Total    string `json:"total" example:"1120.00"`
	Message  string `json:"message" example:"Order successfully processed. Total: $1120.00"`
}

// Processor turns a request into one order, one calculator and one use
// case, then runs the checkout. Nothing is shared between calls.
type Processor struct {
	strategies *adapters.Strategies
	defaults   adapters.Selection
	publisher  ports.EventPublisher
	log        *logger.Logger
}

// NewProcessor creates a new processor. publisher may be nil.
func NewProcessor(strategies *adapters.Strategies, defaults adapters.Selection, publisher ports.EventPublisher, log *logger.Logger) *Processor {
	return &Processor{
		strategies: strategies,
		defaults:   defaults,
		publisher:  publisher,
		log:        log,
	}
}

// Process runs a checkout for req
func (p *Processor) Process(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	selection := adapters.Selection{
		Payment:      req.PaymentMethod,
		Delivery:     req.DeliveryMethod,
		Notification: req.NotificationMethod,
	}.Or(p.defaults)

	payment, delivery, notification, err := p.strategies.Resolve(selection)
	if err != nil {
		return nil, err
	}

	order := domain.NewOrder()
	for _, item := range req.Items {
		order.AddItem(domain.NewOrderItem(item.Name, item.Quantity, item.UnitPrice))
	}

	calculator := domain.NewDiscountCalculator()
	for i, r := range req.Rules {
		rule, err := domain.ParseRule(r.Type, r.Value)
		if err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("rules[%d]", i))
		}
		calculator.AddRule(rule)
	}

	useCase := application.NewCheckoutUseCase(payment, delivery, notification, p.publisher, p.log)
	output, err := useCase.Checkout(ctx, application.CheckoutInput{
		Order:      order,
		Calculator: calculator,
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutResponse{
		OrderID:  output.OrderID,
		Subtotal: output.Subtotal.StringFixed(2),
		Total:    output.Total.StringFixed(2),
		Message:  output.Message,
	}, nil
}
