package application

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"go-checkout/internal/checkout/adapters"
	"go-checkout/internal/checkout/domain"
	"go-checkout/internal/checkout/ports"
	"go-checkout/pkg/errors"
	"go-checkout/pkg/logger"
)

// callLog records capability calls across mocks in order
type callLog struct {
	calls []string
}

// MockPayment is a mock implementation of Payment
type MockPayment struct {
	log     *callLog
	amounts []decimal.Decimal
	err     error
}

func (m *MockPayment) Process(ctx context.Context, amount decimal.Decimal) error {
	m.log.calls = append(m.log.calls, "payment")
	m.amounts = append(m.amounts, amount)
	return m.err
}

// MockDelivery is a mock implementation of Delivery
type MockDelivery struct {
	log    *callLog
	orders []*domain.Order
	err    error
}

func (m *MockDelivery) Deliver(ctx context.Context, order *domain.Order) error {
	m.log.calls = append(m.log.calls, "delivery")
	m.orders = append(m.orders, order)
	return m.err
}

// MockNotification is a mock implementation of Notification
type MockNotification struct {
	log      *callLog
	messages []string
	err      error
}

func (m *MockNotification) Send(ctx context.Context, message string) error {
	m.log.calls = append(m.log.calls, "notification")
	m.messages = append(m.messages, message)
	return m.err
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	receipts []*ports.Receipt
	err      error
}

func (m *MockEventPublisher) PublishCheckoutCompleted(ctx context.Context, receipt *ports.Receipt) error {
	m.receipts = append(m.receipts, receipt)
	return m.err
}

type fixture struct {
	calls        *callLog
	payment      *MockPayment
	delivery     *MockDelivery
	notification *MockNotification
	publisher    *MockEventPublisher
	useCase      *CheckoutUseCase
}

func newFixture() *fixture {
	calls := &callLog{}
	f := &fixture{
		calls:        calls,
		payment:      &MockPayment{log: calls},
		delivery:     &MockDelivery{log: calls},
		notification: &MockNotification{log: calls},
		publisher:    &MockEventPublisher{},
	}
	f.useCase = NewCheckoutUseCase(f.payment, f.delivery, f.notification, f.publisher, logger.New("test", "debug"))
	return f
}

func sampleOrder() *domain.Order {
	order := domain.NewOrder()
	order.AddItem(domain.NewOrderItem("Laptop", 1, decimal.NewFromFloat(1200.0)))
	order.AddItem(domain.NewOrderItem("Mouse", 2, decimal.NewFromFloat(50.0)))
	return order
}

func sampleCalculator() *domain.DiscountCalculator {
	calc := domain.NewDiscountCalculator()
	calc.AddRule(domain.PercentageRule{Rate: decimal.NewFromInt(10)})
	calc.AddRule(domain.FixedRule{Amount: decimal.NewFromInt(50)})
	return calc
}

func TestCheckout_Success(t *testing.T) {
	// Arrange
	f := newFixture()
	order := sampleOrder()

	// Act
	output, err := f.useCase.Checkout(context.Background(), CheckoutInput{
		Order:      order,
		Calculator: sampleCalculator(),
	})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !output.Subtotal.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("expected subtotal 1300, got %s", output.Subtotal)
	}
	if !output.Total.Equal(decimal.NewFromInt(1120)) {
		t.Errorf("expected total 1120, got %s", output.Total)
	}
	if output.OrderID != order.ID {
		t.Errorf("expected order id %s, got %s", order.ID, output.OrderID)
	}

	want := []string{"payment", "delivery", "notification"}
	if strings.Join(f.calls.calls, ",") != strings.Join(want, ",") {
		t.Errorf("expected calls %v, got %v", want, f.calls.calls)
	}

	if len(f.payment.amounts) != 1 || !f.payment.amounts[0].Equal(decimal.NewFromInt(1120)) {
		t.Errorf("expected one payment of 1120, got %v", f.payment.amounts)
	}
	if len(f.delivery.orders) != 1 || f.delivery.orders[0] != order {
		t.Errorf("expected the order to be delivered once, got %v", f.delivery.orders)
	}
	if len(f.notification.messages) != 1 || !strings.Contains(f.notification.messages[0], "1120.0") {
		t.Errorf("expected one message containing 1120.0, got %v", f.notification.messages)
	}
	if output.Message != f.notification.messages[0] {
		t.Errorf("expected output message to match the sent one")
	}

	if len(f.publisher.receipts) != 1 {
		t.Fatalf("expected 1 event published, got %d", len(f.publisher.receipts))
	}
	if f.publisher.receipts[0].ItemCount != 2 {
		t.Errorf("expected item count 2, got %d", f.publisher.receipts[0].ItemCount)
	}
}

func TestCheckout_PaymentFailureAbortsRemainingSteps(t *testing.T) {
	// Arrange
	f := newFixture()
	f.payment.err = domain.NewPaymentFailed("card declined", nil)

	// Act
	_, err := f.useCase.Checkout(context.Background(), CheckoutInput{Order: sampleOrder(), Calculator: sampleCalculator()})

	// Assert
	if !errors.Is(err, errors.CodeOperationFailed) {
		t.Fatalf("expected operation failed, got %v", err)
	}
	if len(f.calls.calls) != 1 || f.calls.calls[0] != "payment" {
		t.Errorf("expected only payment to run, got %v", f.calls.calls)
	}
	if len(f.publisher.receipts) != 0 {
		t.Errorf("expected no event, got %d", len(f.publisher.receipts))
	}
}

func TestCheckout_DeliveryFailureSkipsNotification(t *testing.T) {
	// Arrange
	f := newFixture()
	f.delivery.err = domain.NewDeliveryFailed("carrier unreachable", nil)

	// Act
	_, err := f.useCase.Checkout(context.Background(), CheckoutInput{Order: sampleOrder(), Calculator: sampleCalculator()})

	// Assert
	if !errors.Is(err, errors.CodeOperationFailed) {
		t.Fatalf("expected operation failed, got %v", err)
	}
	if strings.Join(f.calls.calls, ",") != "payment,delivery" {
		t.Errorf("expected payment then delivery only, got %v", f.calls.calls)
	}
}

func TestCheckout_NotificationFailure(t *testing.T) {
	// Arrange
	f := newFixture()
	f.notification.err = domain.NewNotificationFailed("sms gateway down", nil)

	// Act
	output, err := f.useCase.Checkout(context.Background(), CheckoutInput{Order: sampleOrder(), Calculator: sampleCalculator()})

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if output != nil {
		t.Errorf("expected no output, got %+v", output)
	}
	if len(f.calls.calls) != 3 {
		t.Errorf("expected all three steps to be attempted, got %v", f.calls.calls)
	}
	if len(f.publisher.receipts) != 0 {
		t.Errorf("expected no event, got %d", len(f.publisher.receipts))
	}
}

func TestCheckout_PublishFailureDoesNotFail(t *testing.T) {
	// Arrange
	f := newFixture()
	f.publisher.err = fmt.Errorf("broker down")

	// Act
	_, err := f.useCase.Checkout(context.Background(), CheckoutInput{Order: sampleOrder(), Calculator: sampleCalculator()})

	// Assert
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestCheckout_NilPublisher(t *testing.T) {
	calls := &callLog{}
	useCase := NewCheckoutUseCase(&MockPayment{log: calls}, &MockDelivery{log: calls}, &MockNotification{log: calls}, nil, logger.New("test", "debug"))

	if _, err := useCase.Checkout(context.Background(), CheckoutInput{Order: sampleOrder()}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestCheckout_NilOrder(t *testing.T) {
	f := newFixture()

	_, err := f.useCase.Checkout(context.Background(), CheckoutInput{})

	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if len(f.calls.calls) != 0 {
		t.Errorf("expected no capability calls, got %v", f.calls.calls)
	}
}

func TestCheckout_NilCalculatorChargesSubtotal(t *testing.T) {
	f := newFixture()

	output, err := f.useCase.Checkout(context.Background(), CheckoutInput{Order: sampleOrder()})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !output.Total.Equal(decimal.NewFromInt(1300)) {
		t.Errorf("expected total 1300, got %s", output.Total)
	}
}

func TestCheckout_SwappingStrategiesKeepsTotal(t *testing.T) {
	selections := []adapters.Selection{
		{Payment: adapters.PaymentCreditCard, Delivery: adapters.DeliveryCourier, Notification: adapters.NotificationEmail},
		{Payment: adapters.PaymentPayPal, Delivery: adapters.DeliveryPost, Notification: adapters.NotificationSMS},
		{Payment: adapters.PaymentBankTransfer, Delivery: adapters.DeliveryPickupPoint, Notification: adapters.NotificationEmail},
	}

	for _, sel := range selections {
		t.Run(sel.Payment+"/"+sel.Delivery+"/"+sel.Notification, func(t *testing.T) {
			var out bytes.Buffer
			payment, delivery, notification, err := adapters.NewStrategies(&out).Resolve(sel)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			useCase := NewCheckoutUseCase(payment, delivery, notification, nil, logger.New("test", "debug"))

			output, err := useCase.Checkout(context.Background(), CheckoutInput{Order: sampleOrder(), Calculator: sampleCalculator()})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !output.Total.Equal(decimal.NewFromInt(1120)) {
				t.Errorf("expected total 1120, got %s", output.Total)
			}
			if lines := strings.Count(out.String(), "\n"); lines != 3 {
				t.Errorf("expected 3 output lines, got %d: %q", lines, out.String())
			}
			if !strings.HasPrefix(out.String(), "Paid $1120.00 using ") {
				t.Errorf("expected payment line first, got %q", out.String())
			}
		})
	}
}
