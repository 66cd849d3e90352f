package adapters

import (
	"io"
	"strings"

	"go-checkout/internal/checkout/ports"
	"go-checkout/pkg/errors"
)

// Payment method names
const (
	PaymentCreditCard   = "credit_card"
	PaymentPayPal       = "paypal"
	PaymentBankTransfer = "bank_transfer"
)

// Delivery method names
const (
	DeliveryCourier     = "courier"
	DeliveryPost        = "post"
	DeliveryPickupPoint = "pickup_point"
)

// Notification channel names
const (
	NotificationEmail = "email"
	NotificationSMS   = "sms"
)

// Selection names one strategy for each capability
type Selection struct {
	Payment      string
	Delivery     string
	Notification string
}

// Or fills empty names from fallback
func (s Selection) Or(fallback Selection) Selection {
	if s.Payment == "" {
		s.Payment = fallback.Payment
	}
	if s.Delivery == "" {
		s.Delivery = fallback.Delivery
	}
	if s.Notification == "" {
		s.Notification = fallback.Notification
	}
	return s
}

// Strategies builds concrete strategies by name. All of them write their
// output to the same sink.
type Strategies struct {
	out io.Writer
}

// NewStrategies creates a strategy set writing to out
func NewStrategies(out io.Writer) *Strategies {
	return &Strategies{out: out}
}

// Payment returns the payment strategy registered under name
func (s *Strategies) Payment(name string) (ports.Payment, error) {
	switch normalize(name) {
	case PaymentCreditCard:
		return NewCreditCardPayment(s.out), nil
	case PaymentPayPal:
		return NewPayPalPayment(s.out), nil
	case PaymentBankTransfer:
		return NewBankTransferPayment(s.out), nil
	}
	return nil, unknown("payment method", name)
}

// Delivery returns the delivery strategy registered under name
func (s *Strategies) Delivery(name string) (ports.Delivery, error) {
	switch normalize(name) {
	case DeliveryCourier:
		return NewCourierDelivery(s.out), nil
	case DeliveryPost:
		return NewPostDelivery(s.out), nil
	case DeliveryPickupPoint:
		return NewPickupPointDelivery(s.out), nil
	}
	return nil, unknown("delivery method", name)
}

// Notification returns the notification strategy registered under name
func (s *Strategies) Notification(name string) (ports.Notification, error) {
	switch normalize(name) {
	case NotificationEmail:
		return NewEmailNotification(s.out), nil
	case NotificationSMS:
		return NewSMSNotification(s.out), nil
	}
	return nil, unknown("notification channel", name)
}

// Resolve builds all three strategies of a selection
func (s *Strategies) Resolve(sel Selection) (ports.Payment, ports.Delivery, ports.Notification, error) {
	payment, err := s.Payment(sel.Payment)
	if err != nil {
		return nil, nil, nil, err
	}
	delivery, err := s.Delivery(sel.Delivery)
	if err != nil {
		return nil, nil, nil, err
	}
	notification, err := s.Notification(sel.Notification)
	if err != nil {
		return nil, nil, nil, err
	}
	return payment, delivery, notification, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func unknown(kind, name string) error {
	return errors.NewValidation("unknown "+kind, map[string]interface{}{
		"name": name,
	})
}
