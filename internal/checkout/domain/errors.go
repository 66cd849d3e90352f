package domain

import "go-checkout/pkg/errors"

// Capability names used in OperationFailed details
const (
	CapabilityPayment      = "payment"
	CapabilityDelivery     = "delivery"
	CapabilityNotification = "notification"
)

// Domain-specific errors
var (
	ErrOrderRequired = errors.NewValidation("order is required", nil)
)

// NewPaymentFailed reports a charge that could not be completed
func NewPaymentFailed(reason string, err error) error {
	return errors.NewOperationFailed(CapabilityPayment, reason, err)
}

// NewDeliveryFailed reports a dispatch that could not be completed
func NewDeliveryFailed(reason string, err error) error {
	return errors.NewOperationFailed(CapabilityDelivery, reason, err)
}

// NewNotificationFailed reports a message that could not be sent
func NewNotificationFailed(reason string, err error) error {
	return errors.NewOperationFailed(CapabilityNotification, reason, err)
}
