package adapters

import (
	"context"
	"fmt"
	"io"

	"go-checkout/internal/checkout/domain"
)

// EmailNotification sends messages by email
type EmailNotification struct {
	out io.Writer
}

// NewEmailNotification creates an email notification writing to out
func NewEmailNotification(out io.Writer) *EmailNotification {
	return &EmailNotification{out: out}
}

// Send implements ports.Notification
func (n *EmailNotification) Send(ctx context.Context, message string) error {
	return notify(n.out, "Email", message)
}

// SMSNotification sends messages by SMS
type SMSNotification struct {
	out io.Writer
}

// NewSMSNotification creates an SMS notification writing to out
func NewSMSNotification(out io.Writer) *SMSNotification {
	return &SMSNotification{out: out}
}

// Send implements ports.Notification
func (n *SMSNotification) Send(ctx context.Context, message string) error {
	return notify(n.out, "SMS", message)
}

func notify(out io.Writer, channel, message string) error {
	if _, err := fmt.Fprintf(out, "%s notification: %s\n", channel, message); err != nil {
		return domain.NewNotificationFailed(channel+" channel unreachable", err)
	}
	return nil
}
