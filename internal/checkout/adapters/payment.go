package adapters

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"go-checkout/internal/checkout/domain"
)

// CreditCardPayment charges a credit card
type CreditCardPayment struct {
	out io.Writer
}

// NewCreditCardPayment creates a credit card payment writing to out
func NewCreditCardPayment(out io.Writer) *CreditCardPayment {
	return &CreditCardPayment{out: out}
}

// Process implements ports.Payment
func (p *CreditCardPayment) Process(ctx context.Context, amount decimal.Decimal) error {
	return charge(p.out, amount, "Credit Card")
}

// PayPalPayment charges a PayPal account
type PayPalPayment struct {
	out io.Writer
}

// NewPayPalPayment creates a PayPal payment writing to out
func NewPayPalPayment(out io.Writer) *PayPalPayment {
	return &PayPalPayment{out: out}
}

// Process implements ports.Payment
func (p *PayPalPayment) Process(ctx context.Context, amount decimal.Decimal) error {
	return charge(p.out, amount, "PayPal")
}

// BankTransferPayment charges via bank transfer
type BankTransferPayment struct {
	out io.Writer
}

// NewBankTransferPayment creates a bank transfer payment writing to out
func NewBankTransferPayment(out io.Writer) *BankTransferPayment {
	return &BankTransferPayment{out: out}
}

// Process implements ports.Payment
func (p *BankTransferPayment) Process(ctx context.Context, amount decimal.Decimal) error {
	return charge(p.out, amount, "Bank Transfer")
}

func charge(out io.Writer, amount decimal.Decimal, method string) error {
	if _, err := fmt.Fprintf(out, "Paid $%s using %s\n", amount.StringFixed(2), method); err != nil {
		return domain.NewPaymentFailed(method+" gateway unreachable", err)
	}
	return nil
}
