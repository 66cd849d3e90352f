package domain

import (
	"strings"

	"github.com/shopspring/decimal"

	"go-checkout/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// DiscountRule transforms a price. Rules may return negative values.
type DiscountRule interface {
	Apply(price decimal.Decimal) decimal.Decimal
}

// RuleFunc adapts a plain function to a DiscountRule
type RuleFunc func(price decimal.Decimal) decimal.Decimal

// Apply calls f(price)
func (f RuleFunc) Apply(price decimal.Decimal) decimal.Decimal {
	return f(price)
}

// PercentageRule takes Rate percent off the price.
// Rate is expected in 0..100 but not enforced.
type PercentageRule struct {
	Rate decimal.Decimal
}

// Apply implements DiscountRule
func (r PercentageRule) Apply(price decimal.Decimal) decimal.Decimal {
	return price.Sub(price.Mul(r.Rate).Div(hundred))
}

// FixedRule subtracts a fixed amount from the price
type FixedRule struct {
	Amount decimal.Decimal
}

// Apply implements DiscountRule
func (r FixedRule) Apply(price decimal.Decimal) decimal.Decimal {
	return price.Sub(r.Amount)
}

// RuleKind names a discount rule variant
type RuleKind string

const (
	RuleKindPercentage RuleKind = "percentage"
	RuleKindFixed      RuleKind = "fixed"
)

// ParseRule builds the rule variant named by kind
func ParseRule(kind string, value decimal.Decimal) (DiscountRule, error) {
	switch RuleKind(strings.ToLower(strings.TrimSpace(kind))) {
	case RuleKindPercentage:
		return PercentageRule{Rate: value}, nil
	case RuleKindFixed:
		return FixedRule{Amount: value}, nil
	default:
		return nil, errors.NewValidation("unknown discount rule type", map[string]interface{}{
			"type": kind,
		})
	}
}

// DiscountCalculator applies an ordered pipeline of rules
type DiscountCalculator struct {
	rules []DiscountRule
}

// NewDiscountCalculator creates a calculator with the given rules in order
func NewDiscountCalculator(rules ...DiscountRule) *DiscountCalculator {
	c := &DiscountCalculator{}
	for _, rule := range rules {
		c.AddRule(rule)
	}
	return c
}

// AddRule appends a rule to the end of the pipeline
func (c *DiscountCalculator) AddRule(rule DiscountRule) {
	c.rules = append(c.rules, rule)
}

// Len returns the number of rules
func (c *DiscountCalculator) Len() int {
	return len(c.rules)
}

// ApplyDiscount folds price through every rule in order. Intermediate
// results may go negative; only the final result is clamped at zero.
func (c *DiscountCalculator) ApplyDiscount(price decimal.Decimal) decimal.Decimal {
	result := price
	for _, rule := range c.rules {
		result = rule.Apply(result)
	}
	return decimal.Max(result, decimal.Zero)
}
