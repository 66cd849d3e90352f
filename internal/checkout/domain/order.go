package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a single line of an order. It is immutable once built.
type OrderItem struct {
	name      string
	quantity  int
	unitPrice decimal.Decimal
}

// NewOrderItem creates a new line item
func NewOrderItem(name string, quantity int, unitPrice decimal.Decimal) OrderItem {
	return OrderItem{
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
	}
}

// Name returns the item name
func (i OrderItem) Name() string { return i.name }

// Quantity returns the ordered quantity
func (i OrderItem) Quantity() int { return i.quantity }

// UnitPrice returns the price of a single unit
func (i OrderItem) UnitPrice() decimal.Decimal { return i.unitPrice }

// LineTotal returns quantity × unit price
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// Order represents the order domain entity
type Order struct {
	ID    string
	items []OrderItem
}

// NewOrder creates an empty order with a fresh ID
func NewOrder() *Order {
	return &Order{ID: uuid.New().String()}
}

// AddItem appends an item to the order
func (o *Order) AddItem(item OrderItem) {
	o.items = append(o.items, item)
}

// Items returns a copy of the order lines in insertion order
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// Subtotal sums the line totals before any discount
func (o *Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// ComputeTotal returns the subtotal passed through the calculator's rules.
// A nil calculator applies no rules.
func (o *Order) ComputeTotal(calculator *DiscountCalculator) decimal.Decimal {
	if calculator == nil {
		calculator = NewDiscountCalculator()
	}
	return calculator.ApplyDiscount(o.Subtotal())
}
