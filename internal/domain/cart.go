package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CartItem is one line of a shopping cart.
type CartItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is UnitPrice times Quantity, unrounded.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShoppingCart accumulates items by name.
type ShoppingCart struct {
	items       map[string]*CartItem
	strictPrice bool
}

// NewShoppingCart returns an empty cart. With strictPrice, re-adding an item at
// a different unit price is rejected; otherwise the first price is kept.
func NewShoppingCart(strictPrice bool) *ShoppingCart {
	return &ShoppingCart{items: make(map[string]*CartItem), strictPrice: strictPrice}
}

// Add adds quantity units of an item. Adding a negative quantity reduces the
// line, but the resulting quantity must stay positive.
func (c *ShoppingCart) Add(name string, unitPrice decimal.Decimal, quantity int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: item name", ErrEmptyName)
	}
	if unitPrice.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativePrice, unitPrice)
	}
	if quantity == 0 {
		return fmt.Errorf("%w: quantity cannot be zero", ErrInvalidQuantity)
	}

	item, ok := c.items[name]
	if !ok {
		if quantity < 0 {
			return fmt.Errorf("%w: quantity must be positive", ErrInvalidQuantity)
		}
		c.items[name] = &CartItem{Name: name, UnitPrice: unitPrice, Quantity: quantity}
		return nil
	}

	if !item.UnitPrice.Equal(unitPrice) && c.strictPrice {
		return fmt.Errorf("%w: %s costs %s, not %s", ErrPriceMismatch, name, item.UnitPrice, unitPrice)
	}
	next := item.Quantity + quantity
	if next <= 0 {
		return fmt.Errorf("%w: resulting quantity %d for %s", ErrInvalidQuantity, next, name)
	}
	item.Quantity = next
	return nil
}

// Remove drops an item line and reports whether it existed.
func (c *ShoppingCart) Remove(name string) bool {
	name = strings.TrimSpace(name)
	if _, ok := c.items[name]; !ok {
		return false
	}
	delete(c.items, name)
	return true
}

// Items lists the lines ordered by name.
func (c *ShoppingCart) Items() []CartItem {
	out := make([]CartItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Total sums all lines and rounds to cents.
func (c *ShoppingCart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return RoundMoney(total)
}
