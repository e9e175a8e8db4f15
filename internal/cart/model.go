package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// GuestCartID identifies a cart that only exists on this device.
	GuestCartID = "local"
	// AnonymousOwner is the owner of every guest cart.
	AnonymousOwner = "anonymous"
)

// Mode selects which strategy serves an operation.
type Mode string

const (
	ModeGuest         Mode = "guest"
	ModeAuthenticated Mode = "authenticated"
)

// ProductSnapshot is the product as it was when the line entered the cart.
// Catalog price changes never reach a line already in the cart.
type ProductSnapshot struct {
	ID             string
	Name           string
	UnitPriceExTax decimal.Decimal
	TaxRate        decimal.Decimal
	PriceWithTax   decimal.Decimal
	Stock          int
	Category       string
	Unit           string
	Description    string
}

// Line is one product entry. Quantity is always at least 1.
type Line struct {
	Product          ProductSnapshot
	Quantity         int
	UnitPriceWithTax decimal.Decimal
	LineTotal        decimal.Decimal
}

// Cart is the aggregate every view renders. The totals are derived from Items
// by Recalculate and are never set on their own.
type Cart struct {
	ID            string
	OwnerID       string
	Items         []Line
	TotalItems    int
	SubtotalExTax decimal.Decimal
	TotalTax      decimal.Decimal
	GrandTotal    decimal.Decimal
	UpdatedAt     time.Time
}

// IsGuest reports whether the cart lives only on this device.
func (c *Cart) IsGuest() bool {
	return c != nil && c.ID == GuestCartID
}

// IndexOf returns the position of the line for productID, or -1.
func (c *Cart) IndexOf(productID string) int {
	if c == nil {
		return -1
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy. Nil stays nil.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Items = make([]Line, len(c.Items))
	copy(clone.Items, c.Items)
	return &clone
}

func newEmptyCart(id, owner string, now time.Time) *Cart {
	cart := &Cart{
		ID:        id,
		OwnerID:   owner,
		Items:     []Line{},
		UpdatedAt: now,
	}
	Recalculate(cart)
	return cart
}

// NewGuestCart synthesizes the empty device-local cart.
func NewGuestCart(now time.Time) *Cart {
	return newEmptyCart(GuestCartID, AnonymousOwner, now)
}
