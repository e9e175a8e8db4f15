package cart

import (
	cartdto "github.com/Ivetta-Luis-Alberto-114588/front-startup/api/controllers/cart/dto"
	cartsvc "github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/cart"
)

// NewCartView renders the aggregate for the UI. A nil cart renders as nil.
func NewCartView(c *cartsvc.Cart) *cartdto.Cart {
	if c == nil {
		return nil
	}

	items := make([]cartdto.CartLine, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, cartdto.CartLine{
			ProductID:        line.Product.ID,
			Name:             line.Product.Name,
			Category:         line.Product.Category,
			Unit:             line.Product.Unit,
			Quantity:         line.Quantity,
			Stock:            line.Product.Stock,
			UnitPriceExTax:   cartsvc.UnitPriceExTax(line).StringFixed(2),
			TaxRate:          line.Product.TaxRate.StringFixed(2),
			UnitPriceWithTax: line.UnitPriceWithTax.StringFixed(2),
			LineTotal:        line.LineTotal.StringFixed(2),
		})
	}

	mode := cartsvc.ModeAuthenticated
	if c.IsGuest() {
		mode = cartsvc.ModeGuest
	}

	return &cartdto.Cart{
		ID:            c.ID,
		OwnerID:       c.OwnerID,
		Mode:          string(mode),
		Items:         items,
		TotalItems:    c.TotalItems,
		SubtotalExTax: c.SubtotalExTax.StringFixed(2),
		TotalTax:      c.TotalTax.StringFixed(2),
		GrandTotal:    c.GrandTotal.StringFixed(2),
		UpdatedAt:     c.UpdatedAt,
	}
}
