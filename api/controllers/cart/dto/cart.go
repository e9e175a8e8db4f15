package cartdto

import "time"

// AddItemRequest is the body of POST /api/v1/cart/items.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// SetQuantityRequest is the body of PUT /api/v1/cart/items/{productId}.
// A quantity of zero removes the line.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

type CartLine struct {
	ProductID        string `json:"productId"`
	Name             string `json:"name"`
	Category         string `json:"category,omitempty"`
	Unit             string `json:"unit,omitempty"`
	Quantity         int    `json:"quantity"`
	Stock            int    `json:"stock"`
	UnitPriceExTax   string `json:"unitPriceExTax"`
	TaxRate          string `json:"taxRate"`
	UnitPriceWithTax string `json:"unitPriceWithTax"`
	LineTotal        string `json:"lineTotal"`
}

// Cart renders amounts as fixed two-decimal strings.
type Cart struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"ownerId"`
	Mode          string     `json:"mode"`
	Items         []CartLine `json:"items"`
	TotalItems    int        `json:"totalItems"`
	SubtotalExTax string     `json:"subtotalExTax"`
	TotalTax      string     `json:"totalTax"`
	GrandTotal    string     `json:"grandTotal"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
