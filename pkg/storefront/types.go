package storefront

import "time"

// Product mirrors GET /products/{id}. Price is ex-tax; TaxRate is a percentage.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	TaxRate      float64 `json:"taxRate"`
	PriceWithTax float64 `json:"priceWithTax"`
	Stock        int     `json:"stock"`
	Category     string  `json:"category,omitempty"`
	Unit         string  `json:"unit,omitempty"`
	Description  string  `json:"description,omitempty"`
	IsActive     bool    `json:"isActive"`
}

// CartItem is one line of the remote cart.
type CartItem struct {
	Product          Product `json:"product"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unitPrice"`
	TaxRate          float64 `json:"taxRate"`
	UnitPriceWithTax float64 `json:"unitPriceWithTax"`
	Subtotal         float64 `json:"subtotal"`
}

// Cart is the authoritative cart owned by the ordering platform.
type Cart struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	Subtotal   float64    `json:"subtotalWithoutTax"`
	TaxAmount  float64    `json:"totalTaxAmount"`
	Total      float64    `json:"total"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// AddItemRequest is the body of POST /cart/items.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemRequest is the body of PUT /cart/items/{productId}.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}
