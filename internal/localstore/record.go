package localstore

import "time"

// Record is the persisted guest cart. Amounts are plain JSON numbers so the
// record stays readable by any client sharing the device storage.
type Record struct {
	ID            string       `json:"id" validate:"required"`
	OwnerID       string       `json:"ownerId"`
	Items         []RecordLine `json:"items" validate:"required,dive"`
	TotalItems    *int         `json:"totalItems" validate:"required,gte=0"`
	SubtotalExTax float64      `json:"subtotalExTax"`
	TotalTax      float64      `json:"totalTax"`
	Total         *float64     `json:"total" validate:"required"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

type RecordLine struct {
	Product          RecordProduct `json:"product"`
	Quantity         int           `json:"quantity" validate:"gte=1"`
	UnitPriceWithTax float64       `json:"unitPriceWithTax"`
	LineTotal        float64       `json:"lineTotal"`
}

// RecordProduct is the product snapshot captured when the line was added.
type RecordProduct struct {
	ID           string  `json:"id" validate:"required"`
	Name         string  `json:"name"`
	Price        float64 `json:"price" validate:"gte=0"`
	TaxRate      float64 `json:"taxRate" validate:"gte=0"`
	PriceWithTax float64 `json:"priceWithTax"`
	Stock        int     `json:"stock"`
	Category     string  `json:"category,omitempty"`
	Unit         string  `json:"unit,omitempty"`
	Description  string  `json:"description,omitempty"`
}
