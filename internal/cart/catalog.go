package cart

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/errors"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/storefront"
	"github.com/shopspring/decimal"
)

// Catalog captures product snapshots for guest lines.
type Catalog struct {
	products ProductReader
}

func NewCatalog(products ProductReader) (*Catalog, error) {
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	return &Catalog{products: products}, nil
}

// Snapshot loads productID and captures it. Inactive products are rejected.
func (c *Catalog) Snapshot(ctx context.Context, productID string) (ProductSnapshot, error) {
	product, err := c.products.GetProduct(ctx, productID)
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
			return ProductSnapshot{}, ErrProductNotFound
		}
		return ProductSnapshot{}, err
	}
	if product == nil {
		return ProductSnapshot{}, ErrProductNotFound
	}
	if !product.IsActive {
		return ProductSnapshot{}, ErrProductUnavailable
	}
	snapshot := snapshotFromProduct(*product)
	if snapshot.ID == "" {
		snapshot.ID = productID
	}
	return snapshot, nil
}

func snapshotFromProduct(p storefront.Product) ProductSnapshot {
	return ProductSnapshot{
		ID:             strings.TrimSpace(p.ID),
		Name:           p.Name,
		UnitPriceExTax: round2(decimal.NewFromFloat(p.Price)),
		TaxRate:        decimal.NewFromFloat(p.TaxRate),
		PriceWithTax:   round2(decimal.NewFromFloat(p.PriceWithTax)),
		Stock:          p.Stock,
		Category:       p.Category,
		Unit:           p.Unit,
		Description:    p.Description,
	}
}
