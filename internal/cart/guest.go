package cart

import (
	"context"
	"sync"
	"time"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/localstore"
	"github.com/shopspring/decimal"
)

// guestStrategy keeps the cart on the device. Product lookups run before the
// read-modify-write section so a slow catalog never holds the lock.
type guestStrategy struct {
	store   GuestStore
	catalog *Catalog
	now     func() time.Time

	mu sync.Mutex
}

func (g *guestStrategy) Mode() Mode { return ModeGuest }

func (g *guestStrategy) load(ctx context.Context) *Cart {
	record, ok := g.store.Load(ctx)
	if !ok {
		return NewGuestCart(g.now())
	}
	return cartFromRecord(record)
}

func (g *guestStrategy) persist(ctx context.Context, cart *Cart) *Cart {
	cart.UpdatedAt = g.now()
	Recalculate(cart)
	g.store.Save(ctx, recordFromCart(cart))
	return cart
}

func (g *guestStrategy) Fetch(ctx context.Context) (*Cart, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.load(ctx), nil
}

func (g *guestStrategy) AddItem(ctx context.Context, productID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	snapshot, err := g.catalog.Snapshot(ctx, productID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	cart := g.load(ctx)
	if idx := cart.IndexOf(snapshot.ID); idx >= 0 {
		merged := cart.Items[idx].Quantity + quantity
		if exceedsStock(snapshot.Stock, merged) {
			return nil, ErrInsufficientStock
		}
		cart.Items[idx].Quantity = merged
	} else {
		if exceedsStock(snapshot.Stock, quantity) {
			return nil, ErrInsufficientStock
		}
		cart.Items = append(cart.Items, NewLine(snapshot, quantity))
	}
	return g.persist(ctx, cart), nil
}

func (g *guestStrategy) SetQuantity(ctx context.Context, productID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	cart := g.load(ctx)
	idx := cart.IndexOf(productID)
	if idx < 0 {
		return nil, ErrLineNotFound
	}
	if exceedsStock(cart.Items[idx].Product.Stock, quantity) {
		return nil, ErrInsufficientStock
	}
	cart.Items[idx].Quantity = quantity
	return g.persist(ctx, cart), nil
}

func (g *guestStrategy) RemoveItem(ctx context.Context, productID string) (*Cart, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cart := g.load(ctx)
	idx := cart.IndexOf(productID)
	if idx < 0 {
		return nil, ErrLineNotFound
	}
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	return g.persist(ctx, cart), nil
}

func (g *guestStrategy) Clear(ctx context.Context) (*Cart, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.store.Delete(ctx)
	return NewGuestCart(g.now()), nil
}

// exceedsStock reports whether quantity is above a known stock level. Zero
// means the catalog did not report stock.
func exceedsStock(stock, quantity int) bool {
	return stock > 0 && quantity > stock
}

func recordFromCart(cart *Cart) localstore.Record {
	items := make([]localstore.RecordLine, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, localstore.RecordLine{
			Product: localstore.RecordProduct{
				ID:           line.Product.ID,
				Name:         line.Product.Name,
				Price:        line.Product.UnitPriceExTax.InexactFloat64(),
				TaxRate:      line.Product.TaxRate.InexactFloat64(),
				PriceWithTax: line.Product.PriceWithTax.InexactFloat64(),
				Stock:        line.Product.Stock,
				Category:     line.Product.Category,
				Unit:         line.Product.Unit,
				Description:  line.Product.Description,
			},
			Quantity:         line.Quantity,
			UnitPriceWithTax: line.UnitPriceWithTax.InexactFloat64(),
			LineTotal:        line.LineTotal.InexactFloat64(),
		})
	}
	totalItems := cart.TotalItems
	total := cart.GrandTotal.InexactFloat64()
	return localstore.Record{
		ID:            cart.ID,
		OwnerID:       cart.OwnerID,
		Items:         items,
		TotalItems:    &totalItems,
		SubtotalExTax: cart.SubtotalExTax.InexactFloat64(),
		TotalTax:      cart.TotalTax.InexactFloat64(),
		Total:         &total,
		UpdatedAt:     cart.UpdatedAt,
	}
}

// cartFromRecord rebuilds the cart from its lines; stored totals are ignored
// and derived again.
func cartFromRecord(record *localstore.Record) *Cart {
	cart := &Cart{
		ID:        record.ID,
		OwnerID:   record.OwnerID,
		Items:     make([]Line, 0, len(record.Items)),
		UpdatedAt: record.UpdatedAt,
	}
	if cart.OwnerID == "" {
		cart.OwnerID = AnonymousOwner
	}
	for _, item := range record.Items {
		cart.Items = append(cart.Items, Line{
			Product: ProductSnapshot{
				ID:             item.Product.ID,
				Name:           item.Product.Name,
				UnitPriceExTax: round2(decimal.NewFromFloat(item.Product.Price)),
				TaxRate:        decimal.NewFromFloat(item.Product.TaxRate),
				PriceWithTax:   round2(decimal.NewFromFloat(item.Product.PriceWithTax)),
				Stock:          item.Product.Stock,
				Category:       item.Product.Category,
				Unit:           item.Product.Unit,
				Description:    item.Product.Description,
			},
			Quantity:         item.Quantity,
			UnitPriceWithTax: round2(decimal.NewFromFloat(item.UnitPriceWithTax)),
		})
	}
	Recalculate(cart)
	return cart
}
