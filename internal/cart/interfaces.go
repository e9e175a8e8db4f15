package cart

import (
	"context"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/localstore"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/storefront"
)

// Identity is polled on every operation to pick the strategy.
type Identity interface {
	IsAuthenticated(ctx context.Context) bool
	UserID(ctx context.Context) string
}

// RemoteCart is the platform's cart API.
type RemoteCart interface {
	GetCart(ctx context.Context) (*storefront.Cart, error)
	AddCartItem(ctx context.Context, req storefront.AddItemRequest) (*storefront.Cart, error)
	UpdateCartItem(ctx context.Context, productID string, req storefront.UpdateItemRequest) (*storefront.Cart, error)
	RemoveCartItem(ctx context.Context, productID string) (*storefront.Cart, error)
	ClearCart(ctx context.Context) (*storefront.Cart, error)
}

// ProductReader resolves catalog entries for guest lines.
type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (*storefront.Product, error)
}

// GuestStore is the durable copy of the guest cart.
type GuestStore interface {
	Load(ctx context.Context) (*localstore.Record, bool)
	Save(ctx context.Context, record localstore.Record)
	Delete(ctx context.Context)
}

// Strategy serves the cart operations for one mode.
type Strategy interface {
	Mode() Mode
	Fetch(ctx context.Context) (*Cart, error)
	AddItem(ctx context.Context, productID string, quantity int) (*Cart, error)
	SetQuantity(ctx context.Context, productID string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, productID string) (*Cart, error)
	Clear(ctx context.Context) (*Cart, error)
}
