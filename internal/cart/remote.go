package cart

import (
	"context"
	"time"

	pkgerrors "github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/errors"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/logger"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/storefront"
	"github.com/shopspring/decimal"
)

var driftTolerance = decimal.NewFromFloat(0.01)

// remoteStrategy delegates every operation to the platform and treats the
// returned cart as authoritative.
type remoteStrategy struct {
	api      RemoteCart
	identity Identity
	logg     *logger.Logger
	now      func() time.Time
}

func (r *remoteStrategy) Mode() Mode { return ModeAuthenticated }

// Fetch treats a missing remote cart as an empty one.
func (r *remoteStrategy) Fetch(ctx context.Context) (*Cart, error) {
	remote, err := r.api.GetCart(ctx)
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
			r.logg.Debug(ctx, "no remote cart yet, starting empty")
			return newEmptyCart("", r.identity.UserID(ctx), r.now()), nil
		}
		return nil, err
	}
	return r.fromRemote(ctx, remote), nil
}

func (r *remoteStrategy) AddItem(ctx context.Context, productID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	remote, err := r.api.AddCartItem(ctx, storefront.AddItemRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return nil, err
	}
	return r.fromRemote(ctx, remote), nil
}

func (r *remoteStrategy) SetQuantity(ctx context.Context, productID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	remote, err := r.api.UpdateCartItem(ctx, productID, storefront.UpdateItemRequest{Quantity: quantity})
	if err != nil {
		return nil, err
	}
	return r.fromRemote(ctx, remote), nil
}

func (r *remoteStrategy) RemoveItem(ctx context.Context, productID string) (*Cart, error) {
	remote, err := r.api.RemoveCartItem(ctx, productID)
	if err != nil {
		return nil, err
	}
	return r.fromRemote(ctx, remote), nil
}

func (r *remoteStrategy) Clear(ctx context.Context) (*Cart, error) {
	remote, err := r.api.ClearCart(ctx)
	if err != nil {
		return nil, err
	}
	return r.fromRemote(ctx, remote), nil
}

// fromRemote maps the platform cart and derives totals locally. Server totals
// that disagree by more than a cent are logged, the local derivation wins.
func (r *remoteStrategy) fromRemote(ctx context.Context, remote *storefront.Cart) *Cart {
	if remote == nil {
		return newEmptyCart("", r.identity.UserID(ctx), r.now())
	}

	cart := &Cart{
		ID:        remote.ID,
		OwnerID:   remote.UserID,
		Items:     make([]Line, 0, len(remote.Items)),
		UpdatedAt: remote.UpdatedAt,
	}
	if cart.OwnerID == "" {
		cart.OwnerID = r.identity.UserID(ctx)
	}
	if cart.UpdatedAt.IsZero() {
		cart.UpdatedAt = r.now()
	}

	for _, item := range remote.Items {
		if item.Quantity < 1 {
			continue
		}
		snapshot := snapshotFromProduct(item.Product)
		if item.UnitPrice != 0 {
			snapshot.UnitPriceExTax = round2(decimal.NewFromFloat(item.UnitPrice))
		}
		if item.TaxRate != 0 {
			snapshot.TaxRate = decimal.NewFromFloat(item.TaxRate)
		}
		cart.Items = append(cart.Items, Line{
			Product:          snapshot,
			Quantity:         item.Quantity,
			UnitPriceWithTax: round2(decimal.NewFromFloat(item.UnitPriceWithTax)),
		})
	}
	Recalculate(cart)

	serverTotal := decimal.NewFromFloat(remote.Total)
	if len(cart.Items) > 0 && cart.GrandTotal.Sub(serverTotal).Abs().GreaterThan(driftTolerance) {
		r.logg.Warn(r.logg.WithFields(ctx, map[string]any{
			"cart_id":      cart.ID,
			"server_total": serverTotal.StringFixed(2),
			"local_total":  cart.GrandTotal.StringFixed(2),
		}), "remote cart total differs from derived total")
	}
	return cart
}
