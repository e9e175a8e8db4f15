package cart

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/Ivetta-Luis-Alberto-114588/front-startup/api/controllers/cart/dto"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/api/responses"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/api/validators"
	cartsvc "github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/cart"
	pkgerrors "github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/errors"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/logger"
)

// Engine is the part of the cart engine the UI surface drives.
type Engine interface {
	Current() *cartsvc.Cart
	Subscribe(fn cartsvc.Observer) func()
	Fetch(ctx context.Context) (*cartsvc.Cart, error)
	AddItem(ctx context.Context, productID string, quantity int) (*cartsvc.Cart, error)
	SetQuantity(ctx context.Context, productID string, quantity int) (*cartsvc.Cart, error)
	RemoveItem(ctx context.Context, productID string) (*cartsvc.Cart, error)
	Clear(ctx context.Context) (*cartsvc.Cart, error)
}

var errEngineUnavailable = pkgerrors.New(pkgerrors.CodeInternal, "cart engine unavailable")

// CartFetch loads the cart for the current identity and publishes it.
func CartFetch(engine Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, errEngineUnavailable)
			return
		}

		c, err := engine.Fetch(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, NewCartView(c))
	}
}

// CartCurrent returns the last published cart without touching any backend.
func CartCurrent(engine Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, errEngineUnavailable)
			return
		}
		responses.WriteSuccess(w, NewCartView(engine.Current()))
	}
}

// CartAddItem adds quantity units of a product, merging into an existing line.
func CartAddItem(engine Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, errEngineUnavailable)
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ProductID(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, err := engine.AddItem(r.Context(), productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, NewCartView(c))
	}
}

// CartSetQuantity sets the absolute quantity of a line; zero removes it.
func CartSetQuantity(engine Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, errEngineUnavailable)
			return
		}

		productID, err := validators.ProductID(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.SetQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, err := engine.SetQuantity(r.Context(), productID, *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, NewCartView(c))
	}
}

// CartRemoveItem drops a line.
func CartRemoveItem(engine Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, errEngineUnavailable)
			return
		}

		productID, err := validators.ProductID(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, err := engine.RemoveItem(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, NewCartView(c))
	}
}

// CartClear empties the cart.
func CartClear(engine Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, errEngineUnavailable)
			return
		}

		c, err := engine.Clear(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, NewCartView(c))
	}
}
