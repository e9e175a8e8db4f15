package cart

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/localstore"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/notifications"
	pkgerrors "github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/errors"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/storefront"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type stubIdentity struct {
	authenticated atomic.Bool
	userID        string
}

func (s *stubIdentity) IsAuthenticated(context.Context) bool { return s.authenticated.Load() }
func (s *stubIdentity) UserID(context.Context) string {
	if s.authenticated.Load() {
		return s.userID
	}
	return AnonymousOwner
}

type recordingSink struct {
	mu      sync.Mutex
	notices []notifications.Notice
}

func (r *recordingSink) Notify(_ context.Context, n notifications.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recordingSink) all() []notifications.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notifications.Notice(nil), r.notices...)
}

type stubProducts map[string]storefront.Product

func (s stubProducts) GetProduct(_ context.Context, id string) (*storefront.Product, error) {
	p, ok := s[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "GET /products failed")
	}
	return &p, nil
}

func catalogProducts() stubProducts {
	return stubProducts{
		"p-1":    {ID: "p-1", Name: "Pizza", Price: 100, TaxRate: 21, PriceWithTax: 121, Stock: 10, IsActive: true},
		"p-2":    {ID: "p-2", Name: "Empanada", Price: 10.5, TaxRate: 10.5, PriceWithTax: 11.6, Stock: 50, IsActive: true},
		"p-3":    {ID: "p-3", Name: "Soda", Price: 2.99, TaxRate: 21, PriceWithTax: 3.62, Stock: 3, IsActive: true},
		"p-off":  {ID: "p-off", Name: "Retired", Price: 5, TaxRate: 21, Stock: 10, IsActive: false},
		"p-open": {ID: "p-open", Name: "Bread", Price: 1, TaxRate: 0, PriceWithTax: 1, IsActive: true},
	}
}

// fakeRemote emulates the platform cart for one signed-in customer.
type fakeRemote struct {
	mu       sync.Mutex
	products stubProducts
	items    []storefront.CartItem
	exists   bool

	getErr error
	// getBlock, when set, holds GetCart until it is closed; getEntered is
	// signalled first.
	getBlock   chan struct{}
	getEntered chan struct{}
	addErr     map[string]error
	// block, when set, holds AddCartItem until it is closed; entered is
	// signalled first.
	block   chan struct{}
	entered chan struct{}
	adds    []storefront.AddItemRequest
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{products: catalogProducts(), addErr: map[string]error{}}
}

func (f *fakeRemote) snapshot() *storefront.Cart {
	cart := &storefront.Cart{ID: "srv-1", UserID: "user-1", Items: append([]storefront.CartItem(nil), f.items...)}
	for _, item := range f.items {
		cart.TotalItems += item.Quantity
		cart.Total += item.Subtotal
	}
	return cart
}

func (f *fakeRemote) GetCart(context.Context) (*storefront.Cart, error) {
	if f.getEntered != nil {
		f.getEntered <- struct{}{}
	}
	if f.getBlock != nil {
		<-f.getBlock
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if !f.exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "GET /cart failed")
	}
	return f.snapshot(), nil
}

func (f *fakeRemote) AddCartItem(_ context.Context, req storefront.AddItemRequest) (*storefront.Cart, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.adds = append(f.adds, req)
	if err := f.addErr[req.ProductID]; err != nil {
		return nil, err
	}
	product, ok := f.products[req.ProductID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "POST /cart/items failed")
	}
	f.exists = true
	for i := range f.items {
		if f.items[i].Product.ID == req.ProductID {
			f.items[i].Quantity += req.Quantity
			f.items[i].Subtotal = float64(f.items[i].Quantity) * f.items[i].UnitPriceWithTax
			return f.snapshot(), nil
		}
	}
	f.items = append(f.items, storefront.CartItem{
		Product:          product,
		Quantity:         req.Quantity,
		UnitPrice:        product.Price,
		TaxRate:          product.TaxRate,
		UnitPriceWithTax: product.PriceWithTax,
		Subtotal:         float64(req.Quantity) * product.PriceWithTax,
	})
	return f.snapshot(), nil
}

func (f *fakeRemote) UpdateCartItem(_ context.Context, productID string, req storefront.UpdateItemRequest) (*storefront.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].Product.ID == productID {
			f.items[i].Quantity = req.Quantity
			f.items[i].Subtotal = float64(req.Quantity) * f.items[i].UnitPriceWithTax
			return f.snapshot(), nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "PUT /cart/items failed")
}

func (f *fakeRemote) RemoveCartItem(_ context.Context, productID string) (*storefront.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].Product.ID == productID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return f.snapshot(), nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "DELETE /cart/items failed")
}

func (f *fakeRemote) ClearCart(context.Context) (*storefront.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = nil
	return f.snapshot(), nil
}

type harness struct {
	engine   *Engine
	identity *stubIdentity
	remote   *fakeRemote
	store    *localstore.Store
	backend  *localstore.MemoryBackend
	sink     *recordingSink
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := localstore.NewMemoryBackend()
	store, err := localstore.New(backend, "cart", nil)
	if err != nil {
		t.Fatalf("local store: %v", err)
	}
	h := &harness{
		identity: &stubIdentity{userID: "user-1"},
		remote:   newFakeRemote(),
		store:    store,
		backend:  backend,
		sink:     &recordingSink{},
	}
	engine, err := NewEngine(Deps{
		Identity: h.identity,
		Remote:   h.remote,
		Products: catalogProducts(),
		Store:    store,
		Sink:     h.sink,
		Now:      func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	h.engine = engine
	return h
}

func (h *harness) signIn() {
	h.identity.authenticated.Store(true)
}

// mustCart wraps an engine call: mustCart(t)(h.engine.Fetch(ctx)).
func mustCart(t *testing.T) func(*Cart, error) *Cart {
	t.Helper()
	return func(cart *Cart, err error) *Cart {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cart == nil {
			t.Fatal("expected a cart")
		}
		return cart
	}
}
