package cart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/notifications"
	pkgerrors "github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/errors"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/logger"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/metrics"
)

const (
	opFetch       = "fetch"
	opAddItem     = "add_item"
	opSetQuantity = "set_quantity"
	opRemoveItem  = "remove_item"
	opClear       = "clear"
	opTransfer    = "transfer"
)

// Deps wires the engine collaborators. Metrics, Logger, State and Now are
// optional.
type Deps struct {
	Identity Identity
	Remote   RemoteCart
	Products ProductReader
	Store    GuestStore
	Sink     notifications.Sink
	Metrics  *metrics.CartMetrics
	Logger   *logger.Logger
	State    *State
	Now      func() time.Time
}

// Engine is the only writer of the cart state. Every operation picks the
// guest or authenticated strategy from the identity at call time.
type Engine struct {
	identity Identity
	guest    Strategy
	remote   Strategy
	store    GuestStore
	state    *State
	sink     notifications.Sink
	guard    *inflight
	metrics  *metrics.CartMetrics
	logg     *logger.Logger
}

func NewEngine(deps Deps) (*Engine, error) {
	if deps.Identity == nil {
		return nil, fmt.Errorf("identity required")
	}
	if deps.Remote == nil {
		return nil, fmt.Errorf("remote cart api required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("guest store required")
	}
	if deps.Sink == nil {
		return nil, fmt.Errorf("notification sink required")
	}
	catalog, err := NewCatalog(deps.Products)
	if err != nil {
		return nil, err
	}

	logg := deps.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	state := deps.State
	if state == nil {
		state = NewState()
	}
	now := deps.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	return &Engine{
		identity: deps.Identity,
		guest: &guestStrategy{
			store:   deps.Store,
			catalog: catalog,
			now:     now,
		},
		remote: &remoteStrategy{
			api:      deps.Remote,
			identity: deps.Identity,
			logg:     logg,
			now:      now,
		},
		store:   deps.Store,
		state:   state,
		sink:    deps.Sink,
		guard:   newInflight(),
		metrics: deps.Metrics,
		logg:    logg,
	}, nil
}

// Mode reports which strategy an operation issued now would use.
func (e *Engine) Mode(ctx context.Context) Mode {
	return e.strategyFor(ctx).Mode()
}

func (e *Engine) strategyFor(ctx context.Context) Strategy {
	if e.identity.IsAuthenticated(ctx) {
		return e.remote
	}
	return e.guest
}

// Current returns the last published cart, or nil before the first fetch.
func (e *Engine) Current() *Cart {
	return e.state.Current()
}

// Subscribe registers fn for every published cart; see State.Subscribe.
func (e *Engine) Subscribe(fn Observer) func() {
	return e.state.Subscribe(fn)
}

func (e *Engine) Fetch(ctx context.Context) (*Cart, error) {
	return e.run(ctx, opFetch, cartWideKey, func(ctx context.Context, s Strategy) (*Cart, error) {
		return s.Fetch(ctx)
	})
}

func (e *Engine) AddItem(ctx context.Context, productID string, quantity int) (*Cart, error) {
	productID = strings.TrimSpace(productID)
	return e.run(ctx, opAddItem, lineKey(productID), func(ctx context.Context, s Strategy) (*Cart, error) {
		if productID == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		if quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		return s.AddItem(ctx, productID, quantity)
	})
}

// SetQuantity updates a line; a quantity of zero or less removes it.
func (e *Engine) SetQuantity(ctx context.Context, productID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return e.RemoveItem(ctx, productID)
	}
	productID = strings.TrimSpace(productID)
	return e.run(ctx, opSetQuantity, lineKey(productID), func(ctx context.Context, s Strategy) (*Cart, error) {
		if productID == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		return s.SetQuantity(ctx, productID, quantity)
	})
}

func (e *Engine) RemoveItem(ctx context.Context, productID string) (*Cart, error) {
	productID = strings.TrimSpace(productID)
	return e.run(ctx, opRemoveItem, lineKey(productID), func(ctx context.Context, s Strategy) (*Cart, error) {
		if productID == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		return s.RemoveItem(ctx, productID)
	})
}

func (e *Engine) Clear(ctx context.Context) (*Cart, error) {
	return e.run(ctx, opClear, cartWideKey, func(ctx context.Context, s Strategy) (*Cart, error) {
		return s.Clear(ctx)
	})
}

func lineKey(productID string) string {
	return "line:" + productID
}

// run applies the in-flight guard, executes fn with the strategy for the
// current identity and publishes the result. Failures are reported to the
// sink and leave the state untouched.
func (e *Engine) run(ctx context.Context, op, key string, fn func(context.Context, Strategy) (*Cart, error)) (*Cart, error) {
	strategy := e.strategyFor(ctx)
	mode := string(strategy.Mode())
	ctx = e.logg.WithCartOp(ctx, op, mode)

	release, ok := e.guard.acquire(key)
	if !ok {
		e.metrics.IncRejected(op)
		e.logg.Debug(e.logg.WithField(ctx, "guard_key", key), "cart operation rejected, already in flight")
		return nil, ErrOperationInFlight
	}
	defer release()

	start := time.Now()
	cart, err := fn(ctx, strategy)
	e.metrics.ObserveDuration(op, mode, time.Since(start))
	if err != nil {
		e.fail(ctx, op, mode, err)
		return nil, err
	}

	e.publish(cart)
	e.metrics.IncSuccess(op, mode)
	return cart.Clone(), nil
}

func (e *Engine) publish(cart *Cart) {
	e.state.Publish(cart)
}

func (e *Engine) fail(ctx context.Context, op, mode string, err error) {
	code := pkgerrors.CodeOf(err)
	e.metrics.IncFailure(op, mode, string(code))

	ctx = e.logg.WithFields(ctx, pkgerrors.Dump(err).Fields())
	switch code {
	case pkgerrors.CodeValidation, pkgerrors.CodeNotFound, pkgerrors.CodeConflict:
		e.logg.Warn(ctx, "cart operation rejected")
	default:
		e.logg.Error(ctx, "cart operation failed", err)
	}
	e.sink.Notify(ctx, Translate(err))
}
