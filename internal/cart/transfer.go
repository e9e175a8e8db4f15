package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/notifications"
	pkgerrors "github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/errors"
	"go.uber.org/multierr"
)

// TransferReport describes how the guest cart was replayed at sign-in.
type TransferReport struct {
	Attempted   []string
	Transferred []string
	Failed      []string
	// Err combines the per-line failures; nil when every line made it.
	Err error
}

func (r *TransferReport) Partial() bool {
	return r != nil && len(r.Failed) > 0
}

// TransferGuestCart replays every guest line against the remote cart, one
// add per line in cart order. Failing lines are logged and skipped. The guest
// record is deleted afterwards and the remote cart is fetched and published.
// It must run after the identity switched to authenticated. It waits for any
// cart-wide operation already running.
func (e *Engine) TransferGuestCart(ctx context.Context) (*TransferReport, error) {
	report := &TransferReport{}
	ctx = e.logg.WithCartOp(ctx, opTransfer, string(ModeAuthenticated))

	if !e.identity.IsAuthenticated(ctx) {
		err := pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in before transferring the guest cart")
		e.fail(ctx, opTransfer, string(ModeGuest), err)
		return report, err
	}

	// queue behind a running fetch or clear; the transfer is never retried
	release, err := e.guard.wait(ctx, cartWideKey)
	if err != nil {
		e.logg.Warn(e.logg.WithField(ctx, "error", err.Error()), "guest cart transfer abandoned while waiting")
		return report, err
	}
	defer release()

	start := time.Now()
	defer func() {
		e.metrics.ObserveDuration(opTransfer, string(ModeAuthenticated), time.Since(start))
	}()

	record, found := e.store.Load(ctx)
	if found {
		guest := cartFromRecord(record)
		for _, line := range guest.Items {
			id := line.Product.ID
			report.Attempted = append(report.Attempted, id)

			if _, err := e.remote.AddItem(ctx, id, line.Quantity); err != nil {
				report.Failed = append(report.Failed, id)
				report.Err = multierr.Append(report.Err, fmt.Errorf("line %s: %w", id, err))
				e.logg.Warn(e.logg.WithFields(ctx, map[string]any{
					"product_id": id,
					"quantity":   line.Quantity,
					"error":      err.Error(),
				}), "guest line transfer failed, skipping")
				continue
			}
			report.Transferred = append(report.Transferred, id)
		}
		e.store.Delete(ctx)
	}
	e.metrics.AddTransferLines(len(report.Transferred), len(report.Failed))

	cart, err := e.remote.Fetch(ctx)
	if err != nil {
		e.fail(ctx, opTransfer, string(ModeAuthenticated), err)
		return report, err
	}
	e.publish(cart)
	e.metrics.IncSuccess(opTransfer, string(ModeAuthenticated))

	if report.Partial() {
		e.sink.Notify(ctx, notifications.Notice{
			Title:    titleCart,
			Message:  messageTransferred,
			Severity: notifications.SeverityWarning,
		})
	}
	if len(report.Attempted) > 0 {
		e.logg.Info(e.logg.WithFields(ctx, map[string]any{
			"attempted":   len(report.Attempted),
			"transferred": len(report.Transferred),
			"failed":      len(report.Failed),
		}), "guest cart transferred")
	}
	return report, nil
}
