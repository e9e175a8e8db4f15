package cart

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/api/responses"
	cartsvc "github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/cart"
	pkgerrors "github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/errors"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/logger"
)

const (
	streamEvent     = "cart"
	streamKeepAlive = 15 * time.Second
)

// CartStream pushes every cart written to the container as a server-sent
// event. Slow clients only ever see the latest value. The subscription is
// released when the client goes away.
func CartStream(engine Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, errEngineUnavailable)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
			return
		}

		updates := make(chan *cartsvc.Cart, 1)
		unsubscribe := engine.Subscribe(func(c *cartsvc.Cart) {
			for {
				select {
				case updates <- c:
					return
				default:
				}
				select {
				case <-updates:
				default:
				}
			}
		})
		defer unsubscribe()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		ctx := r.Context()
		if logg != nil {
			logg.Debug(ctx, "cart stream opened")
		}

		keepAlive := time.NewTicker(streamKeepAlive)
		defer keepAlive.Stop()

		var seq uint64
		for {
			select {
			case <-ctx.Done():
				if logg != nil {
					logg.Debug(ctx, "cart stream closed")
				}
				return
			case c := <-updates:
				seq++
				if err := writeEvent(w, seq, c); err != nil {
					if logg != nil {
						logg.Warn(logg.WithField(ctx, "error", err.Error()), "cart stream write failed")
					}
					return
				}
				flusher.Flush()
			case <-keepAlive.C:
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, seq uint64, c *cartsvc.Cart) error {
	payload, err := json.Marshal(NewCartView(c))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", seq, streamEvent, payload)
	return err
}
