package cart

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInflight_AcquireRelease(t *testing.T) {
	g := newInflight()
	release, ok := g.acquire("line:p-1")
	if !ok {
		t.Fatal("first acquire should succeed")
	}
	if _, ok := g.acquire("line:p-1"); ok {
		t.Fatal("second acquire on the same key should fail")
	}
	if _, ok := g.acquire("line:p-2"); !ok {
		t.Fatal("other keys are independent")
	}
	release()
	release()
	if g.isBusy("line:p-1") {
		t.Fatal("key should be free after release")
	}
}

func TestInflight_WaitTakesKeyAfterRelease(t *testing.T) {
	g := newInflight()
	release, _ := g.acquire(cartWideKey)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := g.wait(ctx, cartWideKey); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline while the key is busy, got %v", err)
	}

	taken := make(chan func(), 1)
	go func() {
		next, err := g.wait(context.Background(), cartWideKey)
		if err != nil {
			t.Errorf("wait: %v", err)
			close(taken)
			return
		}
		taken <- next
	}()

	release()
	next, ok := <-taken
	if !ok {
		t.Fatal("wait failed")
	}
	if !g.isBusy(cartWideKey) {
		t.Fatal("waiter should hold the key")
	}
	next()
	if g.isBusy(cartWideKey) {
		t.Fatal("key should be free after the waiter releases it")
	}
}

func TestEngine_RejectsConcurrentOperationOnSameLine(t *testing.T) {
	h := newHarness(t)
	h.signIn()
	ctx := context.Background()

	gate := make(chan struct{})
	h.remote.block = gate
	h.remote.entered = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		_, err := h.engine.AddItem(ctx, "p-1", 1)
		done <- err
	}()
	<-h.remote.entered

	if _, err := h.engine.SetQuantity(ctx, "p-1", 3); !errors.Is(err, ErrOperationInFlight) {
		t.Fatalf("expected ErrOperationInFlight, got %v", err)
	}
	if _, err := h.engine.RemoveItem(ctx, "p-1"); !errors.Is(err, ErrOperationInFlight) {
		t.Fatalf("expected ErrOperationInFlight for remove, got %v", err)
	}
	if h.engine.Current() != nil {
		t.Fatal("a rejected operation must not write the state")
	}
	if len(h.sink.all()) != 0 {
		t.Fatalf("rejections are not notified, got %v", h.sink.all())
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("first operation should complete: %v", err)
	}

	cart := mustCart(t)(h.engine.SetQuantity(ctx, "p-1", 3))
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("line should be free again, got %+v", cart.Items[0])
	}
}
