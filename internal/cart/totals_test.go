package cart

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTotals_TwoUnitsAtTwentyOnePercent(t *testing.T) {
	line := NewLine(ProductSnapshot{ID: "p-1", UnitPriceExTax: dec("100"), TaxRate: dec("21")}, 2)
	cart := &Cart{Items: []Line{line}}
	Recalculate(cart)

	if !line.LineTotal.Equal(dec("242.00")) {
		t.Fatalf("expected line total 242.00, got %s", line.LineTotal)
	}
	if !cart.SubtotalExTax.Equal(dec("200.00")) {
		t.Fatalf("expected subtotal 200.00, got %s", cart.SubtotalExTax)
	}
	if !cart.TotalTax.Equal(dec("42.00")) {
		t.Fatalf("expected tax 42.00, got %s", cart.TotalTax)
	}
	if !cart.GrandTotal.Equal(dec("242.00")) {
		t.Fatalf("expected grand total 242.00, got %s", cart.GrandTotal)
	}
	if cart.TotalItems != 2 {
		t.Fatalf("expected 2 items, got %d", cart.TotalItems)
	}
}

func TestTotals_UnitPriceRoundedAtCapture(t *testing.T) {
	got := UnitPriceWithTax(dec("2.99"), dec("21"))
	if !got.Equal(dec("3.62")) {
		t.Fatalf("expected 3.62, got %s", got)
	}
	got = UnitPriceWithTax(dec("10.5"), dec("10.5"))
	if !got.Equal(dec("11.60")) {
		t.Fatalf("expected 11.60, got %s", got)
	}
}

func TestTotals_InvertsTaxInclusivePrice(t *testing.T) {
	line := Line{
		Product:          ProductSnapshot{ID: "p", TaxRate: dec("21")},
		Quantity:         3,
		UnitPriceWithTax: dec("121"),
	}
	if got := UnitPriceExTax(line); !got.Equal(dec("100")) {
		t.Fatalf("expected inverted price 100, got %s", got)
	}
	totals := ComputeTotals([]Line{line})
	if !totals.SubtotalExTax.Equal(dec("300")) || !totals.TotalTax.Equal(dec("63")) {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestTotals_EmptyCart(t *testing.T) {
	cart := NewGuestCart(fixedNow)
	if cart.TotalItems != 0 || !cart.GrandTotal.IsZero() || !cart.SubtotalExTax.IsZero() || !cart.TotalTax.IsZero() {
		t.Fatalf("empty cart should have zero totals, got %+v", cart)
	}
	if cart.ID != GuestCartID || cart.OwnerID != AnonymousOwner {
		t.Fatalf("unexpected guest cart identity %s/%s", cart.ID, cart.OwnerID)
	}
}

func TestTotals_InvariantsHoldForRandomLines(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rates := []string{"0", "10.5", "21", "27"}

	for round := 0; round < 500; round++ {
		count := rng.Intn(8)
		lines := make([]Line, 0, count)
		wantItems := 0
		for i := 0; i < count; i++ {
			cents := rng.Int63n(1_000_000)
			qty := 1 + rng.Intn(20)
			wantItems += qty
			lines = append(lines, NewLine(ProductSnapshot{
				ID:             string(rune('a' + i)),
				UnitPriceExTax: decimal.New(cents, -2),
				TaxRate:        dec(rates[rng.Intn(len(rates))]),
			}, qty))
		}

		totals := ComputeTotals(lines)
		if !totals.GrandTotal.Equal(totals.SubtotalExTax.Add(totals.TotalTax)) {
			t.Fatalf("round %d: grand %s != subtotal %s + tax %s", round, totals.GrandTotal, totals.SubtotalExTax, totals.TotalTax)
		}
		if totals.TotalItems != wantItems {
			t.Fatalf("round %d: expected %d items, got %d", round, wantItems, totals.TotalItems)
		}
		if totals.TotalTax.IsNegative() {
			t.Fatalf("round %d: negative tax %s", round, totals.TotalTax)
		}
	}
}
