package cart

import "github.com/shopspring/decimal"

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Totals are the aggregates derived from a list of lines.
type Totals struct {
	TotalItems    int
	SubtotalExTax decimal.Decimal
	TotalTax      decimal.Decimal
	GrandTotal    decimal.Decimal
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func taxFactor(rate decimal.Decimal) decimal.Decimal {
	return one.Add(rate.Div(hundred))
}

// UnitPriceWithTax applies rate (a percentage) to the ex-tax price and rounds
// to cents. This is the only rounding point of the cart arithmetic.
func UnitPriceWithTax(exTax, rate decimal.Decimal) decimal.Decimal {
	return round2(exTax.Mul(taxFactor(rate)))
}

// UnitPriceExTax is the ex-tax price captured on the line. Lines that only
// carry a tax-inclusive price get it back by inverting the tax rate.
func UnitPriceExTax(line Line) decimal.Decimal {
	if !line.Product.UnitPriceExTax.IsZero() || line.UnitPriceWithTax.IsZero() {
		return line.Product.UnitPriceExTax
	}
	return round2(line.UnitPriceWithTax.Div(taxFactor(line.Product.TaxRate)))
}

// NewLine builds a line from a snapshot.
func NewLine(product ProductSnapshot, quantity int) Line {
	line := Line{
		Product:          product,
		Quantity:         quantity,
		UnitPriceWithTax: UnitPriceWithTax(product.UnitPriceExTax, product.TaxRate),
	}
	line.LineTotal = lineTotal(line)
	return line
}

func lineTotal(line Line) decimal.Decimal {
	return line.UnitPriceWithTax.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// ComputeTotals derives the aggregates of lines. GrandTotal equals
// SubtotalExTax plus TotalTax exactly.
func ComputeTotals(lines []Line) Totals {
	totals := Totals{
		SubtotalExTax: decimal.Zero,
		GrandTotal:    decimal.Zero,
	}
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		totals.TotalItems += line.Quantity
		totals.GrandTotal = totals.GrandTotal.Add(lineTotal(line))
		totals.SubtotalExTax = totals.SubtotalExTax.Add(round2(UnitPriceExTax(line).Mul(qty)))
	}
	totals.TotalTax = totals.GrandTotal.Sub(totals.SubtotalExTax)
	return totals
}

// Recalculate refreshes every line total and the cart aggregates in place.
func Recalculate(cart *Cart) {
	if cart == nil {
		return
	}
	for i := range cart.Items {
		line := &cart.Items[i]
		if line.UnitPriceWithTax.IsZero() {
			line.UnitPriceWithTax = UnitPriceWithTax(line.Product.UnitPriceExTax, line.Product.TaxRate)
		}
		line.LineTotal = lineTotal(*line)
	}
	totals := ComputeTotals(cart.Items)
	cart.TotalItems = totals.TotalItems
	cart.SubtotalExTax = totals.SubtotalExTax
	cart.TotalTax = totals.TotalTax
	cart.GrandTotal = totals.GrandTotal
}
