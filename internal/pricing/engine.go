package pricing

// Money represents a monetary value stored in minor units.
type Money = int64

// DefaultTaxRateBps is the sales tax applied when configuration does not override it (8%).
const DefaultTaxRateBps = 800

// Summary aggregates the derived totals for an order.
type Summary struct {
	Subtotal Money
	Tax      Money
	Total    Money
}

// Compute derives tax and total from a subtotal using a basis-point tax rate.
// Integer arithmetic keeps repeated recomputation drift-free.
func Compute(subtotal Money, taxBps int) Summary {
	if subtotal < 0 {
		subtotal = 0
	}
	if taxBps < 0 {
		taxBps = 0
	}
	tax := (subtotal * Money(taxBps)) / 10000
	return Summary{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
