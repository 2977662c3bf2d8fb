package restaurant

import "math"

// TaxRate applied to the item subtotal of estimates and receipts.
const TaxRate = 0.085

// priced is the unrounded arithmetic shared by carts, estimates and receipts.
type priced struct {
	lines    []CartItemDetail
	subtotal float64
	fee      float64
}

func (p priced) feeField() *float64 {
	if p.fee == 0 {
		return nil
	}
	f := round2(p.fee)
	return &f
}

func (p priced) tax() float64 {
	return p.subtotal * TaxRate
}

func (p priced) cartTotal() float64 {
	return round2(p.subtotal + p.fee)
}

func (p priced) estimatedTotal() float64 {
	return round2(p.subtotal + p.fee + p.tax())
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
