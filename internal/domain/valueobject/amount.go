package valueobject

import "github.com/shopspring/decimal"

// AmountPlaces is the number of decimals kept for stored amounts.
const AmountPlaces = 2

// NormalizeAmount rounds an amount to the stored precision.
// ok is false when the rounded value is not strictly positive.
func NormalizeAmount(amount decimal.Decimal) (rounded decimal.Decimal, ok bool) {
	rounded = amount.Round(AmountPlaces)
	return rounded, rounded.IsPositive()
}
