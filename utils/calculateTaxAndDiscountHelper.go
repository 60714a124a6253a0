package utils

import (
	"github.com/shopspring/decimal"
)

const (
	DiscountTypePercent = "P"
	DiscountTypeAmount  = "A"
)

var decimalOneHundred = decimal.NewFromInt(100)

// CalculateTaxAmount returns the tax portion of amount at rate percent.
func CalculateTaxAmount(rate decimal.Decimal, amount decimal.Decimal, isTaxInclusive bool) decimal.Decimal {
	if !rate.IsPositive() {
		return decimal.Zero
	}
	if isTaxInclusive {
		// Tax-inclusive: (amount / (100 + rate)) * rate
		return amount.DivRound(rate.Add(decimalOneHundred), 4).Mul(rate)
	}
	// Tax-exclusive: (amount / 100) * rate
	return amount.DivRound(decimalOneHundred, 4).Mul(rate)
}

// CalculateDiscountAmount treats discount as a percentage of subTotal for
// type "P" and as a flat amount otherwise.
func CalculateDiscountAmount(subTotal decimal.Decimal, discount decimal.Decimal, discountType string) decimal.Decimal {
	if !discount.IsPositive() {
		return decimal.Zero
	}
	if discountType == DiscountTypePercent {
		return subTotal.Mul(discount).DivRound(decimalOneHundred, 4)
	}
	return discount
}
