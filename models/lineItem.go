package models

import (
	"fmt"

	"github.com/mmdatafocus/sales_backend/utils"
	"github.com/shopspring/decimal"
)

type LineItem struct {
	Name           string          `json:"name" validate:"required,max=100"`
	Description    string          `json:"description,omitempty" validate:"max=255"`
	Category       string          `json:"category,omitempty" validate:"max=100"`
	Quantity       decimal.Decimal `json:"quantity"`
	Rate           decimal.Decimal `json:"rate"`
	Discount       decimal.Decimal `json:"discount"`
	DiscountType   string          `json:"discountType,omitempty" validate:"omitempty,oneof=P A"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxRate        decimal.Decimal `json:"taxRate"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	Total          decimal.Decimal `json:"total"`
}

// DocumentTotals are the amounts derived from a document's line items.
type DocumentTotals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// calculateLineItems fills each item's discount, tax and total and sums them.
// Tax is added on top unless isTaxInclusive.
func calculateLineItems(items []LineItem, isTaxInclusive bool) ([]LineItem, DocumentTotals, error) {
	var totals DocumentTotals
	out := make([]LineItem, len(items))
	for i, item := range items {
		if !item.Quantity.IsPositive() {
			return nil, totals, fieldError(fmt.Sprintf("items[%d].quantity", i), "gt")
		}
		if item.Rate.IsNegative() {
			return nil, totals, fieldError(fmt.Sprintf("items[%d].rate", i), "gte")
		}

		amount := item.Quantity.Mul(item.Rate)
		item.DiscountAmount = utils.CalculateDiscountAmount(amount, item.Discount, item.DiscountType)
		if item.DiscountAmount.GreaterThan(amount) {
			return nil, totals, fieldError(fmt.Sprintf("items[%d].discount", i), "lte")
		}
		net := amount.Sub(item.DiscountAmount)
		item.TaxAmount = utils.CalculateTaxAmount(item.TaxRate, net, isTaxInclusive)
		item.Total = net
		if !isTaxInclusive {
			item.Total = net.Add(item.TaxAmount)
		}
		item.Total = item.Total.Round(2)

		totals.Subtotal = totals.Subtotal.Add(amount)
		totals.DiscountAmount = totals.DiscountAmount.Add(item.DiscountAmount)
		totals.TaxAmount = totals.TaxAmount.Add(item.TaxAmount)
		totals.Total = totals.Total.Add(item.Total)
		out[i] = item
	}
	return out, totals, nil
}
