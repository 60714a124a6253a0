package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice keeps its amount in totalAmount, unlike orders and quotations.
type Invoice struct {
	Base           `json:",squash"`
	InvoiceNumber  string          `json:"invoiceNumber"`
	SequenceNo     int64           `json:"sequenceNo"`
	CustomerId     string          `json:"customerId"`
	CustomerName   string          `json:"customerName"`
	OrderNumber    string          `json:"orderNumber"`
	DueDate        *time.Time      `json:"dueDate"`
	IsTaxInclusive bool            `json:"isTaxInclusive"`
	Items          []LineItem      `json:"items"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	Status         InvoiceStatus   `json:"status"`
	CreatedBy      string          `json:"createdBy"`
	UpdatedBy      string          `json:"updatedBy"`
}

// Balance is what is still owed on the invoice.
func (inv Invoice) Balance() decimal.Decimal {
	return inv.TotalAmount.Sub(inv.PaidAmount)
}

type NewInvoice struct {
	CustomerId     string          `json:"customerId,omitempty"`
	CustomerName   string          `json:"customerName" validate:"required,max=100"`
	OrderNumber    string          `json:"orderNumber,omitempty"`
	DueDate        *time.Time      `json:"dueDate,omitempty"`
	IsTaxInclusive bool            `json:"isTaxInclusive"`
	Items          []LineItem      `json:"items" validate:"required,min=1,dive"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	Status         InvoiceStatus   `json:"status" validate:"omitempty,oneof=Draft Confirmed Void 'Partial Paid' Paid 'Write Off'"`

	TaxAmount   decimal.Decimal `json:"taxAmount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func (input *NewInvoice) validate() error {
	if err := validateStruct(input); err != nil {
		return err
	}
	items, totals, err := calculateLineItems(input.Items, input.IsTaxInclusive)
	if err != nil {
		return err
	}
	if input.PaidAmount.IsNegative() || input.PaidAmount.GreaterThan(totals.Total) {
		return fieldError("paidAmount", "lte")
	}
	input.Items = items
	input.TaxAmount = totals.TaxAmount
	input.TotalAmount = totals.Total
	if input.Status == "" {
		input.Status = InvoiceStatusDraft
	}
	return nil
}

func (s *Services) CreateInvoice(ctx context.Context, input *NewInvoice) (*Invoice, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	return create[Invoice](ctx, s.Invoices, input)
}
