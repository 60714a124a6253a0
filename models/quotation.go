package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Quotation struct {
	Base            `json:",squash"`
	QuotationNumber string          `json:"quotationNumber"`
	SequenceNo      int64           `json:"sequenceNo"`
	CustomerId      string          `json:"customerId"`
	CustomerName    string          `json:"customerName"`
	EnquiryNumber   string          `json:"enquiryNumber"`
	ValidUntil      *time.Time      `json:"validUntil"`
	IsTaxInclusive  bool            `json:"isTaxInclusive"`
	Items           []LineItem      `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	Total           decimal.Decimal `json:"total"`
	Status          QuotationStatus `json:"status"`
	CreatedBy       string          `json:"createdBy"`
	UpdatedBy       string          `json:"updatedBy"`
}

type NewQuotation struct {
	CustomerId     string          `json:"customerId,omitempty"`
	CustomerName   string          `json:"customerName" validate:"required,max=100"`
	EnquiryNumber  string          `json:"enquiryNumber,omitempty"`
	ValidUntil     *time.Time      `json:"validUntil,omitempty"`
	IsTaxInclusive bool            `json:"isTaxInclusive"`
	Items          []LineItem      `json:"items" validate:"required,min=1,dive"`
	Status         QuotationStatus `json:"status" validate:"omitempty,oneof=Draft Sent Accepted Rejected Expired"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	Total          decimal.Decimal `json:"total"`
}

func (input *NewQuotation) validate() error {
	if err := validateStruct(input); err != nil {
		return err
	}
	items, totals, err := calculateLineItems(input.Items, input.IsTaxInclusive)
	if err != nil {
		return err
	}
	input.Items = items
	input.Subtotal = totals.Subtotal
	input.DiscountAmount = totals.DiscountAmount
	input.TaxAmount = totals.TaxAmount
	input.Total = totals.Total
	if input.Status == "" {
		input.Status = QuotationStatusDraft
	}
	return nil
}

func (s *Services) CreateQuotation(ctx context.Context, input *NewQuotation) (*Quotation, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	return create[Quotation](ctx, s.Quotations, input)
}
