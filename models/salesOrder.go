package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type SalesOrder struct {
	Base            `json:",squash"`
	OrderNumber     string           `json:"orderNumber"`
	SequenceNo      int64            `json:"sequenceNo"`
	CustomerId      string           `json:"customerId"`
	CustomerName    string           `json:"customerName"`
	QuotationNumber string           `json:"quotationNumber"`
	OrderDate       *time.Time       `json:"orderDate"`
	IsTaxInclusive  bool             `json:"isTaxInclusive"`
	Items           []LineItem       `json:"items"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	DiscountAmount  decimal.Decimal  `json:"discountAmount"`
	TaxAmount       decimal.Decimal  `json:"taxAmount"`
	Total           decimal.Decimal  `json:"total"`
	Status          SalesOrderStatus `json:"status"`
	CreatedBy       string           `json:"createdBy"`
	UpdatedBy       string           `json:"updatedBy"`
}

type NewSalesOrder struct {
	CustomerId      string           `json:"customerId,omitempty"`
	CustomerName    string           `json:"customerName" validate:"required,max=100"`
	QuotationNumber string           `json:"quotationNumber,omitempty"`
	OrderDate       *time.Time       `json:"orderDate,omitempty"`
	IsTaxInclusive  bool             `json:"isTaxInclusive"`
	Items           []LineItem       `json:"items" validate:"required,min=1,dive"`
	Status          SalesOrderStatus `json:"status" validate:"omitempty,oneof=Draft Confirmed 'Partially Invoiced' Closed Cancelled"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	Total          decimal.Decimal `json:"total"`
}

func (input *NewSalesOrder) validate() error {
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
		input.Status = SalesOrderStatusDraft
	}
	return nil
}

func (s *Services) CreateSalesOrder(ctx context.Context, input *NewSalesOrder) (*SalesOrder, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	return create[SalesOrder](ctx, s.SalesOrders, input)
}
