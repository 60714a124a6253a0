package models

import (
	"context"

	"github.com/shopspring/decimal"
)

type SalesReturn struct {
	Base         `json:",squash"`
	ReturnNumber string          `json:"returnNumber"`
	SequenceNo   int64           `json:"sequenceNo"`
	OrderNumber  string          `json:"orderNumber"`
	CustomerName string          `json:"customerName"`
	Reason       string          `json:"reason"`
	Items        []LineItem      `json:"items"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Status       ReturnStatus    `json:"status"`
	CreatedBy    string          `json:"createdBy"`
	UpdatedBy    string          `json:"updatedBy"`
}

type NewSalesReturn struct {
	OrderNumber  string       `json:"orderNumber" validate:"required"`
	CustomerName string       `json:"customerName,omitempty" validate:"max=100"`
	Reason       string       `json:"reason" validate:"required,max=255"`
	Items        []LineItem   `json:"items" validate:"omitempty,dive"`
	Status       ReturnStatus `json:"status" validate:"omitempty,oneof=Requested Approved Rejected Refunded"`

	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func (input *NewSalesReturn) validate() error {
	if err := validateStruct(input); err != nil {
		return err
	}
	items, totals, err := calculateLineItems(input.Items, false)
	if err != nil {
		return err
	}
	input.Items = items
	input.TotalAmount = totals.Total
	if input.Status == "" {
		input.Status = ReturnStatusRequested
	}
	return nil
}

func (s *Services) CreateSalesReturn(ctx context.Context, input *NewSalesReturn) (*SalesReturn, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	return create[SalesReturn](ctx, s.Returns, input)
}
