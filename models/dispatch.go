package models

import (
	"context"
	"time"
)

type Dispatch struct {
	Base           `json:",squash"`
	DispatchNumber string         `json:"dispatchNumber"`
	SequenceNo     int64          `json:"sequenceNo"`
	OrderNumber    string         `json:"orderNumber"`
	CustomerName   string         `json:"customerName"`
	Carrier        string         `json:"carrier"`
	TrackingNumber string         `json:"trackingNumber"`
	DispatchDate   *time.Time     `json:"dispatchDate"`
	Status         DispatchStatus `json:"status"`
	CreatedBy      string         `json:"createdBy"`
	UpdatedBy      string         `json:"updatedBy"`
}

type NewDispatch struct {
	OrderNumber    string         `json:"orderNumber" validate:"required"`
	CustomerName   string         `json:"customerName,omitempty" validate:"max=100"`
	Carrier        string         `json:"carrier,omitempty" validate:"max=100"`
	TrackingNumber string         `json:"trackingNumber,omitempty" validate:"max=100"`
	DispatchDate   *time.Time     `json:"dispatchDate,omitempty"`
	Status         DispatchStatus `json:"status" validate:"omitempty,oneof=Pending Shipped Delivered Cancelled"`
}

func (input *NewDispatch) validate() error {
	if err := validateStruct(input); err != nil {
		return err
	}
	if input.Status == "" {
		input.Status = DispatchStatusPending
	}
	return nil
}

func (s *Services) CreateDispatch(ctx context.Context, input *NewDispatch) (*Dispatch, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	return create[Dispatch](ctx, s.Dispatches, input)
}
