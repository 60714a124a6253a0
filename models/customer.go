package models

import (
	"context"
	"strings"

	"github.com/mmdatafocus/sales_backend/utils"
)

type Customer struct {
	Base           `json:",squash"`
	CustomerNumber string         `json:"customerNumber"`
	SequenceNo     int64          `json:"sequenceNo"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Company        string         `json:"company"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	Status         CustomerStatus `json:"status"`
	CreatedBy      string         `json:"createdBy"`
	UpdatedBy      string         `json:"updatedBy"`
}

type NewCustomer struct {
	Name    string         `json:"name" validate:"required,max=100"`
	Email   string         `json:"email,omitempty" validate:"omitempty,email"`
	Company string         `json:"company,omitempty" validate:"max=100"`
	Phone   string         `json:"phone,omitempty" validate:"max=30"`
	Address string         `json:"address,omitempty" validate:"max=255"`
	Status  CustomerStatus `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

func (input *NewCustomer) validate() error {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := validateStruct(input); err != nil {
		return err
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return fieldError("phone", "phone")
		}
		if formatted, err := utils.FormatPhoneNumber(input.Phone, utils.CountryCode); err == nil {
			input.Phone = formatted
		}
	}
	if input.Status == "" {
		input.Status = CustomerStatusActive
	}
	return nil
}

func (s *Services) CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	return create[Customer](ctx, s.Customers, input)
}
