package models

import (
	"context"

	"github.com/shopspring/decimal"
)

type Enquiry struct {
	Base          `json:",squash"`
	EnquiryNumber string          `json:"enquiryNumber"`
	SequenceNo    int64           `json:"sequenceNo"`
	CustomerId    string          `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	Subject       string          `json:"subject"`
	Source        string          `json:"source"`
	Notes         string          `json:"notes"`
	Total         decimal.Decimal `json:"total"`
	Status        EnquiryStatus   `json:"status"`
	CreatedBy     string          `json:"createdBy"`
	UpdatedBy     string          `json:"updatedBy"`
}

// NewEnquiry.Total is the estimated deal value.
type NewEnquiry struct {
	CustomerId   string          `json:"customerId,omitempty"`
	CustomerName string          `json:"customerName" validate:"required,max=100"`
	Subject      string          `json:"subject" validate:"required,max=255"`
	Source       string          `json:"source,omitempty" validate:"max=50"`
	Notes        string          `json:"notes,omitempty"`
	Total        decimal.Decimal `json:"total"`
	Status       EnquiryStatus   `json:"status" validate:"omitempty,oneof=New Contacted Qualified Converted Lost"`
}

func (input *NewEnquiry) validate() error {
	if err := validateStruct(input); err != nil {
		return err
	}
	if input.Total.IsNegative() {
		return fieldError("total", "gte")
	}
	if input.Status == "" {
		input.Status = EnquiryStatusNew
	}
	return nil
}

func (s *Services) CreateEnquiry(ctx context.Context, input *NewEnquiry) (*Enquiry, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	return create[Enquiry](ctx, s.Enquiries, input)
}
