package models

import (
	"errors"
)

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "Active"
	CustomerStatusInactive CustomerStatus = "Inactive"
)

func (s *CustomerStatus) UnmarshalText(b []byte) error {
	customerStatus := map[string]CustomerStatus{
		"Active":   CustomerStatusActive,
		"Inactive": CustomerStatusInactive,
	}
	v, ok := customerStatus[string(b)]
	if !ok {
		return errors.New("invalid customer status")
	}
	*s = v
	return nil
}

type EnquiryStatus string

const (
	EnquiryStatusNew       EnquiryStatus = "New"
	EnquiryStatusContacted EnquiryStatus = "Contacted"
	EnquiryStatusQualified EnquiryStatus = "Qualified"
	EnquiryStatusConverted EnquiryStatus = "Converted"
	EnquiryStatusLost      EnquiryStatus = "Lost"
)

// EnquiryStatuses is the pipeline order of enquiry statuses.
var EnquiryStatuses = []EnquiryStatus{
	EnquiryStatusNew,
	EnquiryStatusContacted,
	EnquiryStatusQualified,
	EnquiryStatusConverted,
	EnquiryStatusLost,
}

func (s *EnquiryStatus) UnmarshalText(b []byte) error {
	for _, v := range EnquiryStatuses {
		if string(v) == string(b) {
			*s = v
			return nil
		}
	}
	return errors.New("invalid enquiry status")
}

type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "Draft"
	QuotationStatusSent     QuotationStatus = "Sent"
	QuotationStatusAccepted QuotationStatus = "Accepted"
	QuotationStatusRejected QuotationStatus = "Rejected"
	QuotationStatusExpired  QuotationStatus = "Expired"
)

var QuotationStatuses = []QuotationStatus{
	QuotationStatusDraft,
	QuotationStatusSent,
	QuotationStatusAccepted,
	QuotationStatusRejected,
	QuotationStatusExpired,
}

func (s *QuotationStatus) UnmarshalText(b []byte) error {
	for _, v := range QuotationStatuses {
		if string(v) == string(b) {
			*s = v
			return nil
		}
	}
	return errors.New("invalid quotation status")
}

type SalesOrderStatus string

const (
	SalesOrderStatusDraft             SalesOrderStatus = "Draft"
	SalesOrderStatusConfirmed         SalesOrderStatus = "Confirmed"
	SalesOrderStatusPartiallyInvoiced SalesOrderStatus = "Partially Invoiced"
	SalesOrderStatusClosed            SalesOrderStatus = "Closed"
	SalesOrderStatusCancelled         SalesOrderStatus = "Cancelled"
)

var SalesOrderStatuses = []SalesOrderStatus{
	SalesOrderStatusDraft,
	SalesOrderStatusConfirmed,
	SalesOrderStatusPartiallyInvoiced,
	SalesOrderStatusClosed,
	SalesOrderStatusCancelled,
}

func (s *SalesOrderStatus) UnmarshalText(b []byte) error {
	for _, v := range SalesOrderStatuses {
		if string(v) == string(b) {
			*s = v
			return nil
		}
	}
	return errors.New("invalid sales order status")
}

type InvoiceStatus string

const (
	InvoiceStatusDraft       InvoiceStatus = "Draft"
	InvoiceStatusConfirmed   InvoiceStatus = "Confirmed"
	InvoiceStatusVoid        InvoiceStatus = "Void"
	InvoiceStatusPartialPaid InvoiceStatus = "Partial Paid"
	InvoiceStatusPaid        InvoiceStatus = "Paid"
	InvoiceStatusWriteOff    InvoiceStatus = "Write Off"
)

func (s *InvoiceStatus) UnmarshalText(b []byte) error {
	invoiceStatus := map[string]InvoiceStatus{
		"Draft":        InvoiceStatusDraft,
		"Confirmed":    InvoiceStatusConfirmed,
		"Void":         InvoiceStatusVoid,
		"Partial Paid": InvoiceStatusPartialPaid,
		"Paid":         InvoiceStatusPaid,
		"Write Off":    InvoiceStatusWriteOff,
	}
	v, ok := invoiceStatus[string(b)]
	if !ok {
		return errors.New("invalid invoice status")
	}
	*s = v
	return nil
}

type DispatchStatus string

const (
	DispatchStatusPending   DispatchStatus = "Pending"
	DispatchStatusShipped   DispatchStatus = "Shipped"
	DispatchStatusDelivered DispatchStatus = "Delivered"
	DispatchStatusCancelled DispatchStatus = "Cancelled"
)

func (s *DispatchStatus) UnmarshalText(b []byte) error {
	dispatchStatus := map[string]DispatchStatus{
		"Pending":   DispatchStatusPending,
		"Shipped":   DispatchStatusShipped,
		"Delivered": DispatchStatusDelivered,
		"Cancelled": DispatchStatusCancelled,
	}
	v, ok := dispatchStatus[string(b)]
	if !ok {
		return errors.New("invalid dispatch status")
	}
	*s = v
	return nil
}

type ReturnStatus string

const (
	ReturnStatusRequested ReturnStatus = "Requested"
	ReturnStatusApproved  ReturnStatus = "Approved"
	ReturnStatusRejected  ReturnStatus = "Rejected"
	ReturnStatusRefunded  ReturnStatus = "Refunded"
)

func (s *ReturnStatus) UnmarshalText(b []byte) error {
	returnStatus := map[string]ReturnStatus{
		"Requested": ReturnStatusRequested,
		"Approved":  ReturnStatusApproved,
		"Rejected":  ReturnStatusRejected,
		"Refunded":  ReturnStatusRefunded,
	}
	v, ok := returnStatus[string(b)]
	if !ok {
		return errors.New("invalid return status")
	}
	*s = v
	return nil
}
