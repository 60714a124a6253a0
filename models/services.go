package models

import (
	"sort"

	"github.com/mmdatafocus/sales_backend/store"
)

const (
	CollectionCustomers   = "customers"
	CollectionEnquiries   = "enquiries"
	CollectionQuotations  = "quotations"
	CollectionSalesOrders = "salesOrders"
	CollectionInvoices    = "invoices"
	CollectionDispatches  = "dispatches"
	CollectionReturns     = "returns"
)

var (
	CustomersConfig = CollectionConfig{
		Key:          CollectionCustomers,
		IDPrefix:     "CUS",
		NumberField:  "customerNumber",
		SearchFields: []string{"customerNumber", "name", "email", "company", "phone"},
		StatusField:  FieldStatus,
	}
	EnquiriesConfig = CollectionConfig{
		Key:          CollectionEnquiries,
		IDPrefix:     "ENQ",
		NumberField:  "enquiryNumber",
		SearchFields: []string{"enquiryNumber", "customerName", "subject", "source"},
		StatusField:  FieldStatus,
	}
	QuotationsConfig = CollectionConfig{
		Key:          CollectionQuotations,
		IDPrefix:     "QT",
		NumberField:  "quotationNumber",
		SearchFields: []string{"quotationNumber", "customerName", "enquiryNumber"},
		StatusField:  FieldStatus,
	}
	SalesOrdersConfig = CollectionConfig{
		Key:          CollectionSalesOrders,
		IDPrefix:     "SO",
		NumberField:  "orderNumber",
		SearchFields: []string{"orderNumber", "customerName", "quotationNumber"},
		StatusField:  FieldStatus,
	}
	InvoicesConfig = CollectionConfig{
		Key:          CollectionInvoices,
		IDPrefix:     "INV",
		NumberField:  "invoiceNumber",
		SearchFields: []string{"invoiceNumber", "customerName", "orderNumber"},
		StatusField:  FieldStatus,
	}
	DispatchesConfig = CollectionConfig{
		Key:          CollectionDispatches,
		IDPrefix:     "DSP",
		NumberField:  "dispatchNumber",
		SearchFields: []string{"dispatchNumber", "orderNumber", "customerName", "carrier", "trackingNumber"},
		StatusField:  FieldStatus,
	}
	ReturnsConfig = CollectionConfig{
		Key:          CollectionReturns,
		IDPrefix:     "RET",
		NumberField:  "returnNumber",
		SearchFields: []string{"returnNumber", "orderNumber", "customerName", "reason"},
		StatusField:  FieldStatus,
	}
)

// Services is the set of collection services built once at startup.
type Services struct {
	Customers   *Service
	Enquiries   *Service
	Quotations  *Service
	SalesOrders *Service
	Invoices    *Service
	Dispatches  *Service
	Returns     *Service

	byKey map[string]*Service
}

func NewServices(rs *store.RecordStore, opts ...ServiceOption) *Services {
	svcs := &Services{
		Customers:   NewService(rs, CustomersConfig, opts...),
		Enquiries:   NewService(rs, EnquiriesConfig, opts...),
		Quotations:  NewService(rs, QuotationsConfig, opts...),
		SalesOrders: NewService(rs, SalesOrdersConfig, opts...),
		Invoices:    NewService(rs, InvoicesConfig, opts...),
		Dispatches:  NewService(rs, DispatchesConfig, opts...),
		Returns:     NewService(rs, ReturnsConfig, opts...),
	}
	svcs.byKey = map[string]*Service{}
	for _, s := range svcs.All() {
		svcs.byKey[s.Key()] = s
	}
	return svcs
}

func (s *Services) All() []*Service {
	return []*Service{s.Customers, s.Enquiries, s.Quotations, s.SalesOrders, s.Invoices, s.Dispatches, s.Returns}
}

// ByKey looks a service up by its collection key.
func (s *Services) ByKey(key string) (*Service, bool) {
	svc, ok := s.byKey[key]
	return svc, ok
}

func (s *Services) Keys() []string {
	keys := make([]string, 0, len(s.byKey))
	for k := range s.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
