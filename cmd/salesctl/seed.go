package main

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/sales_backend/models"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "add a small set of demo customers and documents",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Value: 3, Usage: "customers to create, each with a full document chain"},
		},
		Action: withApp(func(ctx context.Context, c *cli.Context, a *app) error {
			for i := 1; i <= c.Int("count"); i++ {
				if err := seedChain(ctx, a.svcs, i); err != nil {
					return err
				}
			}
			for _, key := range a.svcs.Keys() {
				svc, _ := a.svcs.ByKey(key)
				fmt.Fprintf(c.App.Writer, "%-12s %d\n", key, len(svc.GetAll(ctx)))
			}
			return nil
		}),
	}
}

// seedChain creates one customer and walks it from enquiry to dispatch.
func seedChain(ctx context.Context, svcs *models.Services, n int) error {
	name := fmt.Sprintf("Demo Customer %d", n)
	customer, err := svcs.CreateCustomer(ctx, &models.NewCustomer{
		Name:    name,
		Email:   fmt.Sprintf("demo%d@example.com", n),
		Company: fmt.Sprintf("Demo Trading %d", n),
	})
	if err != nil {
		return fmt.Errorf("seed customer: %w", err)
	}

	items := []models.LineItem{
		{Name: "Portland Cement", Category: "Building Materials", Quantity: decimal.NewFromInt(int64(10 * n)), Rate: decimal.NewFromInt(12), TaxRate: decimal.NewFromInt(5)},
		{Name: "Installation", Category: "Services", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(150)},
	}

	enquiry, err := svcs.CreateEnquiry(ctx, &models.NewEnquiry{
		CustomerId:   customer.ID,
		CustomerName: name,
		Subject:      "Site supply",
		Source:       "Website",
		Total:        decimal.NewFromInt(int64(300 * n)),
	})
	if err != nil {
		return fmt.Errorf("seed enquiry: %w", err)
	}
	quotation, err := svcs.CreateQuotation(ctx, &models.NewQuotation{
		CustomerId:    customer.ID,
		CustomerName:  name,
		EnquiryNumber: enquiry.EnquiryNumber,
		Items:         items,
		Status:        models.QuotationStatusAccepted,
	})
	if err != nil {
		return fmt.Errorf("seed quotation: %w", err)
	}
	order, err := svcs.CreateSalesOrder(ctx, &models.NewSalesOrder{
		CustomerId:      customer.ID,
		CustomerName:    name,
		QuotationNumber: quotation.QuotationNumber,
		Items:           items,
		Status:          models.SalesOrderStatusConfirmed,
	})
	if err != nil {
		return fmt.Errorf("seed sales order: %w", err)
	}
	if _, err := svcs.CreateInvoice(ctx, &models.NewInvoice{
		CustomerId:   customer.ID,
		CustomerName: name,
		OrderNumber:  order.OrderNumber,
		Items:        items,
		Status:       models.InvoiceStatusConfirmed,
	}); err != nil {
		return fmt.Errorf("seed invoice: %w", err)
	}
	if _, err := svcs.CreateDispatch(ctx, &models.NewDispatch{
		OrderNumber:  order.OrderNumber,
		CustomerName: name,
		Carrier:      "Royal Express",
	}); err != nil {
		return fmt.Errorf("seed dispatch: %w", err)
	}
	return nil
}
