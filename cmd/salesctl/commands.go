package main

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/sales_backend/models"
	"github.com/mmdatafocus/sales_backend/utils"
	"github.com/urfave/cli/v2"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "search and page through a collection",
		ArgsUsage: "<collection>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Aliases: []string{"q"}},
			&cli.StringFlag{Name: "status", Value: "all"},
			&cli.IntFlag{Name: "page", Value: 1},
			&cli.IntFlag{Name: "limit", Value: models.DefaultPageLimit},
		},
		Action: withApp(func(ctx context.Context, c *cli.Context, a *app) error {
			svc, err := a.service(c.Args().First())
			if err != nil {
				return err
			}
			page := svc.Search(ctx, c.String("search"), c.String("status"), c.Int("page"), c.Int("limit"))
			return utils.MarshalToPrint(c.App.Writer, page)
		}),
	}
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "add a record with the given fields",
		ArgsUsage: "<collection>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "field", Aliases: []string{"f"}, Usage: "key=value, repeatable"},
		},
		Action: withApp(func(ctx context.Context, c *cli.Context, a *app) error {
			svc, err := a.service(c.Args().First())
			if err != nil {
				return err
			}
			fields, err := parseFields(c.StringSlice("field"))
			if err != nil {
				return err
			}
			rec, err := svc.Add(ctx, fields)
			if err != nil {
				return err
			}
			return utils.MarshalToPrint(c.App.Writer, rec)
		}),
	}
}

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "merge fields into an existing record",
		ArgsUsage: "<collection> <id>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "field", Aliases: []string{"f"}, Usage: "key=value, repeatable"},
		},
		Action: withApp(func(ctx context.Context, c *cli.Context, a *app) error {
			svc, err := a.service(c.Args().Get(0))
			if err != nil {
				return err
			}
			patch, err := parseFields(c.StringSlice("field"))
			if err != nil {
				return err
			}
			id := c.Args().Get(1)
			rec, err := svc.Update(ctx, id, patch)
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("%s %s: %w", svc.Key(), id, utils.ErrorRecordNotFound)
			}
			return utils.MarshalToPrint(c.App.Writer, rec)
		}),
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "permanently remove a record",
		ArgsUsage: "<collection> <id>",
		Action: withApp(func(ctx context.Context, c *cli.Context, a *app) error {
			svc, err := a.service(c.Args().Get(0))
			if err != nil {
				return err
			}
			id := c.Args().Get(1)
			removed, err := svc.Delete(ctx, id)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("%s %s: %w", svc.Key(), id, utils.ErrorRecordNotFound)
			}
			fmt.Fprintf(c.App.Writer, "deleted %s %s\n", svc.Key(), id)
			return nil
		}),
	}
}

func dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "print every analytics aggregate",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "only", Usage: "monthly, weekly, funnel, products, kpis or pipeline"},
		},
		Action: withApp(func(ctx context.Context, c *cli.Context, a *app) error {
			e := a.engine()
			var out any
			switch c.String("only") {
			case "":
				out = e.Dashboard(ctx)
			case "monthly":
				out = e.MonthlyRevenue(ctx)
			case "weekly":
				out = e.WeeklyTrend(ctx)
			case "funnel":
				out = e.ConversionFunnel(ctx)
			case "products":
				out = e.ProductPerformance(ctx)
			case "kpis":
				out = e.KPIs(ctx)
			case "pipeline":
				out = e.Pipeline(ctx)
			default:
				return fmt.Errorf("unknown report %q", c.String("only"))
			}
			return utils.MarshalToPrint(c.App.Writer, out)
		}),
	}
}
