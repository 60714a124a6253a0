package main

import (
	"fmt"
	"os"

	"github.com/mmdatafocus/sales_backend/config"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "salesctl",
		Usage: "inspect and edit the sales record store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "user",
				Usage:   "actor recorded in createdBy/updatedBy",
				EnvVars: []string{"SALESCTL_USER"},
				Value:   "salesctl",
			},
		},
		Commands: []*cli.Command{
			seedCommand(),
			listCommand(),
			addCommand(),
			updateCommand(),
			deleteCommand(),
			dashboardCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		config.LogError(config.GetLogger(), "salesctl", "main", "run", os.Args[1:], err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
