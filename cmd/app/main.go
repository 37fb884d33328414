package main

import (
	"os"

	"github.com/labstack/gommon/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "rollmill",
		Usage: "rolling mill order tracking service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file loaded before reading the environment",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the REST API and the scheduled jobs",
				Action: serve,
			},
			{
				Name:  "export",
				Usage: "write every order to a JSON or Excel file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "json or xlsx; taken from --output when omitted"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "destination file"},
				},
				Action: exportOrders,
			},
			{
				Name:  "import",
				Usage: "create orders from a JSON or Excel file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "source file"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "json or xlsx; taken from --input when omitted"},
				},
				Action: importOrders,
			},
			{
				Name:  "sample",
				Usage: "write a sample import workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "sample_orders.xlsx", Usage: "destination file"},
				},
				Action: writeSample,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
