package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/argo-movers/internal/version"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:           "movers",
		Usage:          "Show the most active stocks from Financial Modeling Prep",
		Version:        version.GetVersion(),
		DefaultCommand: "fetch",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config `FILE`",
			},
			&cli.StringFlag{
				Name:  "endpoint",
				Usage: "Most active stocks endpoint `URL`",
			},
			&cli.StringFlag{
				Name:  "api-key",
				Usage: "Financial Modeling Prep API key (or MOVERS_API_KEY)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Request timeout",
				Value: 10 * time.Second,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "fetch",
				Usage: "Fetch the most active stocks once and print them",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the published state as JSON",
					},
				},
				Action: fetchAction,
			},
			{
				Name:  "watch",
				Usage: "Show the most active stocks in an interactive view",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "log-file",
						Usage: "Write logs to `FILE` instead of discarding them",
					},
				},
				Action: watchAction,
			},
			{
				Name:  "schema",
				Usage: "Print the JSON schema of the config file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "sample",
						Usage: "Print a sample YAML config instead",
					},
				},
				Action: schemaAction,
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(_ context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintln(cmd.Root().Writer, version.GetVersion())
					return err
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
