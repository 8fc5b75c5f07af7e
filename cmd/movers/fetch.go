package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/argo-movers/internal/config"
	"github.com/rxtech-lab/argo-movers/internal/movers"
)

// fetchAction runs the initial refresh, prints the published state and
// fails when an error was published.
func fetchAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd, "stderr")
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	state := movers.NewState()

	service, err := newService(cfg, state, log)
	if err != nil {
		return err
	}

	<-service.Start(ctx)

	snapshot := state.Snapshot()
	out := cmd.Root().Writer

	if cmd.Bool("json") {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(snapshot); err != nil {
			return err
		}
	} else if snapshot.LastError == nil {
		if _, err := fmt.Fprintln(out, RenderStocks(snapshot.Stocks)); err != nil {
			return err
		}
	}

	if snapshot.LastError != nil {
		return cli.Exit(*snapshot.LastError, 1)
	}

	return nil
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	var (
		text string
		err  error
	)

	if cmd.Bool("sample") {
		text, err = config.SampleYAML()
	} else {
		text, err = config.Schema()
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, text)

	return err
}
