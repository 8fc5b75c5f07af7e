package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/argo-movers/internal/logger"
	"github.com/rxtech-lab/argo-movers/internal/movers"
)

// watchAction shows the state in a terminal view. The view subscribes before
// the initial refresh starts so it observes the whole first cycle.
func watchAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The view owns the terminal, so logs go to a file or nowhere.
	log := logger.NewNopLogger()
	if path := cmd.String("log-file"); path != "" {
		log, err = newLogger(cmd, path)
		if err != nil {
			return err
		}
	}
	defer log.Sync() //nolint:errcheck

	state := movers.NewState()

	service, err := newService(cfg, state, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, state, service)
	service.Start(ctx)

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()

	return err
}
