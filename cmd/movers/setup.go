package main

import (
	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/argo-movers/internal/config"
	"github.com/rxtech-lab/argo-movers/internal/logger"
	"github.com/rxtech-lab/argo-movers/internal/movers"
	"github.com/rxtech-lab/argo-movers/pkg/marketdata/provider"
)

// loadConfig resolves the configuration and applies explicitly set flags on top.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("endpoint") {
		cfg.Endpoint = cmd.String("endpoint")
	}

	if cmd.IsSet("api-key") {
		cfg.APIKey = cmd.String("api-key")
	}

	if cmd.IsSet("timeout") {
		cfg.Timeout = cmd.Duration("timeout")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newService wires the provider into a service publishing to state. The
// caller decides when to call Start.
func newService(cfg *config.Config, state *movers.State, log *logger.Logger) (*movers.Service, error) {
	client, err := provider.NewFMPClient(cfg.Endpoint, cfg.APIKey, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return movers.NewService(state, client, log)
}

func newLogger(cmd *cli.Command, outputPath string) (*logger.Logger, error) {
	level, err := logger.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return nil, err
	}

	return logger.NewLoggerWithOutput(level, outputPath)
}
