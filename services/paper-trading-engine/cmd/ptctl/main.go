package main

import (
	"context"
	"fmt"
	"os"

	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/cli"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(
		logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)),
		logger.WithService("ptctl"),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	rc := &cli.RootConfig{
		Config: cfg,
		Logger: log,
		Out:    os.Stdout,
		Connect: func(ctx context.Context) (postgresql.PostgreSQLClient, error) {
			return postgresql.NewClient(ctx, cfg.Database)
		},
	}

	if err := cli.New(rc).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "ptctl:", err)
		os.Exit(1)
	}
}
