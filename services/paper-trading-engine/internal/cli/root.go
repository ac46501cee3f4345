// Package cli implements ptctl, the operator tool for the paper trading schema,
// portfolio and signal queue.
package cli

import (
	"context"
	"io"

	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	fillv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/fill/v1"
	fillInfra "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/infrastructure/postgresql/fill"
	portfolioInfra "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/infrastructure/postgresql/portfolio"
	signalInfra "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/infrastructure/postgresql/signal"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/infrastructure/price"
	"github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/pkg/config"
	"github.com/spf13/cobra"
)

// RootConfig is shared by every command. Repositories and Tx left nil are built on
// first use from the database connection.
type RootConfig struct {
	Config  *config.Config
	Logger  logger.Interface
	Out     io.Writer
	Connect func(ctx context.Context) (postgresql.PostgreSQLClient, error)

	Signals    signalInfra.SignalRepository
	Portfolios portfolioInfra.PortfolioRepository
	Fills      fillInfra.FillRepository
	Prices     fillv1.PriceSource
	Tx         postgresql.Transaction

	db postgresql.PostgreSQLClient
}

// New builds the ptctl command tree.
func New(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ptctl",
		Short:         "Operate the paper trading database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			rc.Close()
		},
	}
	cmd.SetOut(rc.Out)

	cmd.AddCommand(
		newMigrateCmd(rc),
		newPortfolioCmd(rc),
		newSignalsCmd(rc),
	)

	return cmd
}

// DB connects on first use.
func (rc *RootConfig) DB(ctx context.Context) (postgresql.PostgreSQLClient, error) {
	if rc.db != nil {
		return rc.db, nil
	}
	db, err := rc.Connect(ctx)
	if err != nil {
		return nil, err
	}
	rc.db = db
	return db, nil
}

// Close releases the connection, if one was opened.
func (rc *RootConfig) Close() {
	if rc.db != nil {
		rc.db.Close()
		rc.db = nil
	}
}

func (rc *RootConfig) repositories(ctx context.Context) error {
	if rc.Signals != nil && rc.Portfolios != nil && rc.Fills != nil && rc.Prices != nil {
		return nil
	}
	db, err := rc.DB(ctx)
	if err != nil {
		return err
	}
	if rc.Signals == nil {
		rc.Signals = signalInfra.NewRepository(db, rc.Logger)
	}
	if rc.Portfolios == nil {
		rc.Portfolios = portfolioInfra.NewRepository(db, rc.Logger)
	}
	if rc.Fills == nil {
		rc.Fills = fillInfra.NewRepository(db, rc.Logger)
	}
	if rc.Prices == nil {
		rc.Prices = price.NewSource(nil, db, rc.Logger)
	}
	if rc.Tx == nil {
		rc.Tx = postgresql.NewTransaction(db)
	}
	return nil
}

// view runs the reads of a report in one read-only snapshot.
func (rc *RootConfig) view(ctx context.Context, fn func(ctx context.Context) error) error {
	if rc.Tx == nil {
		return fn(ctx)
	}
	return postgresql.AtomicWithOptions(ctx, rc.Tx, postgresql.ReadOnlyTxOptions(), fn)
}
