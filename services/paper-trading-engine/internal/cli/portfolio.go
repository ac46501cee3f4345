package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	portfoliov1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/portfolio/v1"
	"github.com/spf13/cobra"
)

func newPortfolioCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Create or inspect a portfolio",
	}

	cmd.AddCommand(
		newPortfolioInitCmd(rc),
		newPortfolioShowCmd(rc),
	)

	return cmd
}

func newPortfolioInitCmd(rc *RootConfig) *cobra.Command {
	var (
		id   string
		cash float64
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a portfolio funded with starting cash; existing portfolios are left alone",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(id) == "" {
				return fmt.Errorf("--id is required")
			}
			if cash < 0 {
				return fmt.Errorf("--cash must not be negative")
			}
			if err := rc.repositories(cmd.Context()); err != nil {
				return err
			}

			created, err := rc.Portfolios.Create(cmd.Context(), portfoliov1.NewPortfolio(id, cash, time.Now().UTC()))
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "created portfolio %s with %.2f cash\n", id, cash)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "portfolio %s already exists\n", id)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", rc.Config.Engine.PortfolioID, "portfolio id")
	cmd.Flags().Float64Var(&cash, "cash", rc.Config.Engine.StartingCash, "starting cash")

	return cmd
}

func newPortfolioShowCmd(rc *RootConfig) *cobra.Command {
	var (
		id    string
		fills int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show cash, positions marked to market and recent fills",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := rc.repositories(ctx); err != nil {
				return err
			}

			var (
				p      *portfoliov1.Portfolio
				marks  map[string]float64
				recent []portfoliov1.Fill
			)
			err := rc.view(ctx, func(ctx context.Context) error {
				var err error
				p, err = rc.Portfolios.Get(ctx, id)
				if err != nil {
					return err
				}

				marks = make(map[string]float64, len(p.Positions))
				for _, symbol := range p.Symbols() {
					mark, ok, err := rc.Prices.LastPrice(ctx, symbol)
					if err != nil {
						return err
					}
					if ok {
						marks[symbol] = mark
					}
				}

				if fills > 0 {
					recent, err = rc.Fills.ListRecent(ctx, id, fills)
				}
				return err
			})
			if err != nil {
				return err
			}

			return printPortfolio(cmd.OutOrStdout(), *p, marks, recent)
		},
	}
	cmd.Flags().StringVar(&id, "id", rc.Config.Engine.PortfolioID, "portfolio id")
	cmd.Flags().IntVar(&fills, "fills", 10, "number of recent fills to list")

	return cmd
}

func printPortfolio(out io.Writer, p portfoliov1.Portfolio, marks map[string]float64, fills []portfoliov1.Fill) error {
	v := p.Value(marks)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "portfolio\t%s\n", p.ID)
	fmt.Fprintf(w, "cash\t%.2f\n", v.Cash)
	fmt.Fprintf(w, "market value\t%.2f\n", v.MarketValue)
	fmt.Fprintf(w, "equity\t%.2f\n", v.Equity)
	fmt.Fprintf(w, "realized pnl\t%.2f\n", v.RealizedPnL)
	fmt.Fprintf(w, "unrealized pnl\t%.2f\n", v.UnrealizedPnL)
	fmt.Fprintf(w, "return\t%.2f%%\n", returnPct(p.StartingCash, v.Equity))

	if len(p.Positions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "SYMBOL\tQUANTITY\tAVG COST\tMARK\tVALUE\tUNREALIZED")
		for _, symbol := range p.Symbols() {
			pos := p.Positions[symbol]
			mark, ok := marks[symbol]
			markText := fmt.Sprintf("%.4f", mark)
			if !ok {
				mark = pos.AvgCost
				markText = "n/a"
			}
			value := pos.Quantity * mark
			fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%s\t%.2f\t%.2f\n",
				symbol, pos.Quantity, pos.AvgCost, markText, value, value-pos.CostBasis())
		}
	}

	if len(fills) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "FILLED AT\tSYMBOL\tSIDE\tQUANTITY\tPRICE\tREALIZED\tMODEL")
		for _, f := range fills {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%.4f\t%.2f\t%s\n",
				f.FilledAt.UTC().Format(time.RFC3339), f.Symbol, f.Side, f.Quantity, f.Price, f.RealizedPnL, f.FillModel)
		}
	}

	return w.Flush()
}

func returnPct(starting, equity float64) float64 {
	if starting == 0 {
		return 0
	}
	return (equity - starting) / starting * 100
}
