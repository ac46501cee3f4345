package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	signalv1 "github.com/muhammadchandra19/paper-trading/services/paper-trading-engine/internal/domain/signal/v1"
	"github.com/spf13/cobra"
)

func newSignalsCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signals",
		Short: "Inspect the signal queue",
	}

	cmd.AddCommand(newSignalsListCmd(rc))

	return cmd
}

func newSignalsListCmd(rc *RootConfig) *cobra.Command {
	var (
		status string
		filter signalv1.ListFilter
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List signals, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := parseStatus(status)
			if err != nil {
				return err
			}
			filter.Status = s

			if err := rc.repositories(cmd.Context()); err != nil {
				return err
			}
			var signals []signalv1.Signal
			err = rc.view(cmd.Context(), func(ctx context.Context) error {
				var err error
				signals, err = rc.Signals.List(ctx, filter)
				return err
			})
			if err != nil {
				return err
			}
			return printSignals(cmd.OutOrStdout(), signals)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "PENDING, APPLIED or REJECTED")
	cmd.Flags().StringVar(&filter.Strategy, "strategy", "", "strategy name")
	cmd.Flags().StringVar(&filter.Symbol, "symbol", "", "symbol")
	cmd.Flags().IntVar(&filter.Limit, "limit", 50, "maximum number of signals")

	return cmd
}

func parseStatus(s string) (signalv1.Status, error) {
	if s == "" {
		return "", nil
	}
	switch status := signalv1.Status(strings.ToUpper(s)); status {
	case signalv1.StatusPending, signalv1.StatusApplied, signalv1.StatusRejected:
		return status, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func printSignals(out io.Writer, signals []signalv1.Signal) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIMESTAMP\tSTRATEGY\tSYMBOL\tSIDE\tQUANTITY\tSTATUS\tREASON")
	for _, s := range signals {
		reason := s.Reason
		if s.Status == signalv1.StatusRejected {
			reason = s.RejectReason
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.4f\t%s\t%s\n",
			s.ID, s.Timestamp.UTC().Format(time.RFC3339), s.Strategy, s.Symbol, s.Side, s.Quantity, s.Status, reason)
	}
	return w.Flush()
}
