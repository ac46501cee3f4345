package cli

import (
	"fmt"
	"text/tabwriter"

	schema "github.com/muhammadchandra19/paper-trading/db"
	migrationpg "github.com/muhammadchandra19/paper-trading/pkg/migration-pg"
	"github.com/spf13/cobra"
)

func newMigrateCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert the shared schema migrations",
	}

	cmd.AddCommand(
		newMigrateUpCmd(rc),
		newMigrateDownCmd(rc),
		newMigrateStatusCmd(rc),
	)

	return cmd
}

func (rc *RootConfig) runner(cmd *cobra.Command) (*migrationpg.Runner, error) {
	db, err := rc.DB(cmd.Context())
	if err != nil {
		return nil, err
	}
	return migrationpg.NewRunner(db, rc.Logger, schema.Migrations, migrationpg.Config{Dir: schema.MigrationsDir}), nil
}

func newMigrateUpCmd(rc *RootConfig) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := rc.runner(cmd)
			if err != nil {
				return err
			}
			n, err := runner.MigrateUp(cmd.Context(), steps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "number of migrations to apply, 0 for all")

	return cmd
}

func newMigrateDownCmd(rc *RootConfig) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Revert the most recent migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := rc.runner(cmd)
			if err != nil {
				return err
			}
			n, err := runner.MigrateDown(cmd.Context(), steps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reverted %d migration(s)\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to revert")

	return cmd
}

func newMigrateStatusCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := rc.runner(cmd)
			if err != nil {
				return err
			}
			status, err := runner.Status(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tAPPLIED")
			for _, s := range status {
				fmt.Fprintf(w, "%s\t%s\t%t\n", s.ID, s.Name, s.Applied)
			}
			return w.Flush()
		},
	}
}
