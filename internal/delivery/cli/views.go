package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/crm-records/internal/usecase"
)

func (a *App) listCommand() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list customers|products",
		Short: "Print a table, optionally filtered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args)
			if err != nil {
				return err
			}
			if query == "" {
				renderTable(a.out, a.session.Table(kind))
				return nil
			}

			rows := a.session.Search(kind, query)
			if len(rows) == 0 {
				fmt.Fprintf(a.out, "No %s match %q.\n", kind, query)
				return nil
			}
			renderRecords(a.out, a.session.Table(kind).Columns(), rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "only rows with a cell containing this text")
	return cmd
}

func (a *App) summaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary customers|products",
		Short: "Row count and category breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args)
			if err != nil {
				return err
			}
			renderSummary(a.out, a.session.Summary(kind))
			return nil
		},
	}
}

func (a *App) historyCommand() *cobra.Command {
	var (
		limit int
		wipe  bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Recent operations from the activity journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wipe {
				if err := a.session.ClearHistory(cmd.Context()); err != nil {
					return fmt.Errorf("clear history: %w", err)
				}
				a.report(usecase.Information, "Activity history cleared.")
				return nil
			}
			if !cmd.Flags().Changed("limit") && a.cfg != nil {
				limit = a.cfg.ActivityLimit
			}
			entries, err := a.session.History(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			renderHistory(a.out, entries)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "number of entries, 0 for all")
	cmd.Flags().BoolVar(&wipe, "clear", false, "delete every journal entry")
	return cmd
}
