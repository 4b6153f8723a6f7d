package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/applypilot/internal/models"
	"github.com/example/applypilot/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the application ledger",
		Long:  `Read the append-only application history: submitted, failed, and skipped listings.`,
	}

	cmd.AddCommand(historyAppliedCmd())
	cmd.AddCommand(historyFailedCmd())
	cmd.AddCommand(historySummaryCmd())

	return cmd
}

func historyAppliedCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "applied",
		Short: "List submitted applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := wire.BuildState(wire.Options{Dir: dir})
			if err != nil {
				return err
			}
			defer engine.Close()

			recs, err := engine.History.Applied(context.Background())
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Println("No applications submitted yet.")
				return nil
			}

			printRecords(recs, false)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Project directory (default: current directory)")
	return cmd
}

func historyFailedCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "failed",
		Short: "List failed and skipped applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := wire.BuildState(wire.Options{Dir: dir})
			if err != nil {
				return err
			}
			defer engine.Close()

			recs, err := engine.History.Failed(context.Background())
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Println("No failed or skipped applications recorded.")
				return nil
			}

			printRecords(recs, true)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Project directory (default: current directory)")
	return cmd
}

func historySummaryCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate outcome counts across the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := wire.BuildState(wire.Options{Dir: dir})
			if err != nil {
				return err
			}
			defer engine.Close()

			sum, err := engine.History.Summary(context.Background())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Submitted\t%d\n", sum.Submitted)
			fmt.Fprintf(w, "Failed\t%d\n", sum.Failed)
			fmt.Fprintf(w, "Skipped\t%d\n", sum.Skipped)
			w.Flush()

			if len(sum.ByReason) > 0 {
				reasons := make([]string, 0, len(sum.ByReason))
				for r := range sum.ByReason {
					reasons = append(reasons, r)
				}
				sort.Strings(reasons)

				fmt.Println("\nBy reason:")
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for _, r := range reasons {
					fmt.Fprintf(w, "  %s\t%d\n", r, sum.ByReason[r])
				}
				w.Flush()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Project directory (default: current directory)")
	return cmd
}

func printRecords(recs []*models.ApplicationRecord, withReason bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if withReason {
		fmt.Fprintln(w, "TIME\tLISTING\tTITLE\tCOMPANY\tOUTCOME\tREASON")
	} else {
		fmt.Fprintln(w, "TIME\tLISTING\tTITLE\tCOMPANY\tTERM")
	}

	for _, r := range recs {
		ts := r.Timestamp.Format("2006-01-02 15:04")
		if withReason {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", ts, r.ListingID, r.Title, r.Company, r.Outcome, r.Reason)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", ts, r.ListingID, r.Title, r.Company, r.Term)
		}
	}
	w.Flush()

	fmt.Printf("\n%d records\n", len(recs))
}
