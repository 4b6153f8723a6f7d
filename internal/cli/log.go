package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/applypilot/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	var (
		dir   string
		runID string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent engine events",
		Long: `Show the per-step event log written during runs: filter decisions,
dedup hits, flow failures, and submissions.

Examples:
  applypilot log                        # last 50 events across runs
  applypilot log --run 20250601-120000  # one run only
  applypilot log --limit 200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := wire.BuildState(wire.Options{Dir: dir})
			if err != nil {
				return err
			}
			defer engine.Close()

			events, err := engine.EventLog.Recent(context.Background(), runID, limit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Println("No events recorded.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tRUN\tPHASE\tLISTING\tMESSAGE")
			for _, e := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.CreatedAt.Format("2006-01-02 15:04:05"), e.RunID, e.Phase, e.ListingID, e.Message)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Project directory (default: current directory)")
	cmd.Flags().StringVar(&runID, "run", "", "Restrict to one run ID")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of events")

	return cmd
}
