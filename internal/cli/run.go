// Package cli contains the applypilot command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/applypilot/internal/adapters/scripted"
	"github.com/example/applypilot/internal/app"
	"github.com/example/applypilot/internal/core/filter"
	"github.com/example/applypilot/internal/core/search"
	"github.com/example/applypilot/internal/models"
	"github.com/example/applypilot/internal/ports/primary"
	"github.com/example/applypilot/internal/ports/secondary"
	"github.com/example/applypilot/internal/wire"
)

// RunCmd returns the run command
func RunCmd() *cobra.Command {
	var (
		dir    string
		script string
		once   bool
		dryRun bool
		noAI   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the job application cycle",
		Long: `Run the full engine: search every configured term across the rotating
filter axes, filter the discovered listings, and drive the quick-apply
flow for each listing that passes.

The board is driven through a script fixture (--script). Interrupting
the run with Ctrl-C stops at the next step boundary; an in-flight
submission is never abandoned halfway.

Examples:
  applypilot run --script board.yaml            # full run per config
  applypilot run --script board.yaml --once     # single cycle, ignore run_non_stop
  applypilot run --script board.yaml --dry-run  # filter decisions only, no applications`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := wire.Options{Dir: dir, ScriptPath: script, DisableAI: noAI, Once: once}

			if dryRun {
				return runDry(ctx, opts)
			}

			engine, err := wire.Build(ctx, opts)
			if err != nil {
				return err
			}
			defer engine.Close()

			if err := engine.Board.Login(ctx, engine.Config.BoardUsername, engine.Config.BoardPassword); err != nil {
				return fmt.Errorf("board login failed: %w", err)
			}

			summary, err := engine.Run.Run(ctx)
			if err != nil {
				return fmt.Errorf("run failed: %w", err)
			}

			printSummary(summary.RunID, summary.Cycles, summary.Stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Project directory (default: current directory)")
	cmd.Flags().StringVar(&script, "script", "", "Board script fixture (YAML)")
	cmd.Flags().BoolVar(&once, "once", false, "Run a single cycle regardless of run_non_stop")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Search and filter only, apply to nothing")
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "Disable the AI question fallback for this run")

	return cmd
}

// runDry searches the plan and prints filter decisions without opening a
// single apply flow. No ledger records are written.
func runDry(ctx context.Context, opts wire.Options) error {
	cfg, _, err := wire.LoadConfig(opts)
	if err != nil {
		return err
	}
	if opts.ScriptPath == "" {
		return fmt.Errorf("no board script configured: pass --script with a board fixture")
	}
	board, err := scripted.Load(opts.ScriptPath)
	if err != nil {
		return fmt.Errorf("failed to load board script: %w", err)
	}

	sc := cfg.Search
	plan := search.BuildPlan(search.OrderTerms(sc.Terms, sc.RandomizeOrder, nil), search.PlanConfig{
		SortBy:              sc.SortBy,
		DatePosted:          sc.DatePosted,
		AlternateSortBy:     sc.AlternateSortBy,
		CycleDatePosted:     sc.CycleDatePosted,
		StopDateCycleAt24hr: sc.StopDateCycleAt24hr,
	})
	rules := app.FilterRules(cfg)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TERM\tLISTING\tCOMPANY\tDECISION\tREASON")

	seen := make(map[string]bool)
	wouldApply := 0
	for _, tp := range plan {
		for _, page := range tp.Pages {
			listings, err := board.Search(ctx, secondary.SearchQuery{
				Term:          tp.Term,
				Location:      sc.Location,
				SortBy:        page.SortBy,
				DatePosted:    page.DatePosted,
				Salary:        sc.Salary,
				EasyApplyOnly: sc.EasyApplyOnly,
			})
			if err != nil {
				return fmt.Errorf("search %q failed: %w", tp.Term, err)
			}
			for _, l := range listings {
				if seen[l.ID] {
					continue
				}
				seen[l.ID] = true

				d := filter.Decide(l, rules)
				verdict := "apply"
				if d.Outcome == models.FilterSkip {
					verdict = "skip"
				} else {
					wouldApply++
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", tp.Term, l.Title, l.Company, verdict, d.Reason)
			}
		}
	}
	w.Flush()

	fmt.Printf("\n%d unique listings, %d would be applied to\n", len(seen), wouldApply)
	return nil
}

func printSummary(runID string, cycles int, stats primary.CycleStats) {
	color.New(color.FgGreen).Printf("✓ Run %s complete (%d cycles)\n\n", runID, cycles)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Terms searched\t%d\n", stats.TermsSearched)
	fmt.Fprintf(w, "Pages searched\t%d\n", stats.PagesSearched)
	fmt.Fprintf(w, "Listings discovered\t%d\n", stats.Discovered)
	fmt.Fprintf(w, "Submitted\t%d\n", stats.Submitted)
	fmt.Fprintf(w, "Failed\t%d\n", stats.Failed)
	fmt.Fprintf(w, "Skipped\t%d\n", stats.Skipped)
	fmt.Fprintf(w, "Deduplicated\t%d\n", stats.Deduplicated)
	w.Flush()
}
