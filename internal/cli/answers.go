package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/applypilot/internal/core/question"
	"github.com/example/applypilot/internal/models"
	"github.com/example/applypilot/internal/ports/secondary"
	"github.com/example/applypilot/internal/wire"
)

// AnswersCmd returns the answers command
func AnswersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "answers",
		Short: "Manage the cached screening answers",
		Long: `Inspect and edit the persistent answer cache. Cached answers are reused
across runs so the same screening question is never resolved twice.`,
	}

	cmd.AddCommand(answersListCmd())
	cmd.AddCommand(answersSetCmd())
	cmd.AddCommand(answersDeleteCmd())

	return cmd
}

func answersListCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all cached answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := wire.BuildState(wire.Options{Dir: dir})
			if err != nil {
				return err
			}
			defer engine.Close()

			entries, err := engine.Cache.List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list answers: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println("No cached answers.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "QUESTION\tANSWER\tSOURCE")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Question, e.Answer, e.Source)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Project directory (default: current directory)")
	return cmd
}

func answersSetCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "set <question> <answer>",
		Short: "Set the answer for a question",
		Long: `Store an answer for a screening question. The question text is
normalized before it is used as the cache key, so phrasing differences
in punctuation and casing map to the same entry.

Examples:
  applypilot answers set "How many years of experience do you have with Go?" "5"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := wire.BuildState(wire.Options{Dir: dir})
			if err != nil {
				return err
			}
			defer engine.Close()

			entry := &secondary.CachedAnswer{
				Key:      question.Normalize(args[0]),
				Question: args[0],
				Answer:   args[1],
				Source:   models.AnswerSourceManual,
			}
			if err := engine.Cache.Put(context.Background(), entry, true); err != nil {
				return fmt.Errorf("failed to store answer: %w", err)
			}

			fmt.Printf("✓ Answer stored for %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Project directory (default: current directory)")
	return cmd
}

func answersDeleteCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "delete <question>",
		Short: "Delete the cached answer for a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := wire.BuildState(wire.Options{Dir: dir})
			if err != nil {
				return err
			}
			defer engine.Close()

			key := question.Normalize(args[0])
			if err := engine.Cache.Delete(context.Background(), key); err != nil {
				return fmt.Errorf("failed to delete answer: %w", err)
			}

			fmt.Printf("✓ Answer deleted for %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Project directory (default: current directory)")
	return cmd
}
