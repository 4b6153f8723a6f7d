package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/applypilot/internal/cli"
	"github.com/example/applypilot/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "applypilot",
		Short:   "applypilot - automated quick-apply engine for job boards",
		Version: version.String(),
		Long: `applypilot searches a job board for configured terms, filters the
listings, and drives the quick-apply flow for every listing that passes,
answering screening questions from your profile, the answer cache, and
an optional AI fallback.`,
	}

	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.AnswersCmd())
	rootCmd.AddCommand(cli.ConfigCmd())
	rootCmd.AddCommand(cli.LogCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
