package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/applypilot/internal/config"
	"github.com/example/applypilot/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var (
		dir   string
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the applypilot environment",
		Long: `Health check for an applypilot project.

Validates:
- Config file presence and validity
- Board and AI credentials in the environment
- Resume file on disk
- History directory and state database

Examples:
  applypilot doctor            # Run full health check
  applypilot doctor --quiet    # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := dir
			if target == "" {
				var err error
				target, err = os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to resolve working directory: %w", err)
				}
			}

			cfg, cfgResult := checkConfig(target)
			results := []CheckResult{cfgResult}
			if cfg != nil {
				results = append(results, checkCredentials(cfg))
				results = append(results, checkResume(target, cfg))
				results = append(results, checkHistoryDir(target, cfg))
				results = append(results, checkStateDB(target, cfg))
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n  %s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Project directory (default: current directory)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

func checkConfig(dir string) (*config.Config, CheckResult) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, CheckResult{Name: "Config", Status: "✗", Details: fmt.Sprintf("%v (run 'applypilot config init')", err)}
	}
	if err := cfg.Validate(); err != nil {
		return nil, CheckResult{Name: "Config", Status: "✗", Details: err.Error()}
	}
	return cfg, CheckResult{Name: "Config", Status: "✓"}
}

func checkCredentials(cfg *config.Config) CheckResult {
	missing := []string{}
	if cfg.BoardUsername == "" {
		missing = append(missing, "BOARD_USERNAME")
	}
	if cfg.BoardPassword == "" {
		missing = append(missing, "BOARD_PASSWORD")
	}
	if cfg.AI.Enabled && cfg.AI.APIKey == "" {
		missing = append(missing, "LLM_API_KEY")
	}

	if len(missing) > 0 {
		details := "missing from environment:"
		for _, m := range missing {
			details += " " + m
		}
		return CheckResult{Name: "Credentials", Status: "⚠", Details: details}
	}
	return CheckResult{Name: "Credentials", Status: "✓"}
}

func checkResume(dir string, cfg *config.Config) CheckResult {
	path := cfg.Profile.ResumePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	if _, err := os.Stat(path); err != nil {
		return CheckResult{Name: "Resume", Status: "✗", Details: fmt.Sprintf("resume not found at %s", path)}
	}
	return CheckResult{Name: "Resume", Status: "✓"}
}

func checkHistoryDir(dir string, cfg *config.Config) CheckResult {
	histDir := filepath.Dir(filepath.Join(dir, cfg.Paths.AppliedHistory))
	if err := os.MkdirAll(histDir, 0755); err != nil {
		return CheckResult{Name: "History", Status: "✗", Details: fmt.Sprintf("cannot create %s: %v", histDir, err)}
	}
	return CheckResult{Name: "History", Status: "✓"}
}

func checkStateDB(dir string, cfg *config.Config) CheckResult {
	database, err := db.Open(filepath.Join(dir, cfg.Paths.StateDir))
	if err != nil {
		return CheckResult{Name: "State DB", Status: "✗", Details: err.Error()}
	}
	database.Close()
	return CheckResult{Name: "State DB", Status: "✓"}
}
