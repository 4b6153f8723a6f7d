// Package wire assembles the applypilot engine: it loads configuration,
// opens the state database, and connects adapters to services.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/example/applypilot/internal/adapters/console"
	"github.com/example/applypilot/internal/adapters/ledger"
	"github.com/example/applypilot/internal/adapters/llm"
	"github.com/example/applypilot/internal/adapters/scripted"
	"github.com/example/applypilot/internal/adapters/sqlite"
	"github.com/example/applypilot/internal/adapters/throttle"
	"github.com/example/applypilot/internal/app"
	"github.com/example/applypilot/internal/config"
	"github.com/example/applypilot/internal/db"
	"github.com/example/applypilot/internal/ports/primary"
	"github.com/example/applypilot/internal/ports/secondary"
)

// Engine is the fully assembled application.
type Engine struct {
	Config *config.Config

	Board    secondary.BoardAdapter
	Ledger   secondary.LedgerRepository
	Cache    secondary.AnswerCache
	Events   secondary.EventLogger
	EventLog *sqlite.EventLog
	Resolver primary.QuestionResolver
	Apply    primary.ApplyService
	Cycle    primary.SearchCycleService
	Run      primary.RunService
	History  primary.HistoryService

	database *sql.DB
}

// Options adjusts how the engine is assembled.
type Options struct {
	// Dir is the project directory holding .applypilot/, .env, and history.
	// Empty means the current working directory.
	Dir string

	// ScriptPath selects the scripted board fixture driving the run.
	ScriptPath string

	// DisableAI forces the AI fallback off regardless of configuration.
	DisableAI bool

	// Once limits the run to a single cycle regardless of run_non_stop.
	Once bool
}

// LoadConfig resolves the project directory and loads its configuration.
func LoadConfig(opts Options) (*config.Config, string, error) {
	dir := opts.Dir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, dir, nil
}

// Build assembles the engine for a run. Close must be called when done.
func Build(ctx context.Context, opts Options) (*Engine, error) {
	cfg, dir, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	if opts.ScriptPath == "" {
		return nil, fmt.Errorf("no board script configured: pass --script with a board fixture")
	}
	board, err := scripted.Load(opts.ScriptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load board script: %w", err)
	}

	database, err := db.Open(filepath.Join(dir, cfg.Paths.StateDir))
	if err != nil {
		return nil, err
	}

	cache := sqlite.NewAnswerCacheRepository(database)
	events := sqlite.NewEventLog(database)
	ledg := ledger.NewCSVLedger(
		filepath.Join(dir, cfg.Paths.AppliedHistory),
		filepath.Join(dir, cfg.Paths.FailedHistory),
	)
	prompter := console.NewPrompter(os.Stdin, os.Stdout)
	pacer := throttle.NewSleeper(time.Duration(cfg.Behavior.ClickGapSeconds)*time.Second, nil)

	var ai secondary.LLMClient
	if cfg.AI.Enabled && !opts.DisableAI {
		client, err := llm.New(ctx, cfg.AI)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to initialize AI client: %w", err)
		}
		ai = client
	}

	resolver := app.NewResolverService(cache, ai, prompter, events, cfg.Profile, cfg.Behavior)
	applySvc := app.NewApplyService(board, resolver, ledg, prompter, pacer, events, cfg)
	cycleSvc := app.NewSearchCycleService(board, applySvc, pacer, events, cfg, nil)
	runSvc := app.NewRunService(cycleSvc, events, cfg, opts.Once)

	return &Engine{
		Config:   cfg,
		Board:    board,
		Ledger:   ledg,
		Cache:    cache,
		Events:   events,
		EventLog: events,
		Resolver: resolver,
		Apply:    applySvc,
		Cycle:    cycleSvc,
		Run:      runSvc,
		History:  app.NewHistoryService(ledg),
		database: database,
	}, nil
}

// BuildState assembles only the stateful parts (config, database, ledger)
// for commands that inspect history or the answer cache without a board.
func BuildState(opts Options) (*Engine, error) {
	cfg, dir, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	database, err := db.Open(filepath.Join(dir, cfg.Paths.StateDir))
	if err != nil {
		return nil, err
	}

	ledg := ledger.NewCSVLedger(
		filepath.Join(dir, cfg.Paths.AppliedHistory),
		filepath.Join(dir, cfg.Paths.FailedHistory),
	)

	events := sqlite.NewEventLog(database)
	return &Engine{
		Config:   cfg,
		Ledger:   ledg,
		Cache:    sqlite.NewAnswerCacheRepository(database),
		Events:   events,
		EventLog: events,
		History:  app.NewHistoryService(ledg),
		database: database,
	}, nil
}

// Close releases the engine's resources.
func (e *Engine) Close() error {
	if e.database != nil {
		return e.database.Close()
	}
	return nil
}
