// Package main provides the CLI entrypoint for liftlog.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/liftlog/internal/catalog"
	"github.com/verte-zerg/liftlog/internal/config"
	"github.com/verte-zerg/liftlog/internal/logging"
	"github.com/verte-zerg/liftlog/internal/model"
	"github.com/verte-zerg/liftlog/internal/state"
	"github.com/verte-zerg/liftlog/internal/store"
	"github.com/verte-zerg/liftlog/internal/tui"
	"github.com/verte-zerg/liftlog/internal/workout"
)

var (
	configPath    string
	dbPath        string
	extraCatalog  string
	defaultReps   int
	defaultWeight float64
	dropStep      float64
	verbose       bool
	logLevel      string
	logFile       string
	assumeYes     bool

	logger = zap.NewNop()
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "liftlog",
		Short:             "Terminal workout logger",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if err := logger.Sync(); err != nil {
				// Best-effort flush; stderr sync fails on some terminals.
				_ = err
			}
		},
		RunE: runTrackCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", config.DefaultConfigPath(), "config file path")
	pf.StringVar(&dbPath, "db", config.DefaultDBPath(), "SQLite database path")
	pf.StringVar(&extraCatalog, "catalog", "", "file with extra exercises (id;name;muscle group per line)")
	pf.IntVar(&defaultReps, "default-reps", workout.DefaultReps, "reps for new sets")
	pf.Float64Var(&defaultWeight, "default-weight", workout.DefaultWeight, "weight for new sets")
	pf.Float64Var(&dropStep, "drop-step", workout.DefaultDropStep, "weight removed per drop set part")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to file instead of stderr")

	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newFinishCmd())
	rootCmd.AddCommand(newCancelCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newDayCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newTemplatesCmd())
	rootCmd.AddCommand(newExercisesCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// setup merges the config file into unset flags and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "config" {
		return nil
	}
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &dbPath, fileCfg.Storage.DB)
	applyIntConfig(cmd, "default-reps", &defaultReps, fileCfg.Workout.DefaultReps)
	applyFloatConfig(cmd, "default-weight", &defaultWeight, fileCfg.Workout.DefaultWeight)
	applyFloatConfig(cmd, "drop-step", &dropStep, fileCfg.Workout.DropStep)
	applyStringConfig(cmd, "catalog", &extraCatalog, fileCfg.Catalog.Extra)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	dbPath = config.ExpandPath(dbPath)
	extraCatalog = config.ExpandPath(extraCatalog)
	logFile = config.ExpandPath(logFile)

	if err := validateConfig(workoutConfig()); err != nil {
		return err
	}

	// The TUI owns the terminal; only log there when a file is configured.
	if cmd == cmd.Root() && logFile == "" {
		logger = zap.NewNop()
		return nil
	}
	logger, err = logging.New(logging.Options{Level: logLevel, File: logFile, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func workoutConfig() model.Config {
	return model.Config{
		DefaultReps:   defaultReps,
		DefaultWeight: defaultWeight,
		DropStep:      dropStep,
	}
}

func validateConfig(cfg model.Config) error {
	if cfg.DefaultReps < 0 {
		return fmt.Errorf("--default-reps must be >= 0")
	}
	if cfg.DefaultWeight < 0 {
		return fmt.Errorf("--default-weight must be >= 0")
	}
	if cfg.DropStep < 0 {
		return fmt.Errorf("--drop-step must be >= 0")
	}
	return nil
}

// app bundles the opened storage and services for one command run.
type app struct {
	db      *store.Store
	state   *state.Store
	catalog *catalog.Catalog
	tracker *workout.Tracker
}

func openApp(ctx context.Context) (*app, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	st, err := state.Open(ctx, db, state.WithLogger(logger))
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on load failure.
			_ = cerr
		}
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	tracker := workout.NewTracker(st,
		workout.WithEditor(workout.NewEditor(workout.UUIDGenerator{}, workoutConfig())),
		workout.WithLogger(logger),
	)
	logger.Debug("state loaded",
		zap.String("db", dbPath),
		zap.Int("sessions", len(st.Sessions())),
		zap.Int("templates", len(st.Templates())),
	)
	return &app{db: db, state: st, catalog: cat, tracker: tracker}, nil
}

func (a *app) close() {
	if cerr := a.db.Close(); cerr != nil {
		logger.Warn("failed to close db", zap.Error(cerr))
	}
}

func loadCatalog() (*catalog.Catalog, error) {
	cat := catalog.Default()
	if extraCatalog == "" {
		return cat, nil
	}
	extra, err := catalog.LoadFile(extraCatalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	cat, err = cat.Extend(extra)
	if err != nil {
		return nil, fmt.Errorf("failed to extend catalog: %w", err)
	}
	logger.Debug("catalog extended", zap.String("path", extraCatalog), zap.Int("extra", len(extra)))
	return cat, nil
}

func runTrackCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	m := tui.NewModel(a.tracker, a.catalog, logger)
	defer m.Close()
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
