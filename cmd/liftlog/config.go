package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/liftlog/internal/config"
	"github.com/verte-zerg/liftlog/internal/workout"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# liftlog configuration
# Uncomment a value to enable it. CLI flags override config values.

[storage]
# db = "%s"   # SQLite database, "~" is expanded

[workout]
# default-reps = %d            # Reps for new sets
# default-weight = %.1f        # Weight for new sets
# drop-step = %.1f             # Weight removed per drop set part

[catalog]
# extra = "/path/to/exercises.txt"   # Extra exercises, one "id;name;muscle group" per line

[log]
# level = "info"               # debug, info, warn, error
# file = "%s"  # Required for logs while the TUI is running
`,
		config.DefaultDBPath(),
		workout.DefaultReps,
		workout.DefaultWeight,
		workout.DefaultDropStep,
		config.DefaultLogPath(),
	)
}
