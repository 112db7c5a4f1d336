package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/liftlog/internal/store"
)

const savedLayout = "2006-01-02 15:04:05"

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show storage location, last save and the active workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			var b strings.Builder
			fmt.Fprintf(&b, "Database:   %s\n", dbPath)
			if err := writeSaved(cmd, &b, a.db); err != nil {
				return err
			}
			fmt.Fprintf(&b, "Sessions:   %d\n", len(a.state.Sessions()))
			fmt.Fprintf(&b, "Templates:  %d\n", len(a.state.Templates()))
			if s, ok := a.state.ActiveSession(); ok {
				fmt.Fprintf(&b, "Active:     %s (%s)\n", s.Name, s.ID)
			} else {
				b.WriteString("Active:     none\n")
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		},
	}
}

// writeSaved lists every stored snapshot with its last write time.
func writeSaved(cmd *cobra.Command, b *strings.Builder, db *store.Store) error {
	keys, err := db.Keys(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(keys) == 0 {
		b.WriteString("Last saved: never\n")
		return nil
	}
	for _, key := range keys {
		at, err := db.UpdatedAt(cmd.Context(), key)
		if err != nil {
			return fmt.Errorf("failed to read snapshot %q: %w", key, err)
		}
		fmt.Fprintf(b, "Last saved: %s (%s)\n", at.In(time.Local).Format(savedLayout), key)
	}
	return nil
}
