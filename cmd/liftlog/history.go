package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/liftlog/internal/catalog"
	"github.com/verte-zerg/liftlog/internal/history"
	"github.com/verte-zerg/liftlog/internal/state"
)

const dateLayout = "2006-01-02"

func renderer(cmd *cobra.Command, cat *catalog.Catalog) history.Renderer {
	return history.Renderer{Catalog: cat, Loc: time.Local, Width: outputWidth(cmd.OutOrStdout())}
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List workouts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			return renderer(cmd, a.catalog).RenderHistory(cmd.OutOrStdout(), a.state.Sessions())
		},
	}
}

func newDayCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show workouts logged on a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			day := now
			if date != "" {
				parsed, err := time.ParseInLocation(dateLayout, date, time.Local)
				if err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
				}
				day = parsed
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			report := history.BuildDayReport(a.state.Snapshot(), day, now, time.Local)
			return renderer(cmd, a.catalog).RenderDay(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "day to show (YYYY-MM-DD, default today)")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show every set of a workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			s, ok := a.state.Session(args[0])
			if !ok {
				return fmt.Errorf("session %s: %w", args[0], state.ErrNotFound)
			}
			return renderer(cmd, a.catalog).RenderDetail(cmd.OutOrStdout(), s)
		},
	}
}

func newExercisesCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "List catalog exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			return renderer(cmd, cat).RenderExercises(cmd.OutOrStdout(), cat.Search(query))
		},
	}
	cmd.Flags().StringVarP(&query, "search", "s", "", "filter by name or muscle group")
	return cmd
}

func newExportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the full state as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "json" && format != "yaml" {
				return fmt.Errorf("--format must be json or yaml")
			}
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			snapshot := a.state.Snapshot()
			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(snapshot)
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(snapshot); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json or yaml)")
	return cmd
}
