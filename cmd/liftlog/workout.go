package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/liftlog/internal/workout"
)

func newStartCmd() *cobra.Command {
	var (
		templateID string
		replace    bool
	)
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a workout, from a template or freestyle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if prev, ok := a.state.ActiveSession(); ok && !replace {
				yes, err := confirm(
					fmt.Sprintf("Replace active workout %q?", prev.Name),
					"The current workout stays in history unfinished.",
				)
				if errors.Is(err, errNeedsConfirmation) {
					return fmt.Errorf("%w (%s); rerun with --replace", workout.ErrActiveWorkout, prev.Name)
				}
				if err != nil {
					return err
				}
				if !yes {
					return nil
				}
				replace = true
			}

			var tmpl *string
			if cmd.Flags().Changed("template") {
				tmpl = &templateID
			}
			s, err := a.tracker.Start(cmd.Context(), tmpl, replace)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Started %s (%s) with %d exercises\n", s.Name, s.ID, len(s.Exercises))
			return err
		},
	}
	cmd.Flags().StringVarP(&templateID, "template", "t", "", "template id to start from")
	cmd.Flags().BoolVar(&replace, "replace", false, "replace the active workout")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newFinishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finish",
		Short: "Finish the active workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			s, err := a.tracker.Finish(cmd.Context())
			if err != nil {
				return err
			}
			done, total := 0, 0
			for _, ex := range s.Exercises {
				for _, set := range ex.Sets {
					total++
					if set.Completed {
						done++
					}
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Finished %s: %d/%d sets completed\n", s.Name, done, total)
			return err
		},
	}
}

func newCancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Discard the active workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			s, err := a.tracker.Active()
			if err != nil {
				return err
			}
			yes, err := confirm(fmt.Sprintf("Discard workout %q?", s.Name), "The session is deleted from history.")
			if err != nil || !yes {
				return err
			}
			if _, err := a.tracker.Cancel(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cancelled %s\n", s.Name)
			return err
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation")
	return cmd
}
