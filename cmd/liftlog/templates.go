package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/liftlog/internal/catalog"
	"github.com/verte-zerg/liftlog/internal/state"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template"},
		Short:   "Manage workout templates",
		Args:    cobra.NoArgs,
		RunE:    runTemplatesList,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE:  runTemplatesList,
	})
	cmd.AddCommand(newTemplatesAddCmd())
	cmd.AddCommand(newTemplatesEditCmd())
	cmd.AddCommand(newTemplatesDeleteCmd())
	return cmd
}

func runTemplatesList(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()
	return renderer(cmd, a.catalog).RenderTemplates(cmd.OutOrStdout(), a.state.Templates())
}

func newTemplatesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME EXERCISE_ID...",
		Short: "Create a template",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			if err := checkExercises(a.catalog, args[1:]); err != nil {
				return err
			}
			tmpl, err := a.tracker.SaveTemplate(cmd.Context(), "", args[0], args[1:])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created template %s (%s)\n", tmpl.Name, tmpl.ID)
			return err
		},
	}
}

func newTemplatesEditCmd() *cobra.Command {
	var (
		name      string
		exercises []string
	)
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Rename a template or replace its exercises",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			tmpl, ok := a.state.Template(args[0])
			if !ok {
				return fmt.Errorf("template %s: %w", args[0], state.ErrNotFound)
			}
			if cmd.Flags().Changed("name") {
				tmpl.Name = name
			}
			if cmd.Flags().Changed("exercises") {
				if err := checkExercises(a.catalog, exercises); err != nil {
					return err
				}
				tmpl.Exercises = exercises
			}
			tmpl, err = a.tracker.SaveTemplate(cmd.Context(), tmpl.ID, tmpl.Name, tmpl.Exercises)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated template %s (%s)\n", tmpl.Name, tmpl.ID)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new template name")
	cmd.Flags().StringSliceVar(&exercises, "exercises", nil, "comma-separated exercise ids, in order")
	return cmd
}

func newTemplatesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()
			tmpl, ok := a.state.Template(args[0])
			if !ok {
				return fmt.Errorf("template %s: %w", args[0], state.ErrNotFound)
			}
			yes, err := confirm(fmt.Sprintf("Delete template %q?", tmpl.Name), "Past workouts keep their data.")
			if err != nil || !yes {
				return err
			}
			if err := a.tracker.DeleteTemplate(cmd.Context(), tmpl.ID); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %s\n", tmpl.Name)
			return err
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation")
	return cmd
}

func checkExercises(cat *catalog.Catalog, ids []string) error {
	for _, id := range ids {
		if _, ok := cat.Lookup(id); !ok {
			return fmt.Errorf("unknown exercise %q (see: liftlog exercises)", id)
		}
	}
	return nil
}
