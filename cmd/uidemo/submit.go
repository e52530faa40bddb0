package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-uidemo/internal/prompt"
	"github.com/goliatone/go-uidemo/pages/formvalidation"
	"github.com/goliatone/go-uidemo/pkg/action"
	"github.com/goliatone/go-uidemo/pkg/form"
)

func newSubmitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Fill the contact form interactively and run the server action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, flags)
		},
	}
}

func runSubmit(cmd *cobra.Command, flags *rootFlags) error {
	cfg, log, err := flags.load(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	schema, err := formvalidation.LoadSchema(ctx, formvalidation.NewOptions())
	if err != nil {
		return err
	}
	act := action.New(
		action.WithDelay(cfg.Action.Delay),
		action.WithProjectFile(cfg.Action.ProjectFile),
		action.WithLogger(log),
	)

	var project action.Project
	err = prompt.FillForm(ctx, newDriver(), form.New(schema), func(ctx context.Context, values form.Values) error {
		var err error
		project, err = act.Run(ctx, map[string]string(values))
		return err
	})
	if errors.Is(err, prompt.ErrAborted) {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Submitted to %s.\n", project.Name)
	return nil
}
