package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError(fmt.Errorf("%s accepts %d arg(s), received %d", cmd.CommandPath(), n, len(args)))
		}
		return nil
	}
}

func newRunCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "run [task...]",
		Short: "Run tasks and their dependencies (default: every generation task)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			report, err := a.Run(cmd.Context(), args...)
			if report != nil {
				for _, o := range report.Outcomes {
					fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", o.State, o.Task)
				}
			}
			if err != nil {
				return buildError(err)
			}
			return nil
		},
	}
}

func newTasksCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List every task, grouped",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			return a.WriteTasks(cmd.OutOrStdout())
		},
	}
}

func newResolveCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <scope>",
		Short: "Resolve a dependency scope and print the selected modules",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			if err := a.WriteResolution(cmd.Context(), cmd.OutOrStdout(), args[0]); err != nil {
				return buildError(err)
			}
			return nil
		},
	}
}

func newPlanCommand(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "plan [task...]",
		Short: "Print the execution plan as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			if err := a.WritePlan(cmd.OutOrStdout(), args...); err != nil {
				return buildError(err)
			}
			return nil
		},
	}
}
