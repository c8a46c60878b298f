package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/rockerbuild/internal/executor"
	"github.com/specialistvlad/rockerbuild/internal/rocker"
	"github.com/specialistvlad/rockerbuild/internal/task"
)

// DefaultTasks returns the tasks run when none are requested: every
// generation task, in declaration order.
func (a *App) DefaultTasks() []string {
	var names []string
	for _, t := range a.project.Tasks.All() {
		if t.Group() == rocker.TaskGroup {
			names = append(names, t.Name())
		}
	}
	return names
}

func (a *App) plan(names []string) (*task.Plan, error) {
	if len(names) == 0 {
		names = a.DefaultTasks()
		if len(names) == 0 {
			return &task.Plan{}, nil
		}
	}
	return a.project.Tasks.Plan(names...)
}

// Run executes the named tasks and everything they depend on.
func (a *App) Run(ctx context.Context, names ...string) (*executor.Report, error) {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.", "requested", names)

	plan, err := a.plan(names)
	if err != nil {
		return nil, fmt.Errorf("failed to plan tasks: %w", err)
	}
	if len(plan.Tasks) == 0 {
		a.logger.Warn("No tasks to run.")
		return &executor.Report{}, nil
	}

	a.logger.Info("Starting build.", "tasks", plan.Names())
	report, err := a.executor.Execute(ctx, plan)
	if err != nil {
		return report, fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("Build finished.")
	return report, nil
}
