package localexecutor

import (
	"context"
	"time"

	"github.com/specialistvlad/rockerbuild/internal/ctxlog"
	"github.com/specialistvlad/rockerbuild/internal/executor"
	"github.com/specialistvlad/rockerbuild/internal/task"
)

// worker is the core processing loop for a single concurrent worker.
func (r *run) worker(ctx context.Context, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for t := range r.ready {
		taskCtx := ctxlog.With(ctx, "workerID", workerID, "task", t.Name())
		workerLogger := ctxlog.FromContext(taskCtx)
		if r.settled[t.Name()].Load() {
			continue
		}

		if err := ctx.Err(); err != nil {
			workerLogger.Warn("Context canceled, skipping task execution.")
			r.skip(ctx, t, err)
			continue
		}

		if err := t.Transition(t.State(), task.Eligible); err != nil {
			r.fail(ctx, t, err, 0)
			continue
		}

		workerLogger.Info("Task started.")
		start := time.Now()
		err := t.Run(taskCtx)
		elapsed := time.Since(start)

		if err != nil {
			workerLogger.Error("Task failed.", "error", err, "duration", elapsed)
			r.fail(ctx, t, err, elapsed)
			continue
		}

		workerLogger.Info("Task finished.", "state", t.State().String(), "duration", elapsed)
		r.settle(executor.Outcome{Task: t.Name(), State: t.State(), Duration: elapsed})

		dependents, err := r.plan.Dependents(t.Name())
		if err != nil {
			workerLogger.Error("Failed to get dependents for completed task.", "error", err)
			continue
		}
		for _, name := range dependents {
			if r.depCount[name].Add(-1) == 0 {
				workerLogger.Debug("Unlocking dependent task.", "dependent", name)
				r.ready <- r.tasks[name]
			}
		}
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}

// fail records a failure, cancels the run unless it keeps going, and skips
// the task's dependents.
func (r *run) fail(ctx context.Context, t *task.Task, err error, elapsed time.Duration) {
	r.settle(executor.Outcome{Task: t.Name(), State: task.Failed, Err: err, Duration: elapsed})
	r.cancel()
	r.skipDependents(ctx, t)
}
