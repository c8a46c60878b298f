// Package localexecutor provides a concrete, in-process implementation of the
// executor.Executor interface backed by a bounded worker pool.
package localexecutor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/rockerbuild/internal/ctxlog"
	"github.com/specialistvlad/rockerbuild/internal/executor"
	"github.com/specialistvlad/rockerbuild/internal/task"
)

// Executor runs a plan on a fixed number of workers.
type Executor struct {
	numWorkers int
	keepGoing  bool
}

// Option customizes an Executor.
type Option func(*Executor)

// WithKeepGoing keeps running independent tasks after a failure instead of
// cancelling the rest of the run.
func WithKeepGoing(keepGoing bool) Option {
	return func(e *Executor) { e.keepGoing = keepGoing }
}

// New creates a local executor with the given worker count. Counts below
// one are raised to one.
func New(workers int, opts ...Option) *Executor {
	if workers < 1 {
		workers = 1
	}
	e := &Executor{numWorkers: workers}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ executor.Executor = (*Executor)(nil)

// run holds the bookkeeping of a single Execute call.
type run struct {
	plan     *task.Plan
	tasks    map[string]*task.Task
	depCount map[string]*atomic.Int32
	settled  map[string]*atomic.Bool
	ready    chan *task.Task
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu       sync.Mutex
	outcomes map[string]executor.Outcome
}

// Execute runs every task of plan. A task starts once all of its
// dependencies finished without error; a failed task's dependents are
// skipped. The returned error joins every task failure.
func (e *Executor) Execute(ctx context.Context, plan *task.Plan) (*executor.Report, error) {
	logger := ctxlog.FromContext(ctx)

	r := &run{
		plan:     plan,
		tasks:    make(map[string]*task.Task, len(plan.Tasks)),
		depCount: make(map[string]*atomic.Int32, len(plan.Tasks)),
		settled:  make(map[string]*atomic.Bool, len(plan.Tasks)),
		ready:    make(chan *task.Task, len(plan.Tasks)),
		outcomes: make(map[string]executor.Outcome, len(plan.Tasks)),
	}
	for _, t := range plan.Tasks {
		deps, err := plan.Dependencies(t.Name())
		if err != nil {
			return nil, err
		}
		r.tasks[t.Name()] = t
		r.depCount[t.Name()] = new(atomic.Int32)
		r.depCount[t.Name()].Store(int32(len(deps)))
		r.settled[t.Name()] = new(atomic.Bool)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	r.cancel = cancel
	if e.keepGoing {
		r.cancel = func() {}
	}

	logger.Debug("Initializing executor, finding root tasks...")
	r.wg.Add(len(plan.Tasks))
	roots := 0
	for _, t := range plan.Tasks {
		if r.depCount[t.Name()].Load() == 0 {
			r.ready <- t
			roots++
		}
	}
	logger.Debug("Found all root tasks.", "count", roots)

	logger.Debug("Starting worker pool.", "workers", e.numWorkers)
	for i := 0; i < e.numWorkers; i++ {
		go r.worker(runCtx, i)
	}

	r.wg.Wait()
	close(r.ready)

	report := &executor.Report{Outcomes: make([]executor.Outcome, 0, len(plan.Tasks))}
	var errs []error
	for _, t := range plan.Tasks {
		o := r.outcomes[t.Name()]
		report.Outcomes = append(report.Outcomes, o)
		if o.State == task.Failed {
			errs = append(errs, fmt.Errorf("task %q failed: %w", o.Task, o.Err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return report, err
	}
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("build interrupted: %w", err)
	}
	logger.Info("All tasks completed.", "executed", len(report.ByState(task.Executed)), "skipped", len(report.ByState(task.Skipped)))
	return report, nil
}

// settle records the outcome of a task exactly once.
func (r *run) settle(o executor.Outcome) bool {
	if !r.settled[o.Task].CompareAndSwap(false, true) {
		return false
	}
	r.mu.Lock()
	r.outcomes[o.Task] = o
	r.mu.Unlock()
	r.wg.Done()
	return true
}

// skip marks t Skipped with cause and propagates to everything downstream.
func (r *run) skip(ctx context.Context, t *task.Task, cause error) {
	t.Skip()
	if !r.settle(executor.Outcome{Task: t.Name(), State: task.Skipped, Err: cause}) {
		return
	}
	r.skipDependents(ctx, t)
}

// skipDependents skips every dependent of t recursively.
func (r *run) skipDependents(ctx context.Context, t *task.Task) {
	logger := ctxlog.FromContext(ctx)
	dependents, err := r.plan.Dependents(t.Name())
	if err != nil {
		logger.Error("Failed to get dependents.", "task", t.Name(), "error", err)
		return
	}
	for _, name := range dependents {
		if r.settled[name].Load() {
			continue
		}
		logger.Warn("Skipping dependent task due to upstream failure.", "task", name, "dependency", t.Name())
		r.skip(ctx, r.tasks[name], fmt.Errorf("skipped due to upstream failure of %q", t.Name()))
	}
}
