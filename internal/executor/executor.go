// Package executor defines the interface for running a task plan and the
// report it produces.
package executor

import (
	"context"
	"time"

	"github.com/specialistvlad/rockerbuild/internal/task"
)

// Executor is responsible for running every task of a plan in dependency
// order. Implementations decide on concurrency.
type Executor interface {
	Execute(ctx context.Context, plan *task.Plan) (*Report, error)
}

// Outcome is the final state of one planned task.
type Outcome struct {
	Task     string
	State    task.State
	Err      error
	Duration time.Duration
}

// Report lists the outcome of every planned task in plan order.
type Report struct {
	Outcomes []Outcome
}

// ByState returns the names of the tasks that ended in s.
func (r *Report) ByState(s task.State) []string {
	var out []string
	for _, o := range r.Outcomes {
		if o.State == s {
			out = append(out, o.Task)
		}
	}
	return out
}

// Outcome returns the outcome of the named task.
func (r *Report) Outcome(name string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Task == name {
			return o, true
		}
	}
	return Outcome{}, false
}
