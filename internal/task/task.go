// Package task provides the host's named task container: tasks with
// descriptive metadata, bound inputs, an action, and dependsOn edges that
// the planner turns into a precedence graph.
package task

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	// ErrNoSource is returned by an action that found nothing to do. The
	// executor records the task as Skipped instead of Failed.
	ErrNoSource = errors.New("no source")
	// ErrDuplicateTask is returned when a task name is registered twice.
	ErrDuplicateTask = errors.New("task already registered")
	// ErrUnknownTask is returned when a referenced task does not exist.
	ErrUnknownTask = errors.New("task not found")
)

// Action is the work a task performs when executed.
type Action func(ctx context.Context, t *Task) error

// Task is a single named build step.
type Task struct {
	name        string
	description string
	group       string
	action      Action
	inputs      map[string]any
	dependsOn   []string

	mu    sync.Mutex
	state State
	err   error
}

func newTask(name string, action Action) *Task {
	return &Task{
		name:   name,
		action: action,
		inputs: make(map[string]any),
	}
}

// Name returns the task's unique name.
func (t *Task) Name() string { return t.name }

// Description returns the human-readable description.
func (t *Task) Description() string { return t.description }

// Group returns the grouping used when listing tasks.
func (t *Task) Group() string { return t.group }

// SetDescription sets the human-readable description.
func (t *Task) SetDescription(d string) { t.description = d }

// SetGroup sets the listing group.
func (t *Task) SetGroup(g string) { t.group = g }

// Bind attaches an input under key and marks the task Configured.
func (t *Task) Bind(key string, value any) {
	t.inputs[key] = value
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Registered {
		t.state = Configured
	}
}

// Input returns a previously bound input.
func (t *Task) Input(key string) (any, bool) {
	v, ok := t.inputs[key]
	return v, ok
}

// DependsOn declares that t runs only after every task in deps finished.
// Each dependency becomes Wired.
func (t *Task) DependsOn(deps ...*Task) {
	for _, d := range deps {
		if !slices.Contains(t.dependsOn, d.name) {
			t.dependsOn = append(t.dependsOn, d.name)
		}
		d.markWired()
	}
}

// Dependencies returns the names t depends on, in declaration order.
func (t *Task) Dependencies() []string {
	return slices.Clone(t.dependsOn)
}

// State returns the current lifecycle state.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Err returns the failure recorded for the task, if any.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Transition moves the task from one state to another. The caller supplies
// the expected prior state so races surface as errors.
func (t *Task) Transition(from, to State) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != from {
		return fmt.Errorf("invalid transition for %q: expected %s, got %s", t.name, from, t.state)
	}
	if !isAllowedTransition(from, to) {
		return fmt.Errorf("disallowed transition for %q: %s -> %s", t.name, from, to)
	}
	t.state = to
	return nil
}

// Skip moves a not-yet-finished task to Skipped.
func (t *Task) Skip() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.state.IsTerminal() {
		t.state = Skipped
	}
}

// Run executes the action of an Eligible task and records the outcome.
// ErrNoSource results in Skipped; any other error in Failed.
func (t *Task) Run(ctx context.Context) error {
	if s := t.State(); s != Eligible {
		return fmt.Errorf("task %q is not eligible to run: state %s", t.name, s)
	}
	var err error
	if t.action != nil {
		err = t.action(ctx, t)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case err == nil:
		t.state = Executed
	case errors.Is(err, ErrNoSource):
		t.state = Skipped
		err = nil
	default:
		t.state = Failed
		t.err = err
	}
	return err
}

func (t *Task) markWired() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Registered || t.state == Configured {
		t.state = Wired
	}
}
