package task

import "fmt"

// State is a task's position in its lifecycle. The host drives the
// transitions; build logic only observes them.
type State int32

const (
	// Registered: the task exists in the container.
	Registered State = iota
	// Configured: inputs have been bound.
	Configured
	// Wired: another task declared a dependency on this one.
	Wired
	// Eligible: every dependency finished successfully; the task may run.
	Eligible
	// Executed, Skipped and Failed are terminal.
	Executed
	Skipped
	Failed
)

func (s State) String() string {
	switch s {
	case Registered:
		return "REGISTERED"
	case Configured:
		return "CONFIGURED"
	case Wired:
		return "WIRED"
	case Eligible:
		return "ELIGIBLE"
	case Executed:
		return "EXECUTED"
	case Skipped:
		return "SKIPPED"
	case Failed:
		return "FAILED"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// IsTerminal reports whether the state is final for this build invocation.
func (s State) IsTerminal() bool {
	return s == Executed || s == Skipped || s == Failed
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case Registered:
		return to == Configured || to == Wired || to == Eligible || to == Skipped
	case Configured:
		return to == Wired || to == Eligible || to == Skipped
	case Wired:
		return to == Eligible || to == Skipped
	case Eligible:
		return to == Executed || to == Skipped || to == Failed
	default:
		return false
	}
}
