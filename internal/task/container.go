package task

import (
	"fmt"

	"github.com/specialistvlad/rockerbuild/internal/dag"
)

// Container holds every task of a project, keyed by name, in registration
// order. It is mutated only during configuration.
type Container struct {
	tasks map[string]*Task
	order []string
}

// NewContainer creates an empty task container.
func NewContainer() *Container {
	return &Container{tasks: make(map[string]*Task)}
}

// Register creates a task. Registering an existing name fails with
// ErrDuplicateTask.
func (c *Container) Register(name string, action Action) (*Task, error) {
	if name == "" {
		return nil, fmt.Errorf("task name must not be empty")
	}
	if _, exists := c.tasks[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTask, name)
	}
	t := newTask(name, action)
	c.tasks[name] = t
	c.order = append(c.order, name)
	return t, nil
}

// Lookup returns the named task, reporting absence with false.
func (c *Container) Lookup(name string) (*Task, bool) {
	t, ok := c.tasks[name]
	return t, ok
}

// Get returns the named task or ErrUnknownTask.
func (c *Container) Get(name string) (*Task, error) {
	t, ok := c.tasks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return t, nil
}

// Remove deletes a task and every dependsOn reference to it. It exists so
// a failed configuration step can undo its own registration.
func (c *Container) Remove(name string) {
	if _, ok := c.tasks[name]; !ok {
		return
	}
	delete(c.tasks, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	for _, t := range c.tasks {
		for i, d := range t.dependsOn {
			if d == name {
				t.dependsOn = append(t.dependsOn[:i], t.dependsOn[i+1:]...)
				break
			}
		}
	}
}

// All returns every task in registration order.
func (c *Container) All() []*Task {
	out := make([]*Task, 0, len(c.order))
	for _, n := range c.order {
		out = append(out, c.tasks[n])
	}
	return out
}

// Names returns every task name in registration order.
func (c *Container) Names() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of tasks.
func (c *Container) Len() int { return len(c.order) }

// Graph builds the precedence graph of every task. A dependsOn naming an
// unregistered task is an error.
func (c *Container) Graph() (*dag.Graph, error) {
	g := dag.New()
	for _, n := range c.order {
		g.AddNode(n)
	}
	for _, n := range c.order {
		for _, dep := range c.tasks[n].dependsOn {
			if _, ok := c.tasks[dep]; !ok {
				return nil, fmt.Errorf("task %q depends on %w: %s", n, ErrUnknownTask, dep)
			}
			if err := g.AddEdge(dep, n); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
