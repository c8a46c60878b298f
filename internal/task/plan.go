package task

import (
	"fmt"

	"github.com/specialistvlad/rockerbuild/internal/dag"
)

// Plan is an ordered selection of tasks ready to hand to an executor.
type Plan struct {
	Tasks []*Task
	graph *dag.Graph
}

// Plan selects the requested tasks plus everything they depend on and
// orders them so dependencies come first. With no names every task is
// selected.
func (c *Container) Plan(names ...string) (*Plan, error) {
	full, err := c.Graph()
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		if _, ok := c.tasks[n]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTask, n)
		}
	}

	g := full
	if len(names) > 0 {
		if g, err = full.Subgraph(names...); err != nil {
			return nil, err
		}
	}
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	p := &Plan{graph: g}
	for _, n := range order {
		p.Tasks = append(p.Tasks, c.tasks[n])
	}
	return p, nil
}

// Dependencies returns the names of planned tasks that name depends on.
func (p *Plan) Dependencies(name string) ([]string, error) {
	return p.graph.Dependencies(name)
}

// Dependents returns the names of planned tasks that depend on name.
func (p *Plan) Dependents(name string) ([]string, error) {
	return p.graph.Dependents(name)
}

// Names returns the planned task names in execution order.
func (p *Plan) Names() []string {
	out := make([]string, len(p.Tasks))
	for i, t := range p.Tasks {
		out[i] = t.Name()
	}
	return out
}
