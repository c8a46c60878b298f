package app

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteTasks lists every task grouped by task group, groups sorted by name.
func (a *App) WriteTasks(w io.Writer) error {
	groups := make(map[string][]string)
	for _, t := range a.project.Tasks.All() {
		line := t.Name()
		if d := t.Description(); d != "" {
			line += " - " + d
		}
		groups[t.Group()] = append(groups[t.Group()], line)
	}

	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	slices.Sort(names)

	for i, g := range names {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := g + " tasks"
		if g == "" {
			title = "Other tasks"
		}
		fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("-", len(title)))
		for _, line := range groups[g] {
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

// WriteResolution resolves a scope and prints one selected coordinate per
// line, noting requested versions that lost.
func (a *App) WriteResolution(ctx context.Context, w io.Writer, scope string) error {
	s, ok := a.project.Scopes.Lookup(scope)
	if !ok {
		return fmt.Errorf("unknown dependency scope %q (known: %s)", scope, strings.Join(a.project.Scopes.Names(), ", "))
	}
	res, err := s.Resolve(a.context(ctx))
	if err != nil {
		return err
	}
	for _, m := range res.Modules {
		var others []string
		for _, v := range m.Requested {
			if v != "" && v != m.Coordinate.Version {
				others = append(others, v)
			}
		}
		line := m.Coordinate.String()
		if len(others) > 0 {
			line += " (requested " + strings.Join(others, ", ") + ")"
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

// planEntry is the YAML form of one planned task.
type planEntry struct {
	Name        string   `yaml:"name"`
	Group       string   `yaml:"group,omitempty"`
	Description string   `yaml:"description,omitempty"`
	DependsOn   []string `yaml:"dependsOn,omitempty"`
}

type planDocument struct {
	Project string      `yaml:"project"`
	Tasks   []planEntry `yaml:"tasks"`
}

// WritePlan prints the execution order of the named tasks as YAML.
func (a *App) WritePlan(w io.Writer, names ...string) error {
	plan, err := a.plan(names)
	if err != nil {
		return fmt.Errorf("failed to plan tasks: %w", err)
	}

	doc := planDocument{Project: a.project.Name(), Tasks: []planEntry{}}
	for _, t := range plan.Tasks {
		deps, err := plan.Dependencies(t.Name())
		if err != nil {
			return err
		}
		doc.Tasks = append(doc.Tasks, planEntry{
			Name:        t.Name(),
			Group:       t.Group(),
			Description: t.Description(),
			DependsOn:   deps,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	return enc.Close()
}
