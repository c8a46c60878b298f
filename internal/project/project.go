// Package project is the host build model: one Project aggregates the task
// container, the dependency scopes and their resolver, the source-set
// catalogue and the extensions plugins contribute.
package project

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/rockerbuild/internal/ctxlog"
	"github.com/specialistvlad/rockerbuild/internal/resolve"
	"github.com/specialistvlad/rockerbuild/internal/sourceset"
	"github.com/specialistvlad/rockerbuild/internal/task"
)

// BuildGroup is the task group of the host's own compile tasks.
const BuildGroup = "Build"

// Plugin contributes tasks, scopes or rules to a project.
type Plugin interface {
	ID() string
	Apply(ctx context.Context, p *Project) error
}

// CompileAction is the action given to every source set's compile task.
type CompileAction func(ctx context.Context, p *Project, s *sourceset.SourceSet, t *task.Task) error

// Project is the configuration-time build model.
type Project struct {
	name string
	dir  string

	Tasks      *task.Container
	Scopes     *resolve.Scopes
	SourceSets *sourceset.Container

	compile       CompileAction
	extensions    map[string]any
	plugins       map[string]bool
	afterEvaluate []func(context.Context) error
	evaluated     bool
}

// Option customizes a Project.
type Option func(*Project)

// WithCompileAction replaces the default compile task action.
func WithCompileAction(fn CompileAction) Option {
	return func(p *Project) { p.compile = fn }
}

// New creates a project rooted at dir whose scopes resolve against catalog.
// Every source set created later gets its compile scope and compile task.
func New(name, dir string, catalog *resolve.Catalog, opts ...Option) *Project {
	p := &Project{
		name:       name,
		dir:        dir,
		Tasks:      task.NewContainer(),
		Scopes:     resolve.NewScopes(resolve.NewResolver(catalog)),
		SourceSets: sourceset.NewContainer(),
		compile:    resolveClasspath,
		extensions: make(map[string]any),
		plugins:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.SourceSets.WhenAdded(p.configureSourceSet)
	return p
}

// Name returns the project's name.
func (p *Project) Name() string { return p.name }

// Dir returns the project directory.
func (p *Project) Dir() string { return p.dir }

// Path resolves rel against the project directory. Absolute paths pass through.
func (p *Project) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.dir, rel)
}

// Resolver returns the resolver shared by every scope.
func (p *Project) Resolver() *resolve.Resolver { return p.Scopes.Resolver() }

// Apply applies a plugin once; applying the same plugin ID again is a no-op.
func (p *Project) Apply(ctx context.Context, plugin Plugin) error {
	id := plugin.ID()
	if p.plugins[id] {
		ctxlog.FromContext(ctx).Debug("Plugin already applied.", "plugin", id)
		return nil
	}
	p.plugins[id] = true
	if err := plugin.Apply(ctx, p); err != nil {
		return fmt.Errorf("failed to apply plugin %q: %w", id, err)
	}
	ctxlog.FromContext(ctx).Debug("Plugin applied.", "plugin", id)
	return nil
}

// HasPlugin reports whether the plugin ID has been applied.
func (p *Project) HasPlugin(id string) bool { return p.plugins[id] }

// AddExtension publishes a plugin's configuration object under name.
func (p *Project) AddExtension(name string, ext any) error {
	if _, exists := p.extensions[name]; exists {
		return fmt.Errorf("extension %q already exists", name)
	}
	p.extensions[name] = ext
	return nil
}

// Extension returns the extension published under name.
func (p *Project) Extension(name string) (any, bool) {
	ext, ok := p.extensions[name]
	return ext, ok
}

// AddDependency declares a dependency notation into a named scope.
func (p *Project) AddDependency(scope, notation string) error {
	s, ok := p.Scopes.Lookup(scope)
	if !ok {
		return fmt.Errorf("cannot add %q: unknown dependency scope %q", notation, scope)
	}
	return s.Add(notation)
}

// AfterEvaluate registers fn to run once configuration is complete.
func (p *Project) AfterEvaluate(fn func(context.Context) error) {
	p.afterEvaluate = append(p.afterEvaluate, fn)
}

// Evaluate ends the configuration phase and runs every after-evaluate hook.
// All hook errors are reported together.
func (p *Project) Evaluate(ctx context.Context) error {
	if p.evaluated {
		return nil
	}
	p.evaluated = true

	var errs []error
	for _, fn := range p.afterEvaluate {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("project %q configuration failed: %w", p.name, err)
	}
	g, err := p.Tasks.Graph()
	if err != nil {
		return err
	}
	return g.DetectCycles()
}
