package rocker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/rockerbuild/internal/coordinate"
	"github.com/specialistvlad/rockerbuild/internal/ctxlog"
	"github.com/specialistvlad/rockerbuild/internal/project"
	"github.com/specialistvlad/rockerbuild/internal/resolve"
	"github.com/specialistvlad/rockerbuild/internal/task"
)

const (
	// PluginID identifies the plugin on a project.
	PluginID = "rocker"
	// ExtensionName is the name the Extension is published under.
	ExtensionName = "rocker"
	// CompilerScopeName is the scope holding the compiler's classpath.
	CompilerScopeName = "rockerCompiler"

	TaskGroup       = "Rocker"
	TaskDescription = "Invokes the Rocker template engine."

	// Input keys bound on every generation task.
	InputUnit      = "unit"
	InputClasspath = "classpath"
)

var (
	CompilerArtifact = coordinate.MustParse("com.fizzed:rocker-compiler")
	RuntimeArtifact  = coordinate.MustParse("com.fizzed:rocker-runtime")
	LoggingBinding   = coordinate.MustParse("org.slf4j:slf4j-simple:1.7.25")
)

// Extension is the user-facing configuration of the plugin.
type Extension struct {
	// Version overrides the Rocker version for the whole build.
	Version string
	// Java is the java executable; empty means $JAVA_HOME/bin/java or "java".
	Java string
	// Units holds the declared units.
	Units *Registry

	policy *VersionPolicy
}

// Policy returns the version policy backing the extension.
func (e *Extension) Policy() *VersionPolicy { return e.policy }

// Plugin is the Rocker build plugin.
type Plugin struct{}

// ID implements project.Plugin.
func (Plugin) ID() string { return PluginID }

// Apply installs the version rule, the extension, the compiler scope and the
// task provisioner on p.
func (Plugin) Apply(ctx context.Context, p *project.Project) error {
	ctx = ctxlog.With(ctx, "plugin", PluginID)
	logger := ctxlog.FromContext(ctx)

	ext := &Extension{Units: NewRegistry()}
	ext.policy = NewVersionPolicy(func() string { return ext.Version }, logger)
	p.Resolver().AddRule(ext.policy.Rule())

	if err := p.AddExtension(ExtensionName, ext); err != nil {
		return err
	}

	compiler, err := createCompilerScope(p)
	if err != nil {
		return err
	}

	pv := &provisioner{project: p, ext: ext, compiler: compiler, logger: logger}
	if err := ext.Units.All(pv.provision); err != nil {
		return err
	}

	p.AfterEvaluate(func(context.Context) error {
		return ext.Units.Validate(p.Dir(), declaredSrcDirs(p))
	})
	logger.Debug("Rocker plugin configured.", "compiler_scope", CompilerScopeName)
	return nil
}

// ExtensionOf returns the Rocker extension of a project the plugin was applied to.
func ExtensionOf(p *project.Project) (*Extension, error) {
	v, ok := p.Extension(ExtensionName)
	if !ok {
		return nil, fmt.Errorf("plugin %q has not been applied to project %q", PluginID, p.Name())
	}
	ext, ok := v.(*Extension)
	if !ok {
		return nil, fmt.Errorf("extension %q has unexpected type %T", ExtensionName, v)
	}
	return ext, nil
}

// declaredSrcDirs lists the hand-written source dirs of every source set.
func declaredSrcDirs(p *project.Project) []string {
	var dirs []string
	for _, name := range p.SourceSets.Names() {
		if s, ok := p.SourceSets.FindByName(name); ok {
			dirs = append(dirs, s.DeclaredSrcDirs()...)
		}
	}
	return dirs
}

func createCompilerScope(p *project.Project) (*resolve.Scope, error) {
	s, err := p.Scopes.Create(CompilerScopeName)
	if err != nil {
		return nil, err
	}
	s.SetDescription("The classpath used to invoke the Rocker template engine. Add your additional dependencies here.")
	if err := s.AddCoordinate(CompilerArtifact); err != nil {
		return nil, err
	}
	if err := s.AddCoordinate(LoggingBinding); err != nil {
		return nil, err
	}
	return s, nil
}

// provisioner turns units into generation tasks.
type provisioner struct {
	project  *project.Project
	ext      *Extension
	compiler *resolve.Scope
	logger   *slog.Logger
}

// provision creates the generation task of u and wires it to the source set
// named after u, when there is one. Any failure leaves no task behind.
func (pv *provisioner) provision(u *Unit) error {
	gen, err := pv.project.Tasks.Register(u.TaskName(), pv.generate(u))
	if err != nil {
		if errors.Is(err, task.ErrDuplicateTask) {
			return fmt.Errorf("unit %q derives task name %q, which is already taken: %w", u.Name(), u.TaskName(), err)
		}
		return fmt.Errorf("unit %q: %w", u.Name(), err)
	}
	gen.SetDescription(TaskDescription)
	gen.SetGroup(TaskGroup)
	gen.Bind(InputUnit, u)
	gen.Bind(InputClasspath, pv.compiler)

	if err := pv.wire(u, gen); err != nil {
		pv.project.Tasks.Remove(gen.Name())
		return fmt.Errorf("unit %q: %w", u.Name(), err)
	}
	return nil
}

func (pv *provisioner) wire(u *Unit, gen *task.Task) error {
	logger := pv.logger.With("unit", u.Name(), "task", gen.Name())

	s, ok := pv.project.SourceSets.FindByName(u.Name())
	if !ok {
		logger.Debug("No source set matches the unit; the generation task must be wired manually.")
		return nil
	}

	compile, err := pv.project.Tasks.Get(s.CompileTaskName())
	if err != nil {
		return fmt.Errorf("source set %q has no compile task: %w", s.Name(), err)
	}
	scope, ok := pv.project.Scopes.Lookup(s.CompileScopeName())
	if !ok {
		return fmt.Errorf("source set %q has no compile scope %q", s.Name(), s.CompileScopeName())
	}
	if err := scope.AddCoordinate(RuntimeArtifact); err != nil {
		return err
	}

	compile.DependsOn(gen)
	s.AddGeneratedSrcDir(func() string { return u.OutputDir })
	logger.Debug("Generation task wired.", "compile_task", compile.Name(), "compile_scope", scope.Name())
	return nil
}
