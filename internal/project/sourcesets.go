package project

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/rockerbuild/internal/ctxlog"
	"github.com/specialistvlad/rockerbuild/internal/sourceset"
	"github.com/specialistvlad/rockerbuild/internal/task"
)

// configureSourceSet creates the compile scope and the compile task of a
// new source set.
func (p *Project) configureSourceSet(s *sourceset.SourceSet) error {
	compile, err := p.Tasks.Register(s.CompileTaskName(), func(ctx context.Context, t *task.Task) error {
		return p.compile(ctx, p, s, t)
	})
	if err != nil {
		return err
	}
	scope, err := p.Scopes.MaybeCreate(s.CompileScopeName())
	if err != nil {
		p.Tasks.Remove(compile.Name())
		return err
	}
	scope.SetDescription(fmt.Sprintf("Dependencies for source set %q.", s.Name()))
	compile.SetDescription(fmt.Sprintf("Compiles %s Java source.", s.Name()))
	compile.SetGroup(BuildGroup)
	compile.Bind("sourceSet", s)
	compile.Bind("classpath", scope)
	return nil
}

// resolveClasspath is the default compile action. Compilation itself belongs
// to the JVM toolchain; the host's job ends at handing it a resolved
// classpath and the source directories, which it logs.
func resolveClasspath(ctx context.Context, p *Project, s *sourceset.SourceSet, t *task.Task) error {
	logger := ctxlog.FromContext(ctx).With("task", t.Name(), "source_set", s.Name())

	scope, ok := p.Scopes.Lookup(s.CompileScopeName())
	if !ok {
		return fmt.Errorf("compile scope %q is missing", s.CompileScopeName())
	}
	res, err := scope.Resolve(ctx)
	if err != nil {
		return err
	}

	var present []string
	for _, dir := range s.SrcDirs() {
		if _, err := os.Stat(p.Path(dir)); err == nil {
			present = append(present, dir)
		}
	}
	if len(present) == 0 {
		logger.Debug("No source directories present.", "src_dirs", s.SrcDirs())
		return task.ErrNoSource
	}

	logger.Info("Compile classpath resolved.", "modules", len(res.Modules), "src_dirs", present)
	for _, m := range res.Modules {
		logger.Debug("Classpath entry.", "module", m.Coordinate.String(), "file", m.File)
	}
	return nil
}
