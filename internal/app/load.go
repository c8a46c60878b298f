package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/rockerbuild/internal/config"
	"github.com/specialistvlad/rockerbuild/internal/coordinate"
	"github.com/specialistvlad/rockerbuild/internal/ctxlog"
	"github.com/specialistvlad/rockerbuild/internal/project"
	"github.com/specialistvlad/rockerbuild/internal/resolve"
	"github.com/specialistvlad/rockerbuild/internal/rocker"
)

// projectDir is the directory build paths are relative to: the build path
// itself, or the directory of a single build file.
func projectDir(buildPath string) (string, error) {
	abs, err := filepath.Abs(buildPath)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("error accessing build path: %w", err)
	}
	if !info.IsDir() {
		return filepath.Dir(abs), nil
	}
	return abs, nil
}

// defaultRepository is the Maven local repository of the current user.
func defaultRepository() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "repository"
	}
	return filepath.Join(home, ".m2", "repository")
}

func within(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// newCatalog builds the module catalog from the repository and module blocks.
func newCatalog(dir string, m *config.Model) (*resolve.Catalog, error) {
	repo := defaultRepository()
	if m.Repository != nil && m.Repository.Path != "" {
		repo = within(dir, m.Repository.Path)
	}
	catalog := resolve.NewCatalog(repo)

	for _, mod := range m.Modules {
		c, err := coordinate.Parse(mod.Coordinate)
		if err != nil {
			return nil, fmt.Errorf("module %q: %w", mod.Coordinate, err)
		}
		if c.Version == "" {
			return nil, fmt.Errorf("module %q: a version is required", mod.Coordinate)
		}
		entry := resolve.Module{Coordinate: c, File: within(dir, mod.File)}
		for _, r := range mod.Requires {
			rc, err := coordinate.Parse(r)
			if err != nil {
				return nil, fmt.Errorf("module %q: requires: %w", mod.Coordinate, err)
			}
			entry.Requires = append(entry.Requires, rc)
		}
		catalog.Add(entry)
	}
	return catalog, nil
}

// configure creates the project and populates it from the model. Source
// sets come first so their scopes and compile tasks exist when units are
// wired and dependencies are added.
func (a *App) configure(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	dir, err := projectDir(a.config.BuildPath)
	if err != nil {
		return err
	}
	catalog, err := newCatalog(dir, a.model)
	if err != nil {
		return err
	}
	p := project.New(filepath.Base(dir), dir, catalog)
	a.project = p

	if err := p.Apply(ctx, rocker.Plugin{}); err != nil {
		return err
	}
	ext, err := rocker.ExtensionOf(p)
	if err != nil {
		return err
	}
	a.rocker = ext
	if r := a.model.Rocker; r != nil {
		ext.Version = r.Version
		ext.Java = r.Java
	}
	if a.config.RockerVersion != "" {
		ext.Version = a.config.RockerVersion
	}

	for _, s := range a.model.SourceSets {
		if _, err := p.SourceSets.Create(s.Name, s.SrcDirs...); err != nil {
			return err
		}
		logger.Debug("Source set declared.", "source_set", s.Name)
	}
	for _, mu := range a.model.Units {
		if _, err := ext.Units.Register(mu.Name, configureUnit(mu)); err != nil {
			return err
		}
		logger.Debug("Unit declared.", "unit", mu.Name)
	}
	for _, d := range a.model.Dependencies {
		for _, notation := range d.Add {
			if err := p.AddDependency(d.Scope, notation); err != nil {
				return err
			}
		}
	}

	if err := p.Evaluate(ctx); err != nil {
		return err
	}
	logger.Debug("Rocker version decided for the build.", "version", ext.Policy().Version())
	return nil
}

// configureUnit applies the declared settings of mu over a unit's current values.
func configureUnit(mu *config.Unit) func(*rocker.Unit) {
	return func(u *rocker.Unit) {
		if mu.TemplateDir != nil {
			u.TemplateDir = *mu.TemplateDir
		}
		if mu.OutputDir != nil {
			u.OutputDir = *mu.OutputDir
		}
		if mu.ClassDir != nil {
			u.ClassDir = *mu.ClassDir
		}
		for k, v := range mu.Options {
			u.SetOption(k, v)
		}
	}
}
