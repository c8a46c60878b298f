// This file contains the logic for translating decoded HCL blocks into the
// format-agnostic configuration model defined in the config package.

package hcl_adapter

import (
	"context"

	"github.com/specialistvlad/rockerbuild/internal/config"
	"github.com/specialistvlad/rockerbuild/internal/ctxlog"
)

// translateFile converts every block of one file.
func (l *Loader) translateFile(ctx context.Context, root *fileRoot) (*config.Model, error) {
	m := &config.Model{}
	if root.Rocker != nil {
		m.Rocker = &config.Rocker{Version: root.Rocker.Version, Java: root.Rocker.Java}
	}
	if root.Repository != nil {
		m.Repository = &config.Repository{Path: root.Repository.Path}
	}
	for _, s := range root.SourceSets {
		m.SourceSets = append(m.SourceSets, &config.SourceSet{Name: s.Name, SrcDirs: s.SourceDirs})
	}
	for _, u := range root.Units {
		unit, err := l.translateUnit(ctx, u)
		if err != nil {
			return nil, err
		}
		m.Units = append(m.Units, unit)
	}
	for _, d := range root.Dependencies {
		m.Dependencies = append(m.Dependencies, &config.Dependencies{Scope: d.Scope, Add: d.Add})
	}
	for _, mod := range root.Modules {
		m.Modules = append(m.Modules, &config.Module{
			Coordinate: mod.Coordinate,
			Requires:   mod.Requires,
			File:       mod.File,
		})
	}
	return m, nil
}

// translateUnit converts the HCL-specific unit schema into the agnostic model.
func (l *Loader) translateUnit(ctx context.Context, u *unitBlock) (*config.Unit, error) {
	logger := ctxlog.FromContext(ctx).With("unit", u.Name)
	logger.Debug("Translating HCL unit to internal config model.")

	options, err := decodeOptions(u.Options)
	if err != nil {
		return nil, err
	}
	return &config.Unit{
		Name:        u.Name,
		TemplateDir: u.TemplateDir,
		OutputDir:   u.OutputDir,
		ClassDir:    u.ClassDir,
		Options:     options,
	}, nil
}
