package rocker

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/specialistvlad/rockerbuild/internal/naming"
)

// Unit is one independent invocation of the template compiler.
type Unit struct {
	name string

	// TemplateDir holds the template sources, relative to the project dir.
	TemplateDir string
	// OutputDir receives the generated sources.
	OutputDir string
	// ClassDir, when set, receives compiled template classes.
	ClassDir string
	// Options are handed to the compiler as rocker.option.<key> properties.
	Options map[string]string
}

func newUnit(name string) *Unit {
	return &Unit{
		name:        name,
		TemplateDir: path.Join("src", "rocker", name),
		OutputDir:   path.Join("build", "generated-src", "rocker", name),
		Options:     make(map[string]string),
	}
}

// Name returns the unit's immutable name.
func (u *Unit) Name() string { return u.name }

// TaskName returns the name of the unit's generation task.
func (u *Unit) TaskName() string {
	return naming.Derive("rocker", u.name, "")
}

// SetOption sets a pass-through compiler option.
func (u *Unit) SetOption(key, value string) {
	if u.Options == nil {
		u.Options = make(map[string]string)
	}
	u.Options[key] = value
}

// validate checks the unit's settings. Relative dirs are taken against
// projectDir. The output and class dirs are wiped before every run, so they
// may not contain the project dir, the template dir or any of protected.
func (u *Unit) validate(projectDir string, protected []string) error {
	var errs []error
	if u.TemplateDir == "" {
		errs = append(errs, errors.New("template_dir must not be empty"))
	}
	if u.OutputDir == "" {
		errs = append(errs, errors.New("output_dir must not be empty"))
	}
	for k := range u.Options {
		if k == "" {
			errs = append(errs, errors.New("option names must not be empty"))
			break
		}
	}

	generated := []struct{ attr, dir string }{{"output_dir", u.OutputDir}, {"class_dir", u.ClassDir}}
	for _, g := range generated {
		if g.dir == "" {
			continue
		}
		dir := within(projectDir, g.dir)
		switch {
		case contains(dir, projectDir):
			errs = append(errs, fmt.Errorf("%s %q must not contain the project directory", g.attr, g.dir))
		case u.TemplateDir != "" && contains(dir, within(projectDir, u.TemplateDir)):
			errs = append(errs, fmt.Errorf("%s %q must not contain template_dir %q", g.attr, g.dir, u.TemplateDir))
		}
		for _, src := range protected {
			if contains(dir, within(projectDir, src)) {
				errs = append(errs, fmt.Errorf("%s %q must not contain source directory %q", g.attr, g.dir, src))
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("unit %q: %w", u.name, err)
	}
	return nil
}

func within(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// contains reports whether child is parent or lies below it.
func contains(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	return err == nil && filepath.IsLocal(rel)
}
