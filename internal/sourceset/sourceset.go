// Package sourceset is the host's catalogue of compilation units. Each
// source set owns a compile task and a compile dependency scope whose names
// derive from the source set's name.
package sourceset

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/rockerbuild/internal/naming"
)

// Main is the name of the primary source set.
const Main = "main"

// SourceSet describes one compilation unit.
type SourceSet struct {
	name    string
	srcDirs []string
	// generated dirs are read on every SrcDirs call; their producers may
	// still be reconfigured after wiring.
	generated []func() string
}

// Name returns the source set's name.
func (s *SourceSet) Name() string { return s.name }

// CompileTaskName is "compileJava" for main and "compile<Name>Java" otherwise.
func (s *SourceSet) CompileTaskName() string {
	if s.name == Main {
		return "compileJava"
	}
	return naming.Derive("compile", s.name, "Java")
}

// CompileScopeName is "compile" for main and "<name>Compile" otherwise.
func (s *SourceSet) CompileScopeName() string {
	if s.name == Main {
		return "compile"
	}
	return naming.Derive("", s.name, "Compile")
}

// SrcDirs returns the directories whose sources the compile task reads:
// the declared ones first, then the current value of every generated dir.
func (s *SourceSet) SrcDirs() []string {
	dirs := slices.Clone(s.srcDirs)
	for _, fn := range s.generated {
		if d := fn(); d != "" && !slices.Contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// DeclaredSrcDirs returns only the hand-written source directories.
func (s *SourceSet) DeclaredSrcDirs() []string { return slices.Clone(s.srcDirs) }

// AddGeneratedSrcDir registers a directory produced by another task. dir is
// called each time the source dirs are read.
func (s *SourceSet) AddGeneratedSrcDir(dir func() string) {
	s.generated = append(s.generated, dir)
}

// AddSrcDir appends a source directory unless it is already present.
func (s *SourceSet) AddSrcDir(dir string) {
	if !slices.Contains(s.srcDirs, dir) {
		s.srcDirs = append(s.srcDirs, dir)
	}
}

// Container holds the source sets of a project.
type Container struct {
	items    map[string]*SourceSet
	order    []string
	observer []func(*SourceSet) error
}

// NewContainer creates an empty source-set catalogue.
func NewContainer() *Container {
	return &Container{items: make(map[string]*SourceSet)}
}

// Create adds a source set and notifies observers. An observer error
// removes the source set again.
func (c *Container) Create(name string, srcDirs ...string) (*SourceSet, error) {
	if name == "" {
		return nil, errors.New("source set name must not be empty")
	}
	if _, exists := c.items[name]; exists {
		return nil, fmt.Errorf("source set %q already exists", name)
	}
	s := &SourceSet{name: name}
	for _, d := range srcDirs {
		s.AddSrcDir(d)
	}
	c.items[name] = s
	c.order = append(c.order, name)

	for _, fn := range c.observer {
		if err := fn(s); err != nil {
			delete(c.items, name)
			c.order = c.order[:len(c.order)-1]
			return nil, fmt.Errorf("source set %q: %w", name, err)
		}
	}
	return s, nil
}

// FindByName returns the named source set. Absence is reported with false,
// never as an error.
func (c *Container) FindByName(name string) (*SourceSet, bool) {
	s, ok := c.items[name]
	return s, ok
}

// Names returns every source-set name in creation order.
func (c *Container) Names() []string { return slices.Clone(c.order) }

// WhenAdded registers fn for every source set created from now on.
func (c *Container) WhenAdded(fn func(*SourceSet) error) {
	c.observer = append(c.observer, fn)
}
