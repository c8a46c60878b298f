package config

import "fmt"

// Model is the unified, format-agnostic representation of a build.
type Model struct {
	Rocker       *Rocker
	Repository   *Repository
	SourceSets   []*SourceSet
	Units        []*Unit
	Dependencies []*Dependencies
	Modules      []*Module
}

// Rocker is the plugin-wide configuration.
type Rocker struct {
	Version string
	Java    string
}

// Repository locates the local artifact repository.
type Repository struct {
	Path string
}

// SourceSet declares a compilation unit of the consuming build.
type SourceSet struct {
	Name    string
	SrcDirs []string
}

// Unit declares one template compiler invocation. Nil fields keep the
// plugin defaults.
type Unit struct {
	Name        string
	TemplateDir *string
	OutputDir   *string
	ClassDir    *string
	Options     map[string]string
}

// Dependencies adds dependency notations to a named scope.
type Dependencies struct {
	Scope string
	Add   []string
}

// Module is catalog metadata for one module version.
type Module struct {
	Coordinate string
	Requires   []string
	File       string
}

// Merge appends other's declarations to m. Plugin-wide and repository
// settings may only be declared once across all sources.
func (m *Model) Merge(other *Model) error {
	if other.Rocker != nil {
		if m.Rocker != nil {
			return fmt.Errorf("the rocker block is declared more than once")
		}
		m.Rocker = other.Rocker
	}
	if other.Repository != nil {
		if m.Repository != nil {
			return fmt.Errorf("the repository block is declared more than once")
		}
		m.Repository = other.Repository
	}
	m.SourceSets = append(m.SourceSets, other.SourceSets...)
	m.Units = append(m.Units, other.Units...)
	m.Dependencies = append(m.Dependencies, other.Dependencies...)
	m.Modules = append(m.Modules, other.Modules...)
	return nil
}
