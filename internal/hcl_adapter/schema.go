package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Rocker       *rockerBlock         `hcl:"rocker,block"`
	Repository   *repositoryBlock     `hcl:"repository,block"`
	SourceSets   []*sourceSetBlock    `hcl:"source_set,block"`
	Units        []*unitBlock         `hcl:"unit,block"`
	Dependencies []*dependenciesBlock `hcl:"dependencies,block"`
	Modules      []*moduleBlock       `hcl:"module,block"`
}

type rockerBlock struct {
	Version string `hcl:"version,optional"`
	Java    string `hcl:"java,optional"`
}

type repositoryBlock struct {
	Path string `hcl:"path"`
}

type sourceSetBlock struct {
	Name       string   `hcl:"name,label"`
	SourceDirs []string `hcl:"source_dirs,optional"`
}

type unitBlock struct {
	Name        string         `hcl:"name,label"`
	TemplateDir *string        `hcl:"template_dir,optional"`
	OutputDir   *string        `hcl:"output_dir,optional"`
	ClassDir    *string        `hcl:"class_dir,optional"`
	Options     hcl.Expression `hcl:"options,optional"`
}

type dependenciesBlock struct {
	Scope string   `hcl:"scope,label"`
	Add   []string `hcl:"add"`
}

type moduleBlock struct {
	Coordinate string   `hcl:"coordinate,label"`
	Requires   []string `hcl:"requires,optional"`
	File       string   `hcl:"file,optional"`
}
