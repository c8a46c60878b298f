package resolve

import (
	"path/filepath"
	"strings"

	"github.com/specialistvlad/rockerbuild/internal/coordinate"
)

// Module is the metadata the catalog knows about one module version.
type Module struct {
	Coordinate coordinate.Coordinate
	Requires   []coordinate.Coordinate
	// File overrides the artifact location computed from the repository layout.
	File string
}

// Catalog describes the modules available to resolution: their transitive
// requirements and where their artifacts live in a local repository laid
// out as group/path/name/version/name-version.jar.
type Catalog struct {
	repoDir string
	modules map[string]Module
}

// NewCatalog creates a catalog rooted at a local repository directory.
func NewCatalog(repoDir string) *Catalog {
	return &Catalog{repoDir: repoDir, modules: make(map[string]Module)}
}

// Add records metadata for a module version, replacing earlier metadata.
func (c *Catalog) Add(m Module) {
	c.modules[m.Coordinate.String()] = m
}

// Requires returns the direct requirements of a module version. Unknown
// modules have none.
func (c *Catalog) Requires(coord coordinate.Coordinate) []coordinate.Coordinate {
	return c.modules[coord.String()].Requires
}

// File returns the artifact path of a module version.
func (c *Catalog) File(coord coordinate.Coordinate) string {
	if m, ok := c.modules[coord.String()]; ok && m.File != "" {
		return m.File
	}
	return filepath.Join(
		c.repoDir,
		filepath.FromSlash(strings.ReplaceAll(coord.Group, ".", "/")),
		coord.Name,
		coord.Version,
		coord.Name+"-"+coord.Version+".jar",
	)
}
