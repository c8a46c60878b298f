package resolve

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/rockerbuild/internal/coordinate"
	"github.com/specialistvlad/rockerbuild/internal/ctxlog"
)

// maxPasses bounds the fixpoint iteration of conflict resolution.
const maxPasses = 64

// Rule rewrites a requested coordinate. Rules must be pure: the same request
// always yields the same result.
type Rule func(requested coordinate.Coordinate) coordinate.Coordinate

// Resolver applies rules and conflict resolution on behalf of every scope of
// a project.
type Resolver struct {
	catalog *Catalog
	rules   []Rule
}

// NewResolver creates a resolver reading module metadata from catalog.
func NewResolver(catalog *Catalog) *Resolver {
	if catalog == nil {
		catalog = NewCatalog("")
	}
	return &Resolver{catalog: catalog}
}

// Catalog returns the module metadata source.
func (r *Resolver) Catalog() *Catalog { return r.catalog }

// AddRule installs a rule applied to every future request of every scope.
func (r *Resolver) AddRule(rule Rule) {
	r.rules = append(r.rules, rule)
}

// Apply runs every rule over a single request, in installation order.
func (r *Resolver) Apply(requested coordinate.Coordinate) coordinate.Coordinate {
	c := requested
	for _, rule := range r.rules {
		c = rule(c)
	}
	return c
}

// Resolved is one module selected by resolution.
type Resolved struct {
	Coordinate coordinate.Coordinate
	// Requested lists the distinct versions asked for before rules applied,
	// in encounter order. Empty strings stand for version-less requests.
	Requested []string
	File      string
}

// Result is the outcome of resolving one set of roots.
type Result struct {
	Modules []Resolved
}

// Find returns the resolved entry for a "group:artifact" key.
func (res *Result) Find(module string) (Resolved, bool) {
	for _, m := range res.Modules {
		if m.Coordinate.Module() == module {
			return m, true
		}
	}
	return Resolved{}, false
}

// Files returns the artifact paths in resolution order.
func (res *Result) Files() []string {
	out := make([]string, len(res.Modules))
	for i, m := range res.Modules {
		out[i] = m.File
	}
	return out
}

// Coordinates returns the selected coordinates in resolution order.
func (res *Result) Coordinates() []coordinate.Coordinate {
	out := make([]coordinate.Coordinate, len(res.Modules))
	for i, m := range res.Modules {
		out[i] = m.Coordinate
	}
	return out
}

type pass struct {
	order     []string
	versions  map[string][]string
	requested map[string][]string
}

// Resolve walks roots and their transitive requirements. Every request goes
// through the rules before conflict resolution; the highest version per
// module wins. Expansion follows only the currently selected version of a
// module, so the walk repeats until the selection is stable.
func (r *Resolver) Resolve(ctx context.Context, roots []coordinate.Coordinate) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	selected := make(map[string]string)

	for i := 0; i < maxPasses; i++ {
		p, err := r.walk(roots, selected)
		if err != nil {
			return nil, err
		}

		next := make(map[string]string, len(p.versions))
		for mod, versions := range p.versions {
			next[mod] = slices.MaxFunc(versions, coordinate.Compare)
		}

		if maps.Equal(next, selected) {
			logger.Debug("Dependency resolution converged.", "passes", i+1, "modules", len(p.order))
			return r.result(p, selected), nil
		}
		selected = next
	}
	return nil, fmt.Errorf("dependency resolution did not converge after %d passes", maxPasses)
}

func (r *Resolver) walk(roots []coordinate.Coordinate, selected map[string]string) (*pass, error) {
	p := &pass{
		versions:  make(map[string][]string),
		requested: make(map[string][]string),
	}
	expanded := make(map[string]bool)
	queue := slices.Clone(roots)

	for len(queue) > 0 {
		req := queue[0]
		queue = queue[1:]

		eff := r.Apply(req)
		if eff.Version == "" {
			return nil, fmt.Errorf("cannot resolve %s: no version requested and no rule supplied one", req)
		}

		mod := eff.Module()
		if _, seen := p.versions[mod]; !seen {
			p.order = append(p.order, mod)
		}
		if !slices.Contains(p.versions[mod], eff.Version) {
			p.versions[mod] = append(p.versions[mod], eff.Version)
		}
		if !slices.Contains(p.requested[mod], req.Version) {
			p.requested[mod] = append(p.requested[mod], req.Version)
		}

		chosen := eff
		if v, ok := selected[mod]; ok {
			chosen = eff.WithVersion(v)
		}
		if expanded[chosen.String()] {
			continue
		}
		expanded[chosen.String()] = true
		queue = append(queue, r.catalog.Requires(chosen)...)
	}
	return p, nil
}

func (r *Resolver) result(p *pass, selected map[string]string) *Result {
	res := &Result{Modules: make([]Resolved, 0, len(p.order))}
	for _, mod := range p.order {
		c, _ := coordinate.Parse(mod + ":" + selected[mod])
		res.Modules = append(res.Modules, Resolved{
			Coordinate: c,
			Requested:  p.requested[mod],
			File:       r.catalog.File(c),
		})
	}
	return res
}
