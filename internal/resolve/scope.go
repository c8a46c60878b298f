package resolve

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/specialistvlad/rockerbuild/internal/coordinate"
	"github.com/specialistvlad/rockerbuild/internal/ctxlog"
)

// ErrScopeResolved is returned when a dependency is added to a scope that
// has already been resolved.
var ErrScopeResolved = errors.New("scope already resolved")

// Scope is a named set of declared dependencies. It accepts additions until
// it is first resolved; from then on it is read-only and its result is
// shared by every caller.
type Scope struct {
	name        string
	description string
	resolver    *Resolver

	mu       sync.Mutex
	deps     []coordinate.Coordinate
	resolved bool
	result   *Result
	err      error
}

// Name returns the scope's name.
func (s *Scope) Name() string { return s.name }

// Description returns the scope's description.
func (s *Scope) Description() string { return s.description }

// SetDescription sets the scope's description.
func (s *Scope) SetDescription(d string) { s.description = d }

// Add declares a dependency from a group:artifact[:version] notation.
func (s *Scope) Add(notation string) error {
	c, err := coordinate.Parse(notation)
	if err != nil {
		return fmt.Errorf("scope %q: %w", s.name, err)
	}
	return s.AddCoordinate(c)
}

// AddCoordinate declares a dependency.
func (s *Scope) AddCoordinate(c coordinate.Coordinate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolved {
		return fmt.Errorf("cannot add %s to scope %q: %w", c, s.name, ErrScopeResolved)
	}
	s.deps = append(s.deps, c)
	return nil
}

// Dependencies returns the declared, unresolved dependencies.
func (s *Scope) Dependencies() []coordinate.Coordinate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.deps)
}

// Resolved reports whether resolution has happened.
func (s *Scope) Resolved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved
}

// Resolve resolves the scope once and returns the memoized result on every
// later call. Safe for concurrent use.
func (s *Scope) Resolve(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolved {
		return s.result, s.err
	}
	s.resolved = true

	ctxlog.FromContext(ctx).Debug("Resolving dependency scope.", "scope", s.name, "declared", len(s.deps))
	s.result, s.err = s.resolver.Resolve(ctx, s.deps)
	if s.err != nil {
		s.err = fmt.Errorf("failed to resolve scope %q: %w", s.name, s.err)
	}
	return s.result, s.err
}

// Scopes is the container of every scope of a project.
type Scopes struct {
	resolver *Resolver
	items    map[string]*Scope
	order    []string
}

// NewScopes creates an empty container whose scopes resolve through r.
func NewScopes(r *Resolver) *Scopes {
	return &Scopes{resolver: r, items: make(map[string]*Scope)}
}

// Resolver returns the resolver shared by every scope.
func (c *Scopes) Resolver() *Resolver { return c.resolver }

// Create adds a new scope. Creating an existing name is an error.
func (c *Scopes) Create(name string) (*Scope, error) {
	if name == "" {
		return nil, errors.New("scope name must not be empty")
	}
	if _, exists := c.items[name]; exists {
		return nil, fmt.Errorf("scope %q already exists", name)
	}
	s := &Scope{name: name, resolver: c.resolver}
	c.items[name] = s
	c.order = append(c.order, name)
	return s, nil
}

// MaybeCreate returns the named scope, creating it if needed.
func (c *Scopes) MaybeCreate(name string) (*Scope, error) {
	if s, ok := c.items[name]; ok {
		return s, nil
	}
	return c.Create(name)
}

// Lookup returns the named scope, reporting absence with false.
func (c *Scopes) Lookup(name string) (*Scope, bool) {
	s, ok := c.items[name]
	return s, ok
}

// Names returns every scope name in creation order.
func (c *Scopes) Names() []string {
	return slices.Clone(c.order)
}
