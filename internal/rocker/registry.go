package rocker

import (
	"errors"
	"fmt"
	"slices"
)

// Registry is the ordered collection of units. Entries are created on first
// reference and observers see every entry exactly once, whether it was
// added before or after they subscribed.
type Registry struct {
	items     map[string]*Unit
	order     []string
	observers []func(*Unit) error
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*Unit)}
}

// Register ensures a unit named name exists and applies configure to it.
// A new unit starts from defaults, is configured, appended, and then handed
// to every observer; if an observer fails the unit is dropped and the error
// returned. An existing unit is configured in place and observers are not
// notified again.
func (r *Registry) Register(name string, configure func(*Unit)) (*Unit, error) {
	if name == "" {
		return nil, errors.New("unit name must not be empty")
	}
	if u, ok := r.items[name]; ok {
		if configure != nil {
			configure(u)
		}
		return u, nil
	}

	u := newUnit(name)
	if configure != nil {
		configure(u)
	}
	r.items[name] = u
	r.order = append(r.order, name)

	for _, fn := range r.observers {
		if err := fn(u); err != nil {
			r.remove(name)
			return nil, err
		}
	}
	return u, nil
}

// GetOrCreate returns the named unit, creating it with defaults if needed.
func (r *Registry) GetOrCreate(name string) (*Unit, error) {
	return r.Register(name, nil)
}

// FindByName returns the named unit, reporting absence with false.
func (r *Registry) FindByName(name string) (*Unit, bool) {
	u, ok := r.items[name]
	return u, ok
}

// Names returns the unit names in declaration order.
func (r *Registry) Names() []string { return slices.Clone(r.order) }

// Units returns the units in declaration order.
func (r *Registry) Units() []*Unit {
	out := make([]*Unit, len(r.order))
	for i, n := range r.order {
		out[i] = r.items[n]
	}
	return out
}

// Len returns the number of units.
func (r *Registry) Len() int { return len(r.order) }

// All calls observer for every current unit, in order, and subscribes it to
// every unit added later. If it fails on a current unit, the error is
// returned and the observer is not subscribed.
func (r *Registry) All(observer func(*Unit) error) error {
	for _, n := range r.order {
		if err := observer(r.items[n]); err != nil {
			return err
		}
	}
	r.observers = append(r.observers, observer)
	return nil
}

func (r *Registry) remove(name string) {
	delete(r.items, name)
	if i := slices.Index(r.order, name); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

// Validate checks every unit's settings. Relative dirs are resolved against
// projectDir; protected lists source dirs no unit may generate over.
func (r *Registry) Validate(projectDir string, protected []string) error {
	var errs []error
	for _, u := range r.Units() {
		if err := u.validate(projectDir, protected); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid rocker configuration: %w", err)
	}
	return nil
}
