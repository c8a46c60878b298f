// Package resolve is the host's dependency-resolution engine.
//
// A Scope is a named bucket of declared dependencies (a "configuration" in
// build-tool parlance). Resolving a scope walks the declared coordinates and
// their transitive requirements from the Catalog, passes every single request
// through the Resolver's rules, and then settles version conflicts by picking
// the highest requested version per module.
//
// Rules run at resolution time, not when a dependency is declared, so a rule
// installed early also rewrites requests that other code adds later and
// requests that only appear transitively.
package resolve
