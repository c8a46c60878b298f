package dag

import "sync"

// Graph holds task names and their precedence edges. It is safe for
// concurrent readers once built; mutation takes the write lock.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
	// order is insertion order; traversals walk it so output is stable.
	order []string
}

// node is one task in the graph, addressed by name through Graph.
type node struct {
	id string
	// deps must finish before this node runs.
	deps map[string]*node
	// dependents wait on this node.
	dependents map[string]*node
}
