// Package dag holds the precedence graph behind a build's task plan.
//
// Nodes are task names. An edge from A to B means B runs only after A has
// finished. The graph is assembled during configuration and read by the
// planner, so all operations are concurrency-safe but cheap.
package dag
