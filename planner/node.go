// Package planner implements the A* Planner: best-first search over
// symbolic world state, producing an ordered action list. Grounded on the
// teacher pack's container/heap A* pathfinder
// (internal/ecosystem/pathfinding.go), generalized from 2D grid points to
// arbitrary symbolic states and from an index-based node cache to a
// per-search arena of integer-indexed nodes, per spec design note
// "Planner arena".
package planner

import "github.com/goaplanner/agent/state"

// node is internal to the planner: never exposed outside the package. The
// arena holds these by value in a growable slice; open/closed sets
// reference them by integer id rather than by pointer, sidestepping
// parent-pointer lifetime questions (spec design note "Planner arena").
type node struct {
	id        int
	state     map[string]state.Value
	g         float64
	h         float64
	parent    int // -1 for the root
	viaAction string
	closed    bool
}

func (n *node) f() float64 { return n.g + n.h }

// arena is the per-search node store. Not reused across searches.
type arena struct {
	nodes []node
}

func newArena() *arena {
	return &arena{nodes: make([]node, 0, 256)}
}

func (a *arena) add(n node) int {
	n.id = len(a.nodes)
	a.nodes = append(a.nodes, n)
	return n.id
}

func (a *arena) get(id int) *node {
	return &a.nodes[id]
}
