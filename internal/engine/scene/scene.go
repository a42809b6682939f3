// Package scene provides the entity transform graph: nodes with local
// transforms, parent/child relationships, and world-transform
// propagation. The portal pipeline runs strictly after Propagate so
// every stage sees this frame's world transforms.
package scene

import "github.com/Faultbox/portalgame/pkg/math"

// NodeID is a handle into the graph's node arena.
type NodeID int32

// NoNode is the invalid node handle; a node with parent NoNode is a root.
const NoNode NodeID = -1

type node struct {
	parent NodeID
	local  math.Transform
	world  math.Transform
	alive  bool
}

// Graph is an arena of transform nodes. Parents are always created
// before their children, so propagation is a single forward pass.
type Graph struct {
	nodes []node
}

// NewGraph creates an empty transform graph.
func NewGraph() *Graph {
	return &Graph{}
}

// AddNode creates a node under parent (NoNode for a root) with the given
// local transform.
func (g *Graph) AddNode(parent NodeID, local math.Transform) NodeID {
	n := node{parent: parent, local: local, world: local, alive: true}
	for i := range g.nodes {
		if !g.nodes[i].alive && NodeID(i) > parent {
			g.nodes[i] = n
			return NodeID(i)
		}
	}
	g.nodes = append(g.nodes, n)
	return NodeID(len(g.nodes) - 1)
}

// Remove destroys a node and all of its descendants.
func (g *Graph) Remove(id NodeID) {
	if !g.valid(id) {
		return
	}
	g.nodes[id].alive = false
	for i := range g.nodes {
		if g.nodes[i].alive && g.nodes[i].parent == id {
			g.Remove(NodeID(i))
		}
	}
}

// Local returns a pointer to the node's local transform for in-place
// mutation, or nil for a dead handle.
func (g *Graph) Local(id NodeID) *math.Transform {
	if !g.valid(id) {
		return nil
	}
	return &g.nodes[id].local
}

// SetLocal replaces the node's local transform.
func (g *Graph) SetLocal(id NodeID, t math.Transform) {
	if g.valid(id) {
		g.nodes[id].local = t
	}
}

// World returns the node's world transform as of the last Propagate.
func (g *Graph) World(id NodeID) math.Transform {
	if !g.valid(id) {
		return math.NewTransform()
	}
	return g.nodes[id].world
}

// Propagate recomputes world transforms from the roots down. Must run
// after physics has written body transforms and before any consumer of
// world poses (camera sync, rendering).
func (g *Graph) Propagate() {
	for i := range g.nodes {
		n := &g.nodes[i]
		if !n.alive {
			continue
		}
		if n.parent == NoNode {
			n.world = n.local
		} else {
			n.world = g.nodes[n.parent].world.Mul(n.local)
		}
	}
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes) && g.nodes[id].alive
}
