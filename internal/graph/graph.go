package graph

import "fmt"

// PositionTolerance is the matching radius for NodeIDAt. Grid construction
// uses floating-point spacing, so exact equality is never reliable.
const PositionTolerance = 0.1

// NodeSpec describes a node to create. Zero values get defaults: type
// normal, size 1, capacity 10, no resources. An empty ID gets a fresh one.
type NodeSpec struct {
	ID       NodeID
	Type     NodeType
	Position Vec3
	Size     int
	Capacity float64
}

// Graph is the undirected environment graph. It owns all node state; agents
// and the colony reach node mutations through it.
type Graph struct {
	nodes map[NodeID]*Node
	adj   map[NodeID][]NodeID
	order []NodeID // Insertion order, for deterministic iteration

	nextID uint64
}

// New creates an empty environment graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[NodeID]*Node),
		adj:   make(map[NodeID][]NodeID),
	}
}

// AddNode creates a node and returns its id.
// A duplicate explicit id is rejected by returning the empty id.
func (g *Graph) AddNode(spec NodeSpec) NodeID {
	id := spec.ID
	if id == "" {
		g.nextID++
		id = NodeID(fmt.Sprintf("node_%d", g.nextID))
	} else if _, exists := g.nodes[id]; exists {
		return ""
	}

	size := spec.Size
	if size < MinSize {
		size = MinSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	capacity := spec.Capacity
	if capacity <= 0 {
		capacity = CapacityPerSize * float64(size)
	}

	g.nodes[id] = &Node{
		ID:             id,
		Type:           spec.Type,
		Position:       spec.Position,
		Size:           size,
		Capacity:       capacity,
		DistanceToNest: DistanceUnreachable,
	}
	g.order = append(g.order, id)
	return id
}

// AddEdge connects two nodes. Returns false for unknown endpoints or a
// self-edge; inserting an existing edge is a no-op that still succeeds.
func (g *Graph) AddEdge(a, b NodeID) bool {
	if a == b {
		return false
	}
	if _, ok := g.nodes[a]; !ok {
		return false
	}
	if _, ok := g.nodes[b]; !ok {
		return false
	}
	if g.HasEdge(a, b) {
		return true
	}
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
	return true
}

// Node returns the node with the given id, or nil if unknown.
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// Neighbors returns the adjacency list of a node in insertion order.
// The returned slice is owned by the graph and must not be mutated.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	return g.adj[id]
}

// HasEdge reports whether an edge exists between a and b.
func (g *Graph) HasEdge(a, b NodeID) bool {
	for _, n := range g.adj[a] {
		if n == b {
			return true
		}
	}
	return false
}

// Position returns a node's position. The second result is false for an
// unknown node.
func (g *Graph) Position(id NodeID) (Vec3, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Vec3{}, false
	}
	return n.Position, true
}

// NodeIDAt returns the first node (in insertion order) within
// PositionTolerance of the given position. Grid construction keeps nodes
// farther apart than the tolerance, so at most one node can match.
func (g *Graph) NodeIDAt(pos Vec3) (NodeID, bool) {
	for _, id := range g.order {
		if g.nodes[id].Position.DistanceTo(pos) <= PositionTolerance {
			return id, true
		}
	}
	return "", false
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// NodeIDs returns all node ids in insertion order.
// The returned slice is owned by the graph and must not be mutated.
func (g *Graph) NodeIDs() []NodeID {
	return g.order
}

// CalculateDistances recomputes every node's DistanceToNest as the minimum
// hop count to target via breadth-first relaxation. Correct only because
// every edge has unit cost; this is not a general shortest-path routine.
// Disruption is ignored: distance is a topology property, not live routing.
func (g *Graph) CalculateDistances(target NodeID) {
	if _, ok := g.nodes[target]; !ok {
		return
	}

	for _, n := range g.nodes {
		n.DistanceToNest = DistanceUnreachable
	}
	g.nodes[target].DistanceToNest = 0

	queue := []NodeID{target}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		d := g.nodes[current].DistanceToNest

		for _, nb := range g.adj[current] {
			node := g.nodes[nb]
			if node.DistanceToNest == DistanceUnreachable || node.DistanceToNest > d+1 {
				node.DistanceToNest = d + 1
				queue = append(queue, nb)
			}
		}
	}
}

// Boost marks a node boosted for the given duration in seconds.
// Fails if the node is unknown or already boosted; the running timer of an
// active boost is never overwritten.
func (g *Graph) Boost(id NodeID, seconds float64) bool {
	n, ok := g.nodes[id]
	if !ok || n.Boosted {
		return false
	}
	n.Boosted = true
	n.BoostTimer = seconds
	return true
}

// Disrupt marks a node disrupted for the given duration in seconds.
// Nest nodes can never be disrupted, and an active disruption is not stacked.
func (g *Graph) Disrupt(id NodeID, seconds float64) bool {
	n, ok := g.nodes[id]
	if !ok || n.Type == TypeNest || n.Disrupted {
		return false
	}
	n.Disrupted = true
	n.DisruptTimer = seconds
	return true
}

// Expand grows a node by one size tier, scaling its capacity.
// Fails once the node has reached the maximum tier.
func (g *Graph) Expand(id NodeID) bool {
	n, ok := g.nodes[id]
	if !ok || n.Size >= MaxSize {
		return false
	}
	n.Size++
	n.Capacity = CapacityPerSize * float64(n.Size)
	return true
}

// TickEffects advances all timed node effects by dt seconds, clearing flags
// whose timers have run out.
func (g *Graph) TickEffects(dt float64) {
	for _, id := range g.order {
		n := g.nodes[id]
		if n.Boosted {
			n.BoostTimer -= dt
			if n.BoostTimer <= 0 {
				n.Boosted = false
				n.BoostTimer = 0
			}
		}
		if n.Disrupted {
			n.DisruptTimer -= dt
			if n.DisruptTimer <= 0 {
				n.Disrupted = false
				n.DisruptTimer = 0
			}
		}
	}
}
