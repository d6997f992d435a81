// Package graph provides the environment graph the colony lives on: nodes
// with mutable state (resources, timed effects), undirected unit-cost edges,
// and the distance/path computations agents navigate by.
package graph

import "math"

// NodeID is a unique identifier for a node in the environment graph.
type NodeID string

// NodeType classifies what a node represents to the colony.
type NodeType uint8

const (
	TypeNormal     NodeType = iota // Plain waypoint
	TypeNest                       // Colony home — resources are delivered here
	TypeFoodSource                 // Holds harvestable resources
)

// TypeName returns a human-readable node type name.
func TypeName(t NodeType) string {
	switch t {
	case TypeNest:
		return "nest"
	case TypeFoodSource:
		return "food_source"
	default:
		return "normal"
	}
}

// Vec3 is a position in 3D world space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DistanceTo returns the Euclidean distance between two positions.
func (v Vec3) DistanceTo(o Vec3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	dz := v.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Size tiers and derived capacity.
const (
	MinSize = 1
	MaxSize = 3

	// CapacityPerSize is the resource capacity granted per size tier.
	CapacityPerSize = 10.0
)

// DistanceUnreachable marks a node with no recorded path to the nest.
const DistanceUnreachable = -1

// Node is a single location in the environment. Nodes are owned by the Graph
// and never destroyed once created.
type Node struct {
	ID       NodeID   `json:"id"`
	Type     NodeType `json:"type"`
	Position Vec3     `json:"position"`

	Size      int     `json:"size"`      // Tier 1–3
	Capacity  float64 `json:"capacity"`  // Grows with size
	Resources float64 `json:"resources"` // Never exceeds Capacity

	// Minimum hop count to the nest, set by CalculateDistances.
	// DistanceUnreachable until computed or when no path exists.
	DistanceToNest int `json:"distance_to_nest"`

	// Timed player effects. The flag is live while its timer is positive.
	Boosted        bool    `json:"boosted"`
	BoostTimer     float64 `json:"boost_timer"` // Seconds remaining
	Disrupted      bool    `json:"disrupted"`
	DisruptTimer   float64 `json:"disrupt_timer"`
}

// AddResources credits resources to the node, clamped to capacity.
// Returns the amount actually added.
func (n *Node) AddResources(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	space := n.Capacity - n.Resources
	if amount > space {
		amount = space
	}
	n.Resources += amount
	return amount
}

// TakeResource removes one unit of resources from the node.
// Returns false when the node has none available.
func (n *Node) TakeResource() bool {
	if n.Resources < 1 {
		return false
	}
	n.Resources--
	return true
}
