// Package ants provides the agent data model and the per-tick behavioral
// state machine that couples the environment graph to the pheromone field.
package ants

import (
	"fmt"

	"github.com/talgya/anthive/internal/entropy"
	"github.com/talgya/anthive/internal/graph"
	"github.com/talgya/anthive/internal/pheromone"
)

// AntID is a unique identifier for an ant.
type AntID uint64

// Role is fixed at spawn and determines speed and memory capacity.
type Role uint8

const (
	RoleWorker Role = iota
	RoleScout
	RoleSoldier

	// NumRoles is the number of roles; the iota block above is the
	// canonical enumeration order used for spawn tie-breaking.
	NumRoles = 3
)

// RoleName returns a human-readable role name.
func RoleName(r Role) string {
	switch r {
	case RoleScout:
		return "scout"
	case RoleSoldier:
		return "soldier"
	default:
		return "worker"
	}
}

// RoleParams holds the constant per-role behavior parameters.
type RoleParams struct {
	Speed     float64 // Movement speed multiplier
	MemoryCap int     // Visited-node memory capacity
}

// roleTable maps each role to its parameters. Roles are a closed enumeration
// with constant lookups, not runtime polymorphism.
var roleTable = [NumRoles]RoleParams{
	RoleWorker:  {Speed: 1.0, MemoryCap: 5},
	RoleScout:   {Speed: 1.5, MemoryCap: 8},
	RoleSoldier: {Speed: 0.8, MemoryCap: 5},
}

// Params returns the constant parameters for a role.
func (r Role) Params() RoleParams {
	if int(r) >= NumRoles {
		return roleTable[RoleWorker]
	}
	return roleTable[r]
}

// State is the behavioral state of an ant. The set is closed: Update
// switches exhaustively over it, so an unknown value is a programming error,
// not a runtime condition.
type State uint8

const (
	StateExploring State = iota
	StateReturning
	StateResting
	StateFollowing
)

// StateName returns a human-readable state name.
func StateName(s State) string {
	switch s {
	case StateReturning:
		return "returning"
	case StateResting:
		return "resting"
	case StateFollowing:
		return "following"
	default:
		return "exploring"
	}
}

// ResourceFood is the resource tag carried from food sources to the nest.
const ResourceFood = "food"

// Ant is one simulated colony member.
type Ant struct {
	ID    AntID `json:"id"`
	Role  Role  `json:"role"`
	State State `json:"state"`

	CurrentNode  graph.NodeID `json:"current_node"`
	PreviousNode graph.NodeID `json:"previous_node"`

	// Carrying is the tag of the carried resource; empty when empty-handed.
	// At most one unit is carried at a time.
	Carrying string `json:"carrying,omitempty"`

	Fatigue float64 `json:"fatigue"`
	Memory  Memory  `json:"-"`

	// MovementProgress interpolates between PreviousNode and CurrentNode.
	// 1.0 means the ant sits at CurrentNode; below that it is in transit.
	MovementProgress float64 `json:"movement_progress"`
}

// Actor returns the attribution identifier this ant stamps on deposits.
func (a *Ant) Actor() string {
	return fmt.Sprintf("ant_%d", a.ID)
}

// InTransit reports whether the ant is between nodes.
func (a *Ant) InTransit() bool {
	return a.MovementProgress < 1
}

// Env bundles the shared structures an ant reads and writes during one tick.
// All of it is owned by the colony; ants only borrow it for the call.
type Env struct {
	Graph *graph.Graph
	Field *pheromone.Field
	Rand  entropy.Source

	// Deliver is invoked when the ant drops a carried resource at the nest.
	Deliver func(kind string, amount int)
}
