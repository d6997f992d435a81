// Ant spawning — issues monotonic ids and builds ants in their initial state.
package ants

import "github.com/talgya/anthive/internal/graph"

// Spawner creates ants for a colony.
type Spawner struct {
	nextID AntID
}

// NewSpawner creates a spawner starting at id 1.
func NewSpawner() *Spawner {
	return &Spawner{nextID: 1}
}

// Spawn creates a new ant of the given role at the nest: exploring, rested,
// empty-handed, with its memory seeded to the nest so the exploration
// penalty immediately pushes it outward.
func (s *Spawner) Spawn(role Role, nest graph.NodeID) *Ant {
	id := s.nextID
	s.nextID++

	a := &Ant{
		ID:               id,
		Role:             role,
		State:            StateExploring,
		CurrentNode:      nest,
		PreviousNode:     nest,
		MovementProgress: 1,
		Memory:           NewMemory(role.Params().MemoryCap),
	}
	a.Memory.Push(nest)
	return a
}
