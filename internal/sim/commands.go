// Player commands. Each either succeeds (state mutated, event emitted) or
// returns false with no partial effects. They share the simulation mutex
// with Step, so a command is never visible mid-tick.
package sim

import (
	"fmt"

	"github.com/talgya/anthive/internal/graph"
	"github.com/talgya/anthive/internal/pheromone"
)

// PlacePheromone deposits a trail on an existing edge on behalf of a player.
// Rejected when the edge does not exist.
func (s *Simulation) PlacePheromone(from, to graph.NodeID, kind pheromone.TrailType, amount float64, by string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Graph.HasEdge(from, to) {
		return false
	}
	s.Colony.Deposit(from, to, kind, amount, by)
	s.emit(Event{
		Tick:        s.LastTick,
		Description: fmt.Sprintf("%s laid a %s trail from %s to %s", by, pheromone.TrailName(kind), from, to),
		Category:    "command",
	})
	return true
}

// BoostNode applies a timed boost. Rejected when the node is unknown or
// already boosted; a failed boost leaves the running timer untouched.
func (s *Simulation) BoostNode(id graph.NodeID, seconds float64, by string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Graph.Boost(id, seconds) {
		return false
	}
	s.emit(Event{
		Tick:        s.LastTick,
		Description: fmt.Sprintf("%s boosted node %s for %.0fs", by, id, seconds),
		Category:    "command",
	})
	return true
}

// DisruptNode applies a timed disruption. Nest nodes always reject it.
func (s *Simulation) DisruptNode(id graph.NodeID, seconds float64, by string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Graph.Disrupt(id, seconds) {
		return false
	}
	s.emit(Event{
		Tick:        s.LastTick,
		Description: fmt.Sprintf("%s disrupted node %s for %.0fs", by, id, seconds),
		Category:    "command",
	})
	return true
}

// ExpandNode grows a node by one size tier, up to the maximum.
func (s *Simulation) ExpandNode(id graph.NodeID, by string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Graph.Expand(id) {
		return false
	}
	s.emit(Event{
		Tick:        s.LastTick,
		Description: fmt.Sprintf("%s expanded node %s to size %d", by, id, s.Graph.Node(id).Size),
		Category:    "command",
	})
	return true
}
