// Simulation ties the environment graph and the colony together and runs
// them each tick. One mutex covers both tick processing and player commands,
// so commands apply atomically between ticks: no agent ever observes a
// partially-applied command.
package sim

import (
	"sync"

	"github.com/talgya/anthive/internal/ants"
	"github.com/talgya/anthive/internal/colony"
	"github.com/talgya/anthive/internal/graph"
)

// maxEvents caps the in-memory event ring.
const maxEvents = 1000

// BoostRegenRate is resources per second restored to a boosted food source.
const BoostRegenRate = 0.5

// Event is a notable occurrence in the simulation.
type Event struct {
	Tick        uint64 `json:"tick"`
	Description string `json:"description"`
	Category    string `json:"category"` // "spawn", "command", "harvest"
}

// Simulation holds the complete world state and wires systems together.
type Simulation struct {
	mu sync.Mutex

	Graph  *graph.Graph
	Colony *colony.Colony

	LastTick uint64
	Events   []Event

	// OnEvent, when set, observes every emitted event (journal hook).
	OnEvent func(Event)
}

// New creates a simulation over a populated graph and a colony.
func New(g *graph.Graph, c *colony.Colony) *Simulation {
	return &Simulation{Graph: g, Colony: c}
}

// Step advances the world by dt seconds on the given tick: node effect
// timers count down, boosted food sources regenerate, the colony decays its
// field and updates every ant in collection order, and at most one ant
// spawns.
func (s *Simulation) Step(tick uint64, dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.LastTick = tick

	s.Graph.TickEffects(dt)
	s.regenerateBoosted(dt)

	before := s.Colony.Ledger[ants.ResourceFood]
	if spawned := s.Colony.Tick(dt, s.Graph); spawned != nil {
		s.emit(Event{
			Tick:        tick,
			Description: "a " + ants.RoleName(spawned.Role) + " hatched at the nest",
			Category:    "spawn",
		})
	}
	if after := s.Colony.Ledger[ants.ResourceFood]; after > before {
		s.emit(Event{
			Tick:        tick,
			Description: "food delivered to the nest",
			Category:    "harvest",
		})
	}
}

// regenerateBoosted restores resources on boosted food sources. This is the
// whole in-simulation effect of a boost; pathing and trails ignore it.
func (s *Simulation) regenerateBoosted(dt float64) {
	for _, id := range s.Graph.NodeIDs() {
		n := s.Graph.Node(id)
		if n.Boosted && n.Type == graph.TypeFoodSource {
			n.AddResources(BoostRegenRate * dt)
		}
	}
}

// emit appends to the event ring and notifies the observer. Caller holds mu.
func (s *Simulation) emit(e Event) {
	s.Events = append(s.Events, e)
	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}
	if s.OnEvent != nil {
		s.OnEvent(e)
	}
}

// RecentEvents returns up to count most recent events, oldest first.
func (s *Simulation) RecentEvents(count int) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if len(s.Events) > count {
		start = len(s.Events) - count
	}
	out := make([]Event, len(s.Events)-start)
	copy(out, s.Events[start:])
	return out
}

// Stats is an aggregate view of the simulation.
type Stats struct {
	Tick        uint64         `json:"tick"`
	Population  int            `json:"population"`
	Workers     int            `json:"workers"`
	Scouts      int            `json:"scouts"`
	Soldiers    int            `json:"soldiers"`
	Trails      int            `json:"trails"`
	Ledger      map[string]int `json:"ledger"`
	NodeCount   int            `json:"node_count"`
	FoodInWorld float64        `json:"food_in_world"`
}

// CurrentStats computes the aggregate view under the simulation lock.
func (s *Simulation) CurrentStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := s.Colony.RoleCounts()
	ledger := make(map[string]int, len(s.Colony.Ledger))
	for k, v := range s.Colony.Ledger {
		ledger[k] = v
	}

	food := 0.0
	for _, id := range s.Graph.NodeIDs() {
		if n := s.Graph.Node(id); n.Type == graph.TypeFoodSource {
			food += n.Resources
		}
	}

	return Stats{
		Tick:        s.LastTick,
		Population:  len(s.Colony.Ants),
		Workers:     counts[ants.RoleWorker],
		Scouts:      counts[ants.RoleScout],
		Soldiers:    counts[ants.RoleSoldier],
		Trails:      s.Colony.Field.Size(),
		Ledger:      ledger,
		NodeCount:   s.Graph.NodeCount(),
		FoodInWorld: food,
	}
}
