// Read-only snapshots for rendering, UI, and network layers. All derived
// state (interpolated positions, orientations, trail endpoints) is computed
// here so observers never touch live simulation structures.
package sim

import (
	"math"

	"github.com/talgya/anthive/internal/ants"
	"github.com/talgya/anthive/internal/graph"
	"github.com/talgya/anthive/internal/pheromone"
)

// NodeView is the observer-facing state of one node.
type NodeView struct {
	ID           graph.NodeID   `json:"id"`
	Type         string         `json:"type"`
	Position     graph.Vec3     `json:"position"`
	Size         int            `json:"size"`
	Capacity     float64        `json:"capacity"`
	Resources    float64        `json:"resources"`
	Boosted      bool           `json:"boosted"`
	BoostTimer   float64        `json:"boost_timer"`
	Disrupted    bool           `json:"disrupted"`
	DisruptTimer float64        `json:"disrupt_timer"`
	Neighbors    []graph.NodeID `json:"neighbors"`
}

// TrailView is one live pheromone entry with endpoint positions resolved.
type TrailView struct {
	From        graph.NodeID `json:"from"`
	To          graph.NodeID `json:"to"`
	FromPos     graph.Vec3   `json:"from_pos"`
	ToPos       graph.Vec3   `json:"to_pos"`
	Type        string       `json:"type"`
	Strength    float64      `json:"strength"`
	DepositedBy string       `json:"deposited_by"`
}

// AntView is the render state of one ant.
type AntView struct {
	ID          ants.AntID `json:"id"`
	Role        string     `json:"role"`
	State       string     `json:"state"`
	Position    graph.Vec3 `json:"position"`
	Orientation graph.Vec3 `json:"orientation"` // Unit previous→current direction
	Carrying    bool       `json:"carrying"`
	Fatigue     float64    `json:"fatigue"`
}

// Nodes returns a snapshot of every node in insertion order.
func (s *Simulation) Nodes() []NodeView {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]NodeView, 0, s.Graph.NodeCount())
	for _, id := range s.Graph.NodeIDs() {
		n := s.Graph.Node(id)
		neighbors := s.Graph.Neighbors(id)
		nb := make([]graph.NodeID, len(neighbors))
		copy(nb, neighbors)
		out = append(out, NodeView{
			ID:           n.ID,
			Type:         graph.TypeName(n.Type),
			Position:     n.Position,
			Size:         n.Size,
			Capacity:     n.Capacity,
			Resources:    n.Resources,
			Boosted:      n.Boosted,
			BoostTimer:   n.BoostTimer,
			Disrupted:    n.Disrupted,
			DisruptTimer: n.DisruptTimer,
			Neighbors:    nb,
		})
	}
	return out
}

// Trails returns all live pheromone entries with positions resolved from
// their endpoint nodes.
func (s *Simulation) Trails() []TrailView {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.Colony.Field.Entries()
	out := make([]TrailView, 0, len(entries))
	for _, e := range entries {
		fromPos, ok1 := s.Graph.Position(e.From)
		toPos, ok2 := s.Graph.Position(e.To)
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, TrailView{
			From:        e.From,
			To:          e.To,
			FromPos:     fromPos,
			ToPos:       toPos,
			Type:        pheromone.TrailName(e.Type),
			Strength:    e.Level,
			DepositedBy: e.DepositedBy,
		})
	}
	return out
}

// Ants returns render data for every ant: position interpolated along the
// edge being crossed and orientation from the direction of travel.
func (s *Simulation) Ants() []AntView {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]AntView, 0, len(s.Colony.Ants))
	for _, a := range s.Colony.Ants {
		prev, _ := s.Graph.Position(a.PreviousNode)
		cur, _ := s.Graph.Position(a.CurrentNode)

		p := a.MovementProgress
		pos := graph.Vec3{
			X: prev.X + (cur.X-prev.X)*p,
			Y: prev.Y + (cur.Y-prev.Y)*p,
			Z: prev.Z + (cur.Z-prev.Z)*p,
		}

		out = append(out, AntView{
			ID:          a.ID,
			Role:        ants.RoleName(a.Role),
			State:       ants.StateName(a.State),
			Position:    pos,
			Orientation: direction(prev, cur),
			Carrying:    a.Carrying != "",
			Fatigue:     a.Fatigue,
		})
	}
	return out
}

// direction returns the unit vector from a to b, or the zero vector when
// the points coincide (an ant idle on its spawn node has no heading).
func direction(a, b graph.Vec3) graph.Vec3 {
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	length := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if length == 0 {
		return graph.Vec3{}
	}
	return graph.Vec3{X: dx / length, Y: dy / length, Z: dz / length}
}
