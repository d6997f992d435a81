package sim

import (
	"testing"

	"github.com/talgya/anthive/internal/colony"
	"github.com/talgya/anthive/internal/entropy"
	"github.com/talgya/anthive/internal/graph"
	"github.com/talgya/anthive/internal/pheromone"
)

func testSim(t *testing.T, initialAnts int) (*Simulation, map[string]graph.NodeID) {
	t.Helper()
	g := graph.New()
	nest := g.AddNode(graph.NodeSpec{ID: "nest", Type: graph.TypeNest})
	mid := g.AddNode(graph.NodeSpec{ID: "mid", Position: graph.Vec3{X: 2}})
	food := g.AddNode(graph.NodeSpec{ID: "food", Type: graph.TypeFoodSource, Position: graph.Vec3{X: 4}})
	g.AddEdge(nest, mid)
	g.AddEdge(mid, food)
	g.CalculateDistances(nest)

	cfg := colony.DefaultConfig()
	cfg.InitialAnts = initialAnts
	c := colony.New(nest, cfg, entropy.Seeded(3))

	s := New(g, c)
	return s, map[string]graph.NodeID{"nest": nest, "mid": mid, "food": food}
}

func TestStepTicksEffectTimers(t *testing.T) {
	s, ids := testSim(t, 0)
	if !s.BoostNode(ids["food"], 1.0, "player_1") {
		t.Fatal("boost command failed")
	}

	for i := uint64(1); i <= 12; i++ {
		s.Step(i, 0.1)
	}
	if s.Graph.Node(ids["food"]).Boosted {
		t.Fatal("boost did not expire after its duration")
	}
	if s.LastTick != 12 {
		t.Fatalf("last tick = %d, want 12", s.LastTick)
	}
}

func TestBoostedFoodSourceRegenerates(t *testing.T) {
	s, ids := testSim(t, 0)
	node := s.Graph.Node(ids["food"])
	node.Resources = 1

	s.BoostNode(ids["food"], 60, "player_1")
	for i := uint64(1); i <= 10; i++ {
		s.Step(i, 0.1)
	}
	if node.Resources <= 1 {
		t.Fatalf("boosted food source did not regenerate: %f", node.Resources)
	}

	// Plain nodes never regenerate.
	mid := s.Graph.Node(ids["mid"])
	s.BoostNode(ids["mid"], 60, "player_1")
	s.Step(11, 0.1)
	if mid.Resources != 0 {
		t.Fatalf("boosted plain node gained resources: %f", mid.Resources)
	}
}

func TestPlacePheromoneRequiresEdge(t *testing.T) {
	s, ids := testSim(t, 0)

	if s.PlacePheromone(ids["nest"], ids["food"], pheromone.TrailFood, 1.0, "player_1") {
		t.Fatal("deposit on a non-edge succeeded")
	}
	if !s.PlacePheromone(ids["nest"], ids["mid"], pheromone.TrailFood, 1.0, "player_1") {
		t.Fatal("deposit on an existing edge failed")
	}
	if got := s.Colony.TrailLevel(ids["nest"], ids["mid"], pheromone.TrailFood); got != 1.0 {
		t.Fatalf("placed trail level = %f, want 1.0", got)
	}
}

func TestBoostCommandRejectsDouble(t *testing.T) {
	s, ids := testSim(t, 0)

	if !s.BoostNode(ids["mid"], 30, "player_1") {
		t.Fatal("first boost failed")
	}
	if s.BoostNode(ids["mid"], 99, "player_2") {
		t.Fatal("second boost succeeded")
	}
	if timer := s.Graph.Node(ids["mid"]).BoostTimer; timer != 30 {
		t.Fatalf("rejected boost changed timer to %f", timer)
	}
}

func TestDisruptCommandRejectsNest(t *testing.T) {
	s, ids := testSim(t, 0)

	if s.DisruptNode(ids["nest"], 30, "player_1") {
		t.Fatal("disrupting the nest succeeded")
	}
	if !s.DisruptNode(ids["mid"], 30, "player_1") {
		t.Fatal("disrupting a plain node failed")
	}
}

func TestExpandCommandStopsAtMaxTier(t *testing.T) {
	s, ids := testSim(t, 0)

	if !s.ExpandNode(ids["food"], "player_1") || !s.ExpandNode(ids["food"], "player_1") {
		t.Fatal("expansion to max tier failed")
	}
	if s.ExpandNode(ids["food"], "player_1") {
		t.Fatal("expansion past max tier succeeded")
	}
}

func TestCommandsEmitEvents(t *testing.T) {
	s, ids := testSim(t, 0)

	var seen []Event
	s.OnEvent = func(e Event) { seen = append(seen, e) }

	s.BoostNode(ids["mid"], 30, "player_1")
	s.BoostNode(ids["mid"], 30, "player_1") // Rejected: no event.

	if len(seen) != 1 {
		t.Fatalf("observed %d events, want 1", len(seen))
	}
	if seen[0].Category != "command" {
		t.Fatalf("event category = %q, want command", seen[0].Category)
	}

	recent := s.RecentEvents(10)
	if len(recent) != 1 || recent[0].Description != seen[0].Description {
		t.Fatalf("recent events = %+v, want the boost event", recent)
	}
}

func TestStatsCountsRolesAndFood(t *testing.T) {
	s, ids := testSim(t, 5)
	s.Graph.Node(ids["food"]).Resources = 4

	stats := s.CurrentStats()
	if stats.Population != 5 {
		t.Fatalf("population = %d, want 5", stats.Population)
	}
	if stats.Workers+stats.Scouts+stats.Soldiers != 5 {
		t.Fatalf("role counts do not sum to population: %+v", stats)
	}
	if stats.FoodInWorld != 4 {
		t.Fatalf("food in world = %f, want 4", stats.FoodInWorld)
	}
	if stats.NodeCount != 3 {
		t.Fatalf("node count = %d, want 3", stats.NodeCount)
	}
}

func TestAntSnapshotInterpolates(t *testing.T) {
	s, ids := testSim(t, 1)
	a := s.Colony.Ants[0]
	a.PreviousNode = ids["nest"]
	a.CurrentNode = ids["mid"]
	a.MovementProgress = 0.5

	views := s.Ants()
	if len(views) != 1 {
		t.Fatalf("ant views = %d, want 1", len(views))
	}
	v := views[0]
	if v.Position.X != 1 || v.Position.Y != 0 || v.Position.Z != 0 {
		t.Fatalf("interpolated position = %+v, want (1,0,0)", v.Position)
	}
	if v.Orientation.X != 1 || v.Orientation.Y != 0 || v.Orientation.Z != 0 {
		t.Fatalf("orientation = %+v, want +X unit", v.Orientation)
	}
}

func TestTrailSnapshotResolvesPositions(t *testing.T) {
	s, ids := testSim(t, 0)
	s.PlacePheromone(ids["mid"], ids["food"], pheromone.TrailFood, 1.0, "player_1")

	trails := s.Trails()
	if len(trails) != 2 {
		t.Fatalf("trail views = %d, want forward and reverse", len(trails))
	}
	for _, tr := range trails {
		if tr.FromPos == tr.ToPos {
			t.Fatalf("trail endpoints collapsed: %+v", tr)
		}
		if tr.Type != "food" {
			t.Fatalf("trail type = %q, want food", tr.Type)
		}
	}
}

func TestNodeSnapshotListsNeighbors(t *testing.T) {
	s, _ := testSim(t, 0)
	nodes := s.Nodes()
	if len(nodes) != 3 {
		t.Fatalf("node views = %d, want 3", len(nodes))
	}
	for _, n := range nodes {
		if n.ID == "mid" && len(n.Neighbors) != 2 {
			t.Fatalf("mid neighbors = %v, want 2", n.Neighbors)
		}
	}
}
