package world

import (
	"testing"

	"github.com/talgya/anthive/internal/graph"
)

func TestGenerateGridShape(t *testing.T) {
	cfg := SmallTestConfig()
	g, nest := Generate(cfg)

	if got := g.NodeCount(); got != cfg.Width*cfg.Depth {
		t.Fatalf("node count = %d, want %d", got, cfg.Width*cfg.Depth)
	}

	n := g.Node(nest)
	if n == nil || n.Type != graph.TypeNest {
		t.Fatal("nest node missing or not typed nest")
	}
	if n.DistanceToNest != 0 {
		t.Fatalf("nest distance = %d, want 0", n.DistanceToNest)
	}

	// Every node on the connected lattice can reach the nest.
	for _, id := range g.NodeIDs() {
		if d := g.Node(id).DistanceToNest; d == graph.DistanceUnreachable {
			t.Fatalf("node %s unreachable from nest on a full grid", id)
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	a, nestA := Generate(SmallTestConfig())
	b, nestB := Generate(SmallTestConfig())

	if nestA != nestB {
		t.Fatalf("nest ids differ: %s vs %s", nestA, nestB)
	}
	idsA, idsB := a.NodeIDs(), b.NodeIDs()
	if len(idsA) != len(idsB) {
		t.Fatalf("node counts differ: %d vs %d", len(idsA), len(idsB))
	}
	for i := range idsA {
		na, nb := a.Node(idsA[i]), b.Node(idsB[i])
		if na.Type != nb.Type || na.Position != nb.Position || na.Size != nb.Size {
			t.Fatalf("node %d differs between identical seeds", i)
		}
	}
}

func TestGenerateFoodSourcesStocked(t *testing.T) {
	g, _ := Generate(SmallTestConfig())

	counts := CountByType(g)
	if counts["food_source"] == 0 {
		t.Fatal("no food sources generated at test threshold")
	}
	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		if n.Type == graph.TypeFoodSource {
			if n.Resources != n.Capacity {
				t.Fatalf("food source %s stocked %f/%f", id, n.Resources, n.Capacity)
			}
			if n.Size < graph.MinSize || n.Size > graph.MaxSize {
				t.Fatalf("food source %s has size %d outside tiers", id, n.Size)
			}
		}
	}
}
