package ants

import (
	"testing"

	"github.com/talgya/anthive/internal/entropy"
	"github.com/talgya/anthive/internal/graph"
	"github.com/talgya/anthive/internal/pheromone"
)

// testEnv builds a Y-shaped world: nest - mid - {food, plain}, spaced 2 units.
func testEnv(t *testing.T) (Env, map[string]graph.NodeID) {
	t.Helper()
	g := graph.New()
	nest := g.AddNode(graph.NodeSpec{ID: "nest", Type: graph.TypeNest})
	mid := g.AddNode(graph.NodeSpec{ID: "mid", Position: graph.Vec3{X: 2}})
	food := g.AddNode(graph.NodeSpec{ID: "food", Type: graph.TypeFoodSource, Position: graph.Vec3{X: 4}})
	plain := g.AddNode(graph.NodeSpec{ID: "plain", Position: graph.Vec3{X: 2, Z: 2}})
	g.AddEdge(nest, mid)
	g.AddEdge(mid, food)
	g.AddEdge(mid, plain)
	g.CalculateDistances(nest)

	env := Env{
		Graph: g,
		Field: pheromone.NewField(),
		Rand:  entropy.Seeded(1),
	}
	ids := map[string]graph.NodeID{"nest": nest, "mid": mid, "food": food, "plain": plain}
	return env, ids
}

func settle(a *Ant, at graph.NodeID) {
	a.PreviousNode = at
	a.CurrentNode = at
	a.MovementProgress = 1
}

func TestPickupAtFoodSource(t *testing.T) {
	env, ids := testEnv(t)
	env.Graph.Node(ids["food"]).Resources = 3

	a := NewSpawner().Spawn(RoleWorker, ids["nest"])
	a.PreviousNode = ids["mid"]
	a.CurrentNode = ids["food"]
	a.MovementProgress = 0.5

	// Worker covers 0.5 progress in 0.25s, landing on the food source.
	Update(a, 0.25, env)

	if a.Carrying != ResourceFood {
		t.Fatalf("carrying = %q, want %q", a.Carrying, ResourceFood)
	}
	if a.State != StateReturning {
		t.Fatalf("state = %s, want returning", StateName(a.State))
	}
	if got := env.Graph.Node(ids["food"]).Resources; got != 2 {
		t.Fatalf("food source resources = %f, want 2", got)
	}
}

func TestNoPickupWhenAlreadyCarrying(t *testing.T) {
	env, ids := testEnv(t)
	env.Graph.Node(ids["food"]).Resources = 3

	a := NewSpawner().Spawn(RoleWorker, ids["nest"])
	a.Carrying = ResourceFood
	a.State = StateReturning
	a.PreviousNode = ids["mid"]
	a.CurrentNode = ids["food"]
	a.MovementProgress = 0.5

	Update(a, 0.25, env)

	if got := env.Graph.Node(ids["food"]).Resources; got != 3 {
		t.Fatalf("loaded ant took a resource: %f, want 3", got)
	}
}

func TestNestDeliveryTransitionsToFollowing(t *testing.T) {
	env, ids := testEnv(t)
	var gotKind string
	var gotAmount int
	env.Deliver = func(kind string, amount int) {
		gotKind, gotAmount = kind, amount
	}

	a := NewSpawner().Spawn(RoleWorker, ids["nest"])
	a.State = StateReturning
	a.Carrying = ResourceFood
	a.PreviousNode = ids["mid"]
	a.CurrentNode = ids["nest"]
	a.MovementProgress = 0.5

	Update(a, 0.25, env)

	if gotKind != ResourceFood || gotAmount != 1 {
		t.Fatalf("delivered %q x%d, want food x1", gotKind, gotAmount)
	}
	if a.Carrying != "" {
		t.Fatalf("carrying after delivery = %q, want empty", a.Carrying)
	}
	if a.State != StateFollowing {
		t.Fatalf("state = %s, want following", StateName(a.State))
	}
	if a.Memory.Len() != 1 || !a.Memory.Contains(ids["nest"]) {
		t.Fatal("memory not reset to just the nest")
	}
}

func TestReturningAlwaysDepositsFoodTrail(t *testing.T) {
	env, ids := testEnv(t)

	a := NewSpawner().Spawn(RoleWorker, ids["nest"])
	a.State = StateReturning
	a.Carrying = ResourceFood
	a.PreviousNode = ids["food"]
	a.CurrentNode = ids["mid"]
	a.MovementProgress = 0

	Update(a, 0.1, env) // One transit tick, no arrival.

	forward := env.Field.Level(ids["food"], ids["mid"], pheromone.TrailFood)
	if forward != FoodTrailStrength {
		t.Fatalf("forward food trail = %f, want %f", forward, FoodTrailStrength)
	}
	reverse := env.Field.Level(ids["mid"], ids["food"], pheromone.TrailFood)
	if reverse != FoodTrailStrength/2 {
		t.Fatalf("reverse food trail = %f, want %f", reverse, FoodTrailStrength/2)
	}
}

func TestExploringDepositChance(t *testing.T) {
	env, ids := testEnv(t)

	a := NewSpawner().Spawn(RoleWorker, ids["nest"])
	a.PreviousNode = ids["nest"]
	a.CurrentNode = ids["mid"]

	// Draw 0.5 ≥ chance: no deposit.
	env.Rand = entropy.Sequence(0.5)
	a.MovementProgress = 0
	Update(a, 0.1, env)
	if got := env.Field.Level(ids["nest"], ids["mid"], pheromone.TrailExploration); got != 0 {
		t.Fatalf("deposit happened on losing draw: level %f", got)
	}

	// Draw 0.05 < chance: deposit exploration trail.
	env.Rand = entropy.Sequence(0.05)
	Update(a, 0.1, env)
	if got := env.Field.Level(ids["nest"], ids["mid"], pheromone.TrailExploration); got != ExplorationTrailStrength {
		t.Fatalf("exploration trail = %f, want %f", got, ExplorationTrailStrength)
	}
}

func TestFatigueForcesRestAndRecovery(t *testing.T) {
	env, ids := testEnv(t)

	a := NewSpawner().Spawn(RoleWorker, ids["nest"])
	a.Fatigue = 10.0

	// One tick of accrual pushes past the limit from any state.
	Update(a, 1.0, env)
	if a.State != StateResting {
		t.Fatalf("state = %s, want resting", StateName(a.State))
	}

	// Resting sheds 0.2/s and never accrues; run until recovered.
	for i := 0; i < 100 && a.State == StateResting; i++ {
		Update(a, 1.0, env)
	}
	if a.State != StateExploring {
		t.Fatalf("state after recovery = %s, want exploring", StateName(a.State))
	}
	if a.Fatigue != 0 {
		t.Fatalf("fatigue at recovery = %f, want 0", a.Fatigue)
	}
}

func TestRestedCarrierResumesReturning(t *testing.T) {
	env, ids := testEnv(t)

	a := NewSpawner().Spawn(RoleWorker, ids["nest"])
	a.State = StateResting
	a.Carrying = ResourceFood
	a.Fatigue = 0.1

	Update(a, 1.0, env)
	if a.State != StateReturning {
		t.Fatalf("state = %s, want returning", StateName(a.State))
	}
}

func TestReturningStepsTowardNest(t *testing.T) {
	env, ids := testEnv(t)

	a := NewSpawner().Spawn(RoleWorker, ids["nest"])
	a.State = StateReturning
	a.Carrying = ResourceFood
	settle(a, ids["food"])

	Update(a, 0.1, env)
	if a.CurrentNode != ids["mid"] {
		t.Fatalf("returning ant moved to %s, want mid", a.CurrentNode)
	}
	if a.MovementProgress != 0 {
		t.Fatalf("movement progress after move = %f, want 0", a.MovementProgress)
	}
}

func TestReturningLostFallbackIsRandom(t *testing.T) {
	// No CalculateDistances run: every distance is unreachable.
	g := graph.New()
	a := g.AddNode(graph.NodeSpec{ID: "a"})
	b := g.AddNode(graph.NodeSpec{ID: "b", Position: graph.Vec3{X: 2}})
	c := g.AddNode(graph.NodeSpec{ID: "c", Position: graph.Vec3{Z: 2}})
	g.AddEdge(a, b)
	g.AddEdge(a, c)

	env := Env{Graph: g, Field: pheromone.NewField(), Rand: entropy.Sequence(0.9)}
	ant := NewSpawner().Spawn(RoleWorker, a)
	ant.State = StateReturning
	ant.Carrying = ResourceFood

	Update(ant, 0.1, env)
	if ant.CurrentNode != c {
		t.Fatalf("lost ant stepped to %s, want second neighbor %s", ant.CurrentNode, c)
	}
}

func TestExploreWeightsBiasFoodSources(t *testing.T) {
	env, ids := testEnv(t)

	a := NewSpawner().Spawn(RoleWorker, ids["nest"])
	settle(a, ids["mid"])
	a.Memory.Reset(ids["mid"])

	// Neighbors of mid in insertion order: nest, food, plain.
	// Weights: nest 0.5×0.5=0.25, food 0.5×3=1.5, plain 0.5. Total 2.25.
	// A draw of 0.2 lands at 0.45, inside the food bucket (0.25–1.75).
	env.Rand = entropy.Sequence(0.2)
	Update(a, 0.1, env)
	if a.CurrentNode != ids["food"] {
		t.Fatalf("explorer moved to %s, want food", a.CurrentNode)
	}
}

func TestExploreMemoryPenaltySoftensBacktracking(t *testing.T) {
	env, ids := testEnv(t)

	a := NewSpawner().Spawn(RoleWorker, ids["nest"])
	settle(a, ids["mid"])
	a.Memory.Reset(ids["plain"])

	// plain remembered: weights nest 0.25, food 1.5, plain 0.05. Total 1.8.
	// A draw of 0.98 lands at 1.764, still inside the plain bucket —
	// remembered nodes stay reachable, just unlikely.
	env.Rand = entropy.Sequence(0.98)
	Update(a, 0.1, env)
	if a.CurrentNode != ids["plain"] {
		t.Fatalf("explorer moved to %s, want plain via high draw", a.CurrentNode)
	}
}

func TestFollowPrefersStrongFoodTrails(t *testing.T) {
	env, ids := testEnv(t)

	env.Field.Deposit(ids["mid"], ids["food"], pheromone.TrailFood, 2.0, "ant_9")

	a := NewSpawner().Spawn(RoleWorker, ids["nest"])
	a.State = StateFollowing
	settle(a, ids["mid"])

	// Weights: nest (0.1)^3=0.001, food (2.1)^3=9.261, plain 0.001.
	// Any mid-range draw lands on food.
	env.Rand = entropy.Sequence(0.5)
	Update(a, 0.1, env)
	if a.CurrentNode != ids["food"] {
		t.Fatalf("follower moved to %s, want food", a.CurrentNode)
	}
	if a.State != StateFollowing {
		t.Fatalf("state = %s, want following", StateName(a.State))
	}
}

func TestFollowWithoutNeighborsFallsBackToExploring(t *testing.T) {
	g := graph.New()
	lone := g.AddNode(graph.NodeSpec{ID: "lone"})
	env := Env{Graph: g, Field: pheromone.NewField(), Rand: entropy.Seeded(1)}

	a := NewSpawner().Spawn(RoleWorker, lone)
	a.State = StateFollowing

	Update(a, 0.1, env)
	if a.State != StateExploring {
		t.Fatalf("state = %s, want exploring fallback", StateName(a.State))
	}
}

func TestTransitBlocksStateEvaluation(t *testing.T) {
	env, ids := testEnv(t)
	env.Graph.Node(ids["food"]).Resources = 3

	a := NewSpawner().Spawn(RoleWorker, ids["nest"])
	a.PreviousNode = ids["mid"]
	a.CurrentNode = ids["food"]
	a.MovementProgress = 0

	// 0.1s moves a worker 0.2 progress: still in transit, no pickup yet.
	Update(a, 0.1, env)
	if a.Carrying != "" {
		t.Fatal("in-transit ant picked up a resource")
	}
	if a.MovementProgress != 0.2 {
		t.Fatalf("progress = %f, want 0.2", a.MovementProgress)
	}
}

func TestPickWeightedZeroTotalFallsToFirst(t *testing.T) {
	env := Env{Rand: entropy.Seeded(1)}
	if idx, ok := pickWeighted([]float64{0, 0, 0}, env); ok || idx != 0 {
		t.Fatalf("zero-total pick = (%d, %v), want (0, false)", idx, ok)
	}
}

func TestScoutMovesFasterAndRemembersMore(t *testing.T) {
	p := RoleScout.Params()
	if p.Speed <= RoleWorker.Params().Speed {
		t.Fatal("scout not faster than worker")
	}
	if p.MemoryCap != 8 {
		t.Fatalf("scout memory cap = %d, want 8", p.MemoryCap)
	}
	if RoleWorker.Params().MemoryCap != 5 || RoleSoldier.Params().MemoryCap != 5 {
		t.Fatal("worker/soldier memory cap should be 5")
	}
}
