// Per-tick ant behavior — the exploring/returning/resting/following state
// machine. Every tick an ant either advances along the edge it is crossing
// (possibly marking it) or, when settled on a node, evaluates its state and
// picks the next move.
package ants

import (
	"math"

	"github.com/talgya/anthive/internal/graph"
	"github.com/talgya/anthive/internal/pheromone"
)

// Update advances one ant by dt seconds against the shared environment.
func Update(a *Ant, dt float64, env Env) {
	accrueFatigue(a, dt)

	if a.InTransit() {
		advance(a, dt, env)
		return
	}

	switch a.State {
	case StateResting:
		rest(a, dt)
	case StateExploring:
		explore(a, env)
	case StateReturning:
		returnToNest(a, env)
	case StateFollowing:
		follow(a, env)
	}
}

// accrueFatigue charges fatigue regardless of transit state and forces the
// ant into resting past the limit. Resting ants only recover.
func accrueFatigue(a *Ant, dt float64) {
	if a.State == StateResting {
		return
	}
	rate := FatigueRate
	if a.Carrying != "" {
		rate = FatigueRateCarrying
	}
	a.Fatigue += rate * dt
	if a.Fatigue > FatigueLimit {
		a.State = StateResting
	}
}

// advance moves the ant along its current edge, drops trail markers with
// state-dependent likelihood, and handles arrival once progress completes.
func advance(a *Ant, dt float64, env Env) {
	a.MovementProgress += BaseSpeed * a.Role.Params().Speed * dt
	arrived := a.MovementProgress >= 1
	if arrived {
		a.MovementProgress = 1
	}

	maybeDeposit(a, env)

	if arrived {
		arrive(a, env)
	}
}

// maybeDeposit marks the edge being crossed. Returning ants always mark,
// exploring ants mark with a small per-tick chance, following ants only
// while carrying. The trail type follows the cargo: food trails lead others
// to the source, exploration trails just record coverage.
func maybeDeposit(a *Ant, env Env) {
	var deposit bool
	switch a.State {
	case StateReturning:
		deposit = true
	case StateExploring:
		deposit = env.Rand.Float64() < ExploreDepositChance
	case StateFollowing:
		deposit = a.Carrying != ""
	case StateResting:
		// Resting ants caught mid-edge finish the crossing without marking.
	}
	if !deposit || a.PreviousNode == a.CurrentNode {
		return
	}

	kind, strength := pheromone.TrailExploration, ExplorationTrailStrength
	if a.Carrying != "" {
		kind, strength = pheromone.TrailFood, FoodTrailStrength
	}
	env.Field.Deposit(a.PreviousNode, a.CurrentNode, kind, strength, a.Actor())
}

// arrive runs the landing checks shared by all moving states: remember the
// node, pick up from a food source when empty-handed, deliver at the nest
// when carrying.
func arrive(a *Ant, env Env) {
	a.Memory.Push(a.CurrentNode)

	node := env.Graph.Node(a.CurrentNode)
	if node == nil {
		return
	}

	switch {
	case node.Type == graph.TypeFoodSource && a.Carrying == "" && node.TakeResource():
		a.Carrying = ResourceFood
		a.State = StateReturning
	case node.Type == graph.TypeNest && a.Carrying != "":
		if env.Deliver != nil {
			env.Deliver(a.Carrying, 1)
		}
		a.Carrying = ""
		a.Memory.Reset(a.CurrentNode)
		a.State = StateFollowing
	}
}

// rest sheds fatigue; fully recovered ants resume hauling if still loaded,
// otherwise go back to exploring.
func rest(a *Ant, dt float64) {
	a.Fatigue -= RestRecovery * dt
	if a.Fatigue > 0 {
		return
	}
	a.Fatigue = 0
	if a.Carrying != "" {
		a.State = StateReturning
	} else {
		a.State = StateExploring
	}
}

// explore picks the next node stochastically, weighting neighbors by
// exploration trail strength, penalizing remembered nodes, and biasing
// toward food sources and (when carrying) the nest.
func explore(a *Ant, env Env) {
	neighbors := env.Graph.Neighbors(a.CurrentNode)
	if len(neighbors) == 0 {
		return
	}

	weights := make([]float64, len(neighbors))
	for i, nb := range neighbors {
		level := env.Field.Level(a.CurrentNode, nb, pheromone.TrailExploration)
		w := level*ExploreTrailScale + ExploreBaseWeight
		if a.Memory.Contains(nb) {
			w *= MemoryPenalty
		}
		if node := env.Graph.Node(nb); node != nil {
			switch node.Type {
			case graph.TypeFoodSource:
				w *= FoodSourceBias
			case graph.TypeNest:
				if a.Carrying != "" {
					w *= NestCarryBias
				} else {
					w *= NestAvoidBias
				}
			}
		}
		weights[i] = w
	}

	idx, ok := pickWeighted(weights, env)
	if !ok {
		idx = 0
	}
	moveTo(a, neighbors[idx])
}

// returnToNest steps greedily toward the neighbor with the smallest recorded
// nest distance. Ties go to the first neighbor in iteration order; with no
// finite distance recorded anywhere, the ant is lost and steps randomly.
func returnToNest(a *Ant, env Env) {
	neighbors := env.Graph.Neighbors(a.CurrentNode)
	if len(neighbors) == 0 {
		return
	}

	best := -1
	bestDist := math.MaxInt
	for i, nb := range neighbors {
		node := env.Graph.Node(nb)
		if node == nil || node.DistanceToNest == graph.DistanceUnreachable {
			continue
		}
		if node.DistanceToNest < bestDist {
			bestDist = node.DistanceToNest
			best = i
		}
	}

	if best == -1 {
		best = int(env.Rand.Float64() * float64(len(neighbors)))
		if best >= len(neighbors) {
			best = len(neighbors) - 1
		}
	}
	moveTo(a, neighbors[best])
}

// follow chases food trails with a strongly superlinear preference for
// stronger ones. A failed selection drops the ant back to exploring.
func follow(a *Ant, env Env) {
	neighbors := env.Graph.Neighbors(a.CurrentNode)
	if len(neighbors) == 0 {
		a.State = StateExploring
		return
	}

	weights := make([]float64, len(neighbors))
	for i, nb := range neighbors {
		level := env.Field.Level(a.CurrentNode, nb, pheromone.TrailFood)
		weights[i] = math.Pow(level+FollowBaseline, 3)
	}

	idx, ok := pickWeighted(weights, env)
	if !ok {
		a.State = StateExploring
		return
	}
	moveTo(a, neighbors[idx])
}

// moveTo begins a crossing toward the target node.
func moveTo(a *Ant, target graph.NodeID) {
	a.PreviousNode = a.CurrentNode
	a.CurrentNode = target
	a.MovementProgress = 0
}

// pickWeighted samples an index proportional to the given weights using a
// single uniform draw against the cumulative distribution. Returns false
// when the total weight is zero.
func pickWeighted(weights []float64, env Env) (int, bool) {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0, false
	}

	r := env.Rand.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return i, true
		}
	}
	// Floating-point accumulation can leave r a hair past the last bucket.
	return len(weights) - 1, true
}
