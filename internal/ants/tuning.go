package ants

// Behavior tuning constants. Values are per-second rates unless noted;
// the simulation scales them by dt so any tick cadence behaves the same.
const (
	// BaseSpeed is movement progress per second at role speed multiplier 1.0
	// (a worker crosses an edge in half a second).
	BaseSpeed = 2.0

	// Fatigue accrual per second, and the carrying surcharge.
	FatigueRate         = 0.05
	FatigueRateCarrying = 0.1

	// FatigueLimit forces an ant into resting from any state.
	FatigueLimit = 10.0

	// RestRecovery is fatigue shed per second while resting.
	RestRecovery = 0.2

	// MemoryPenalty softly discourages revisiting remembered nodes.
	// Not a hard ban: a remembered node can still win the draw.
	MemoryPenalty = 0.1

	// Exploration weight shape: level*ExploreTrailScale + ExploreBaseWeight.
	ExploreTrailScale = 0.5
	ExploreBaseWeight = 0.5

	// Node-type biases during exploration.
	FoodSourceBias = 3.0
	NestAvoidBias  = 0.5 // Empty-handed ants shy away from an early return
	NestCarryBias  = 3.0

	// FollowBaseline keeps follow weights positive where no trail exists:
	// weight = (foodLevel + FollowBaseline)^3.
	FollowBaseline = 0.1

	// ExploreDepositChance is the per-tick probability an exploring ant
	// marks the edge it is crossing.
	ExploreDepositChance = 0.1

	// Trail strengths per deposit.
	FoodTrailStrength        = 0.5
	ExplorationTrailStrength = 0.1
)
