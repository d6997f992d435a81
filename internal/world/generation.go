// Package world generates the initial environment graph using layered
// simplex noise: a height field shapes node elevation and a second layer
// places food sources. The core simulation only requires a populated graph;
// this package exists so the binary has a world to run.
package world

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/anthive/internal/graph"
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Width   int     `yaml:"width"`   // Grid columns
	Depth   int     `yaml:"depth"`   // Grid rows
	Spacing float64 `yaml:"spacing"` // World units between adjacent nodes
	Seed    int64   `yaml:"seed"`    // 0 = random

	// FoodThreshold is the noise level above which a node becomes a food
	// source; lower values mean a richer world.
	FoodThreshold float64 `yaml:"food_threshold"`

	// HeightScale is the elevation amplitude in world units.
	HeightScale float64 `yaml:"height_scale"`
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:         16,
		Depth:         16,
		Spacing:       2.0,
		FoodThreshold: 0.78,
		HeightScale:   1.5,
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:         6,
		Depth:         6,
		Spacing:       2.0,
		Seed:          42,
		FoodThreshold: 0.7,
		HeightScale:   1.0,
	}
}

// Generate creates a grid environment graph and returns it with the nest
// node id. Deterministic for a fixed seed. Nest distances are precomputed so
// agents can navigate home immediately.
func Generate(cfg GenConfig) (*graph.Graph, graph.NodeID) {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	heightNoise := opensimplex.NewNormalized(seed)
	foodNoise := opensimplex.NewNormalized(seed + 1)

	g := graph.New()
	nestX, nestZ := cfg.Width/2, cfg.Depth/2

	ids := make([]graph.NodeID, cfg.Width*cfg.Depth)
	for z := 0; z < cfg.Depth; z++ {
		for x := 0; x < cfg.Width; x++ {
			// Sample noise in continuous space; 0.15 keeps features a few
			// nodes wide at default spacing.
			nx, nz := float64(x)*0.15, float64(z)*0.15
			height := heightNoise.Eval2(nx, nz)

			spec := graph.NodeSpec{
				Position: graph.Vec3{
					X: float64(x) * cfg.Spacing,
					Y: height * cfg.HeightScale,
					Z: float64(z) * cfg.Spacing,
				},
			}

			switch {
			case x == nestX && z == nestZ:
				spec.Type = graph.TypeNest
			case foodNoise.Eval2(nx, nz) > cfg.FoodThreshold:
				spec.Type = graph.TypeFoodSource
				spec.Size = foodTier(foodNoise.Eval2(nx, nz), cfg.FoodThreshold)
			}

			ids[z*cfg.Width+x] = g.AddNode(spec)
		}
	}

	// 4-neighbor lattice.
	for z := 0; z < cfg.Depth; z++ {
		for x := 0; x < cfg.Width; x++ {
			if x > 0 {
				g.AddEdge(ids[z*cfg.Width+x-1], ids[z*cfg.Width+x])
			}
			if z > 0 {
				g.AddEdge(ids[(z-1)*cfg.Width+x], ids[z*cfg.Width+x])
			}
		}
	}

	// A world with nothing to forage is useless; when the noise layer
	// produced no food, promote a corner node.
	nest := ids[nestZ*cfg.Width+nestX]
	hasFood := false
	for _, id := range ids {
		if g.Node(id).Type == graph.TypeFoodSource {
			hasFood = true
			break
		}
	}
	if !hasFood {
		g.Node(ids[0]).Type = graph.TypeFoodSource
	}

	// Food sources start fully stocked.
	for _, id := range g.NodeIDs() {
		if n := g.Node(id); n.Type == graph.TypeFoodSource {
			n.Resources = n.Capacity
		}
	}

	g.CalculateDistances(nest)
	return g, nest
}

// foodTier maps how far above the threshold the noise sits to a size tier.
func foodTier(noise, threshold float64) int {
	excess := (noise - threshold) / (1 - threshold)
	switch {
	case excess > 0.66:
		return 3
	case excess > 0.33:
		return 2
	default:
		return 1
	}
}

// CountByType tallies node types, for startup logging.
func CountByType(g *graph.Graph) map[string]int {
	counts := make(map[string]int)
	for _, id := range g.NodeIDs() {
		counts[graph.TypeName(g.Node(id).Type)]++
	}
	return counts
}
