// Package colony owns the agent population, the pheromone field, and the
// resource ledger, and drives them forward one tick at a time.
package colony

import (
	"log/slog"
	"math"

	"github.com/talgya/anthive/internal/ants"
	"github.com/talgya/anthive/internal/entropy"
	"github.com/talgya/anthive/internal/graph"
	"github.com/talgya/anthive/internal/pheromone"
)

// Config holds population and field parameters.
type Config struct {
	MaxAnts     int                     `yaml:"max_ants"`
	SpawnRate   float64                 `yaml:"spawn_rate"` // Ants per second
	DecayRate   float64                 `yaml:"decay_rate"` // Pheromone decay per second
	InitialAnts int                     `yaml:"initial_ants"`
	Ratios      [ants.NumRoles]float64  `yaml:"role_ratios"` // Worker, scout, soldier
}

// DefaultConfig returns the baseline colony parameters.
func DefaultConfig() Config {
	return Config{
		MaxAnts:     50,
		SpawnRate:   0.5,
		DecayRate:   0.05,
		InitialAnts: 10,
		Ratios:      [ants.NumRoles]float64{0.7, 0.2, 0.1},
	}
}

// Colony is the aggregate of ants, trails, and gathered resources.
// It is the only owner of the ant collection; ants mutate only the graph
// nodes they occupy and the pheromone field.
type Colony struct {
	NestID graph.NodeID
	Ants   []*ants.Ant
	Field  *pheromone.Field
	Ledger map[string]int

	cfg        Config
	spawner    *ants.Spawner
	rand       entropy.Source
	spawnTimer float64
}

// New creates a colony at the given nest with the initial population.
func New(nest graph.NodeID, cfg Config, rand entropy.Source) *Colony {
	c := &Colony{
		NestID:  nest,
		Field:   pheromone.NewField(),
		Ledger:  make(map[string]int),
		cfg:     cfg,
		spawner: ants.NewSpawner(),
		rand:    rand,
	}
	for i := 0; i < cfg.InitialAnts && i < cfg.MaxAnts; i++ {
		c.SpawnAnt()
	}
	return c
}

// Config returns the colony's configuration.
func (c *Colony) Config() Config {
	return c.cfg
}

// Tick advances the colony by dt seconds: decay the field, update every ant
// in collection order, then spawn at most one new ant when below the cap.
// Ant order is fixed: deposits made by earlier ants are visible to later
// ants within the same tick. Returns the spawned ant, if any.
func (c *Colony) Tick(dt float64, g *graph.Graph) *ants.Ant {
	c.Field.Decay(dt, c.cfg.DecayRate)

	env := ants.Env{
		Graph:   g,
		Field:   c.Field,
		Rand:    c.rand,
		Deliver: c.AddResource,
	}
	for _, a := range c.Ants {
		ants.Update(a, dt, env)
	}

	if len(c.Ants) >= c.cfg.MaxAnts || c.cfg.SpawnRate <= 0 {
		return nil
	}
	c.spawnTimer += dt
	if c.spawnTimer < 1/c.cfg.SpawnRate {
		return nil
	}
	c.spawnTimer = 0
	return c.SpawnAnt()
}

// SpawnAnt creates one ant at the nest, choosing the role with the largest
// population deficit against the configured ratios.
func (c *Colony) SpawnAnt() *ants.Ant {
	role := c.chooseSpawnRole()
	a := c.spawner.Spawn(role, c.NestID)
	c.Ants = append(c.Ants, a)
	slog.Debug("ant spawned", "id", a.ID, "role", ants.RoleName(role), "population", len(c.Ants))
	return a
}

// chooseSpawnRole computes desired per-role counts as floor(population ×
// ratio) and picks the role with the strictly largest deficit. Ties keep the
// earlier role in canonical order (worker, scout, soldier); with no deficit
// at all the colony falls back to workers.
func (c *Colony) chooseSpawnRole() ants.Role {
	total := len(c.Ants)
	var counts [ants.NumRoles]int
	for _, a := range c.Ants {
		counts[a.Role]++
	}

	role := ants.RoleWorker
	bestDeficit := 0
	for r := 0; r < ants.NumRoles; r++ {
		desired := int(math.Floor(float64(total) * c.cfg.Ratios[r]))
		if deficit := desired - counts[r]; deficit > bestDeficit {
			bestDeficit = deficit
			role = ants.Role(r)
		}
	}
	return role
}

// AddResource credits gathered resources to the colony ledger. Never fails.
func (c *Colony) AddResource(kind string, amount int) {
	c.Ledger[kind] += amount
}

// Deposit is a pass-through to the pheromone field for external actors
// (player commands) scoped to this colony's field.
func (c *Colony) Deposit(from, to graph.NodeID, kind pheromone.TrailType, amount float64, by string) {
	c.Field.Deposit(from, to, kind, amount, by)
}

// TrailLevel reads the colony's pheromone field.
func (c *Colony) TrailLevel(from, to graph.NodeID, kind pheromone.TrailType) float64 {
	return c.Field.Level(from, to, kind)
}

// RoleCounts returns the current population per role.
func (c *Colony) RoleCounts() [ants.NumRoles]int {
	var counts [ants.NumRoles]int
	for _, a := range c.Ants {
		counts[a.Role]++
	}
	return counts
}
