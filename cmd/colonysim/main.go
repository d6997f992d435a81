// Command colonysim runs the ANTHIVE ant colony simulation.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/talgya/anthive/internal/api"
	"github.com/talgya/anthive/internal/colony"
	"github.com/talgya/anthive/internal/config"
	"github.com/talgya/anthive/internal/entropy"
	"github.com/talgya/anthive/internal/graph"
	"github.com/talgya/anthive/internal/journal"
	"github.com/talgya/anthive/internal/sim"
	"github.com/talgya/anthive/internal/world"
)

func main() {
	configPath := flag.String("config", "anthive.yaml", "path to the YAML config file")
	apiPort := flag.Int("port", 0, "override the HTTP API port (0 = use config)")
	dbPath := flag.String("db", "", "override the SQLite journal path")
	seed := flag.Int64("seed", 0, "override the world seed (0 = use config)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("ANTHIVE — Ant Colony Simulation")

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *apiPort != 0 {
		cfg.APIPort = *apiPort
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
		slog.Info("no seed configured, using wall clock", "seed", cfg.Seed)
	}

	// ── Entropy ───────────────────────────────────────────────────────
	var rng entropy.Source = entropy.Seeded(cfg.Seed)
	if client := entropy.NewClient(cfg.RandomOrgKey); client != nil {
		rng = client
		slog.Info("true randomness enabled (random.org)")
	}

	// ── World ─────────────────────────────────────────────────────────
	slog.Info("generating world...")
	cfg.World.Seed = cfg.Seed
	g, nest := world.Generate(cfg.World)

	for kind, count := range world.CountByType(g) {
		slog.Info("terrain", "type", kind, "count", count)
	}
	slog.Info("world ready", "nodes", g.NodeCount(), "nest", nest)

	// ── Colony ────────────────────────────────────────────────────────
	col := colony.New(nest, cfg.Colony, rng)
	simulation := sim.New(g, col)

	// ── Journal ───────────────────────────────────────────────────────
	var jrnl *journal.Journal
	runID := "ephemeral"
	if cfg.DBPath != "" {
		os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
		jrnl, err = journal.Open(cfg.DBPath, cfg.Seed)
		if err != nil {
			slog.Error("failed to open journal", "error", err)
			os.Exit(1)
		}
		defer jrnl.Close()
		runID = jrnl.RunID()
		slog.Info("journal opened", "path", cfg.DBPath, "run_id", runID)

		simulation.OnEvent = func(e sim.Event) {
			if err := jrnl.RecordEvent(e); err != nil {
				slog.Debug("event record failed", "error", err)
			}
		}
	}

	// ── Engine ────────────────────────────────────────────────────────
	eng := sim.NewEngine()
	eng.Interval = time.Second / time.Duration(cfg.TickHz)
	eng.OnTick = simulation.Step
	eng.OnSecond = func(tick uint64) {
		stats := simulation.CurrentStats()
		if jrnl != nil {
			if err := jrnl.RecordStats(stats, stats.Ledger["food"]); err != nil {
				slog.Debug("stats record failed", "error", err)
			}
		}
		slog.Info("colony report",
			"tick", humanize.Comma(int64(tick)),
			"population", stats.Population,
			"workers", stats.Workers,
			"scouts", stats.Scouts,
			"soldiers", stats.Soldiers,
			"trails", stats.Trails,
			"food_collected", humanize.Comma(int64(stats.Ledger["food"])),
			"food_in_world", fmt.Sprintf("%.1f", stats.FoodInWorld),
		)
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.APIPort > 0 {
		if cfg.AdminKey == "" {
			slog.Warn("admin_key not set — command endpoints will be disabled")
		}
		apiServer := &api.Server{
			Sim:      simulation,
			Eng:      eng,
			Port:     cfg.APIPort,
			RunID:    runID,
			AdminKey: cfg.AdminKey,
		}
		apiServer.Start()
	}

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	food := world.CountByType(g)[graph.TypeName(graph.TypeFoodSource)]
	fmt.Printf("\nThe hive is alive: %d ants at the nest, %d food sources across %d nodes.\n",
		len(col.Ants), food, g.NodeCount())
	if cfg.APIPort > 0 {
		fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.APIPort)
	}
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	eng.Run()

	fmt.Println("Simulation stopped.")
}
