package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file treated as error: %v", err)
	}
	def := Default()
	if cfg.TickHz != def.TickHz || cfg.Colony.MaxAnts != def.Colony.MaxAnts {
		t.Fatalf("defaults not returned: %+v", cfg)
	}
}

func TestLoadOverridesLayerOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anthive.yaml")
	body := `
tick_hz: 20
colony:
  max_ants: 5
  spawn_rate: 1.0
  decay_rate: 0.1
  initial_ants: 2
  role_ratios: [0.5, 0.3, 0.2]
world:
  width: 8
  depth: 8
  spacing: 2.0
  food_threshold: 0.6
  height_scale: 1.0
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TickHz != 20 {
		t.Fatalf("tick_hz = %d, want 20", cfg.TickHz)
	}
	if cfg.Colony.MaxAnts != 5 || cfg.Colony.Ratios[1] != 0.3 {
		t.Fatalf("colony overrides not applied: %+v", cfg.Colony)
	}
	if cfg.World.Width != 8 {
		t.Fatalf("world overrides not applied: %+v", cfg.World)
	}
	// Untouched keys keep their defaults.
	if cfg.APIPort != Default().APIPort {
		t.Fatalf("api_port = %d, want default", cfg.APIPort)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"zero tick rate": "tick_hz: 0\n",
		"tiny world":     "world:\n  width: 1\n  depth: 1\n",
		"no ants":        "colony:\n  max_ants: 0\n",
		"bad yaml":       "colony: [\n",
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadExpandsEnvInAdminKey(t *testing.T) {
	t.Setenv("ANTHIVE_TEST_KEY", "sekrit")
	path := filepath.Join(t.TempDir(), "anthive.yaml")
	if err := os.WriteFile(path, []byte("admin_key: ${ANTHIVE_TEST_KEY}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AdminKey != "sekrit" {
		t.Fatalf("admin_key = %q, want expanded env value", cfg.AdminKey)
	}
}
