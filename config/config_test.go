package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Genome.Size != 1000 {
		t.Errorf("genome.size = %d, want 1000", cfg.Genome.Size)
	}
	if cfg.Growth.RootConnectionDecay != 0.9 {
		t.Errorf("growth.root_connection_decay = %v, want 0.9", cfg.Growth.RootConnectionDecay)
	}
	if cfg.Light.LeafAbsorbRate != 0.4 || cfg.Light.TrunkAbsorbRate != 0.2 {
		t.Errorf("absorb rates = %v/%v, want 0.4/0.2", cfg.Light.LeafAbsorbRate, cfg.Light.TrunkAbsorbRate)
	}
	if cfg.Derived.Cells != cfg.World.Width*cfg.World.Height {
		t.Errorf("Derived.Cells = %d, want %d", cfg.Derived.Cells, cfg.World.Width*cfg.World.Height)
	}
	if cfg.Derived.DefaultMinimum != cfg.World.Width/10 {
		t.Errorf("Derived.DefaultMinimum = %d, want %d", cfg.Derived.DefaultMinimum, cfg.World.Width/10)
	}
	if cfg.Derived.MaxLeafAbsorbed != cfg.Light.LeafAbsorbRate {
		t.Errorf("Derived.MaxLeafAbsorbed = %v, want %v", cfg.Derived.MaxLeafAbsorbed, cfg.Light.LeafAbsorbRate)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("world:\n  width: 10\n  height: 5\nlifecycle:\n  seed_drift: 0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.World.Width != 10 || cfg.World.Height != 5 {
		t.Errorf("world = %dx%d, want 10x5", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Lifecycle.SeedDrift != 0 {
		t.Errorf("seed_drift = %d, want 0", cfg.Lifecycle.SeedDrift)
	}
	// Untouched sections keep their defaults.
	if cfg.Genome.Size != 1000 {
		t.Errorf("genome.size = %d, want default 1000", cfg.Genome.Size)
	}
	if cfg.Derived.Cells != 50 {
		t.Errorf("Derived.Cells = %d, want 50", cfg.Derived.Cells)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.World.Width = 0 }},
		{"negative height", func(c *Config) { c.World.Height = -1 }},
		{"empty genome", func(c *Config) { c.Genome.Size = 0 }},
		{"no clusters", func(c *Config) { c.Response.ClusterCount = 0 }},
		{"mutation above one", func(c *Config) { c.Genome.MutationRate = 1.5 }},
		{"negative leaf rate", func(c *Config) { c.Light.LeafAbsorbRate = -0.1 }},
		{"decay of one", func(c *Config) { c.Growth.RootConnectionDecay = 1 }},
		{"negative growth cost", func(c *Config) { c.Growth.CellGrowthCost = -1 }},
		{"negative max growths", func(c *Config) { c.Growth.MaxGrowthsPerTick = -1 }},
		{"negative minimum", func(c *Config) { c.Population.Minimum = -3 }},
		{"negative drift", func(c *Config) { c.Lifecycle.SeedDrift = -1 }},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Seed = 42
	cfg.Energy.SunPower = 2.5

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Seed != 42 {
		t.Errorf("seed = %d, want 42", loaded.Seed)
	}
	if loaded.Energy.SunPower != 2.5 {
		t.Errorf("sun_power = %v, want 2.5", loaded.Energy.SunPower)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	t.Cleanup(func() { global = saved })

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}

func TestDefaultIsFreshCopy(t *testing.T) {
	a := Default()
	a.World.Width = 3
	if b := Default(); b.World.Width == 3 {
		t.Error("Default() returned shared state")
	}
}
