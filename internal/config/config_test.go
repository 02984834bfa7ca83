package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario != "golf" {
		t.Errorf("expected scenario golf, got %s", cfg.Scenario)
	}
	if cfg.Dt <= 0 || cfg.Duration <= 0 {
		t.Error("dt and duration should be positive")
	}
	if cfg.Projectile.Mass != 0.0459 {
		t.Errorf("golf ball mass: got %v", cfg.Projectile.Mass)
	}
	if cfg.Rocket.Engines != 9 {
		t.Errorf("engine count: got %d", cfg.Rocket.Engines)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Scenario = "rocket"
	cfg.Rocket.BurnTime = 123.5
	cfg.Projectile.WindVx = -4

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Scenario != "rocket" {
		t.Errorf("scenario: got %s", loaded.Scenario)
	}
	if loaded.Rocket.BurnTime != 123.5 {
		t.Errorf("burn time: got %v", loaded.Rocket.BurnTime)
	}
	if loaded.Projectile.WindVx != -4 {
		t.Errorf("wind: got %v", loaded.Projectile.WindVx)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("scenario: spring\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// A file that only names a scenario still yields full defaults for
	// every model section.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Spring.Stiffness != 20.0 {
		t.Errorf("partial load lost defaults: stiffness %v", loaded.Spring.Stiffness)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("golf", "windy")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Projectile.WindVx != -8 {
		t.Errorf("windy preset wind: got %v", cfg.Projectile.WindVx)
	}

	if GetPreset("golf", "nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
	if GetPreset("nonexistent", "drive") != nil {
		t.Error("expected nil for unknown scenario")
	}
}

func TestListPresets(t *testing.T) {
	if len(ListPresets("rocket")) == 0 {
		t.Error("expected presets for rocket")
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for unknown scenario")
	}
}
