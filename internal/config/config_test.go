package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(default) failed: %v", err)
	}

	def := DefaultAgentConfig()
	if cfg.Movement != def.Movement {
		t.Errorf("Movement = %+v, expected %+v", cfg.Movement, def.Movement)
	}
	if cfg.Rewards != def.Rewards {
		t.Errorf("Rewards = %+v, expected %+v", cfg.Rewards, def.Rewards)
	}
	if len(cfg.Zones) != len(def.Zones) {
		t.Fatalf("len(Zones) = %d, expected %d", len(cfg.Zones), len(def.Zones))
	}
	for i := range cfg.Zones {
		if cfg.Zones[i] != def.Zones[i] {
			t.Errorf("Zones[%d] = %+v, expected %+v", i, cfg.Zones[i], def.Zones[i])
		}
	}
	if cfg.Observation != def.Observation {
		t.Errorf("Observation = %+v, expected %+v", cfg.Observation, def.Observation)
	}
}

func TestValidateDefaults(t *testing.T) {
	if err := Validate(DefaultAgentConfig()); err != nil {
		t.Errorf("Validate(defaults) = %v, expected nil", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AgentConfig)
	}{
		{"non-increasing bonus", func(c *AgentConfig) { c.Zones[2].Bonus = c.Zones[1].Bonus }},
		{"duplicate zone", func(c *AgentConfig) { c.Zones[1].Name = c.Zones[0].Name }},
		{"zone uses goal name", func(c *AgentConfig) { c.Zones[0].Name = c.Episode.GoalName }},
		{"unknown stuck axes", func(c *AgentConfig) { c.Idle.StuckAxes = "xor" }},
		{"zero max distance", func(c *AgentConfig) { c.Observation.MaxDistance = 0 }},
		{"positive death penalty", func(c *AgentConfig) { c.Rewards.DeathPenalty = 1 }},
		{"empty play area", func(c *AgentConfig) { c.PlayArea.MaxX = c.PlayArea.MinX }},
		{"negative slots", func(c *AgentConfig) { c.Observation.HazardSlots = -1 }},
		{"inverted spawn window", func(c *AgentConfig) { c.Arena.Barrels.MinSpawnSeconds = 10 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultAgentConfig()
			tc.mutate(&cfg)
			err := Validate(cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	doc := []byte("movement:\n  move_speed: 5\npolicies:\n  rearm_on_reenter: true\n")
	if err := os.WriteFile(path, doc, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Movement.MoveSpeed != 5 {
		t.Errorf("MoveSpeed = %f, expected 5", cfg.Movement.MoveSpeed)
	}
	if cfg.Movement.JumpSpeed != 7 {
		t.Errorf("JumpSpeed = %f, expected default 7", cfg.Movement.JumpSpeed)
	}
	if !cfg.Policies.RearmOnReenter {
		t.Error("RearmOnReenter should be overridden to true")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("idle:\n  stuck_axes: sometimes\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load(invalid) = %v, expected ErrInvalidConfig", err)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultAgentConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Arena.Difficulty.Enabled || cfg.Arena.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset = %+v", cfg.Arena.Difficulty)
	}

	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Arena.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestCurriculumLevel(t *testing.T) {
	cm := NewCurriculumManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "episodes", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0, SpawnReduction: 0.5},
	})

	tests := []struct {
		episodes int
		expected float64
	}{
		{0, 0.2},
		{50, 0.6},
		{100, 1.0},
		{1000, 1.0},
	}
	for _, tc := range tests {
		if got := cm.Level(tc.episodes, 0); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Level(%d) = %f, expected %f", tc.episodes, got, tc.expected)
		}
	}

	if got := cm.RollSpeed(3, 1.0); got != 6 {
		t.Errorf("RollSpeed(3, 1) = %f, expected 6", got)
	}
	if got := cm.SpawnInterval(8, 1.0); got != 4 {
		t.Errorf("SpawnInterval(8, 1) = %f, expected 4", got)
	}
}

func TestCurriculumDisabled(t *testing.T) {
	cm := NewCurriculumManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.4,
		Progression:  ProgressionConfig{Type: "wins", MaxAt: 10},
	})
	if got := cm.Level(100, 100); got != 0.4 {
		t.Errorf("Level() = %f, expected initial level 0.4", got)
	}
}
