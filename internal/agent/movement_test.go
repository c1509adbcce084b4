package agent

import (
	"testing"

	"github.com/maxogod/AI-Donkey-Kong/internal/config"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

func TestApplyHorizontalIsSlippery(t *testing.T) {
	cfg := config.DefaultAgentConfig().Movement
	m := NewMovement(cfg)

	vel := m.ApplyHorizontal(core.V(0, 2), core.HorizontalRight)
	if expected := cfg.MoveSpeed * cfg.SlipperyFactor; !approx(vel.X, expected) {
		t.Errorf("vel.X = %v, expected %v", vel.X, expected)
	}
	if vel.Y != 2 {
		t.Errorf("vel.Y = %v, expected 2 (untouched)", vel.Y)
	}

	for i := 0; i < 100; i++ {
		vel = m.ApplyHorizontal(vel, core.HorizontalLeft)
	}
	if !approx(vel.X, -cfg.MoveSpeed) {
		t.Errorf("vel.X after converging = %v, expected %v", vel.X, -cfg.MoveSpeed)
	}
}

func TestJumpGating(t *testing.T) {
	cfg := config.DefaultAgentConfig().Movement
	m := NewMovement(cfg)
	start := core.V(0.5, -1.25)

	tests := []struct {
		grounded, climbing bool
		expectedY          float64
	}{
		{false, false, start.Y},
		{false, true, start.Y},
		{true, true, start.Y},
		{true, false, cfg.JumpSpeed},
	}

	for _, tc := range tests {
		vel := m.ApplyVertical(start, core.VerticalJump, tc.grounded, tc.climbing)
		if vel.Y != tc.expectedY || vel.X != start.X {
			t.Errorf("jump grounded=%v climbing=%v: vel = %v, expected (%v, %v)",
				tc.grounded, tc.climbing, vel, start.X, tc.expectedY)
		}
	}
}

func TestClimbGating(t *testing.T) {
	cfg := config.DefaultAgentConfig().Movement
	m := NewMovement(cfg)
	start := core.V(0, -3)

	tests := []struct {
		intent    core.Vertical
		climbing  bool
		expectedY float64
	}{
		{core.VerticalClimbUp, false, -3},
		{core.VerticalClimbDown, false, -3},
		{core.VerticalStill, false, -3},
		{core.VerticalClimbUp, true, cfg.ClimbSpeed},
		{core.VerticalClimbDown, true, -cfg.ClimbSpeed},
		{core.VerticalStill, true, 0},
	}

	for _, tc := range tests {
		vel := m.ApplyVertical(start, tc.intent, true, tc.climbing)
		if vel.Y != tc.expectedY {
			t.Errorf("%s climbing=%v: vel.Y = %v, expected %v", tc.intent, tc.climbing, vel.Y, tc.expectedY)
		}
	}
}

func TestGravityScale(t *testing.T) {
	cfg := config.DefaultAgentConfig().Movement
	m := NewMovement(cfg)
	if got := m.GravityScale(true); got != 0 {
		t.Errorf("GravityScale(true) = %v, expected 0", got)
	}
	if got := m.GravityScale(false); got != cfg.GravityScale {
		t.Errorf("GravityScale(false) = %v, expected %v", got, cfg.GravityScale)
	}
}
