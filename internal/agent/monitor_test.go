package agent

import (
	"testing"

	"github.com/maxogod/AI-Donkey-Kong/internal/config"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

func TestIdleMonitorFiresOncePerCrossing(t *testing.T) {
	cfg := config.IdleConfig{ThresholdX: 0.01, ThresholdY: 0.01, LimitTicks: 5, StuckAxes: config.StuckAxesAnd}
	m := NewIdleMonitor(cfg, core.V(0, 0))

	fired := 0
	for i := 0; i < 18; i++ {
		if m.Tick(core.V(0, 0)) {
			fired++
			if m.Counter() != 0 {
				t.Errorf("Counter() after firing = %d, expected 0", m.Counter())
			}
		}
	}
	// 6 stuck ticks per crossing.
	if fired != 3 {
		t.Errorf("fired = %d, expected 3", fired)
	}
}

func TestIdleMonitorMovementResets(t *testing.T) {
	cfg := config.IdleConfig{ThresholdX: 0.01, ThresholdY: 0.01, LimitTicks: 5, StuckAxes: config.StuckAxesAnd}
	m := NewIdleMonitor(cfg, core.V(0, 0))

	for i := 0; i < 4; i++ {
		m.Tick(core.V(0, 0))
	}
	m.Tick(core.V(1, 0))
	if m.Counter() != 0 {
		t.Errorf("Counter() after moving = %d, expected 0", m.Counter())
	}
}

func TestIdleMonitorAxisCombinator(t *testing.T) {
	// Moving only along Y: stuck on X, not on Y.
	tests := []struct {
		axes     string
		expected int
	}{
		{config.StuckAxesAnd, 0},
		{config.StuckAxesOr, 3},
	}

	for _, tc := range tests {
		t.Run(tc.axes, func(t *testing.T) {
			cfg := config.IdleConfig{ThresholdX: 0.01, ThresholdY: 0.01, LimitTicks: 10, StuckAxes: tc.axes}
			m := NewIdleMonitor(cfg, core.V(0, 0))
			for i := 1; i <= 3; i++ {
				m.Tick(core.V(0, float64(i)))
			}
			if m.Counter() != tc.expected {
				t.Errorf("Counter() = %d, expected %d", m.Counter(), tc.expected)
			}
		})
	}
}

func TestProgressMonitor(t *testing.T) {
	m := NewProgressMonitor(config.ProgressConfig{Threshold: 1}, 0)

	steps := []struct {
		x          float64
		fires      bool
		checkpoint float64
	}{
		{0.5, false, 0},
		{1.0, false, 0},
		{1.2, true, 1.2},
		{1.9, false, 1.2},
		{0.1, true, 0.1}, // leftward progress counts too
	}

	for i, s := range steps {
		if got := m.Tick(core.V(s.x, 0)); got != s.fires {
			t.Errorf("step %d: Tick(%v) = %v, expected %v", i, s.x, got, s.fires)
		}
		if m.Checkpoint() != s.checkpoint {
			t.Errorf("step %d: Checkpoint() = %v, expected %v", i, m.Checkpoint(), s.checkpoint)
		}
	}
}
