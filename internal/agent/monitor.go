package agent

import (
	"math"

	"github.com/maxogod/AI-Donkey-Kong/internal/config"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

// IdleMonitor counts consecutive stuck ticks.
type IdleMonitor struct {
	cfg     config.IdleConfig
	last    core.Vec2
	counter int
}

// NewIdleMonitor creates an idle monitor sampling from start.
func NewIdleMonitor(cfg config.IdleConfig, start core.Vec2) *IdleMonitor {
	return &IdleMonitor{cfg: cfg, last: start}
}

// Reset clears the counter and resamples from start.
func (m *IdleMonitor) Reset(start core.Vec2) {
	m.last = start
	m.counter = 0
}

// Counter returns the current number of consecutive stuck ticks.
func (m *IdleMonitor) Counter() int {
	return m.counter
}

// Tick samples the position and reports whether the idle limit was exceeded.
// Crossing the limit resets the counter, so each crossing fires once.
func (m *IdleMonitor) Tick(pos core.Vec2) bool {
	stuckX := math.Abs(pos.X-m.last.X) < m.cfg.ThresholdX
	stuckY := math.Abs(pos.Y-m.last.Y) < m.cfg.ThresholdY
	m.last = pos

	var stuck bool
	if m.cfg.StuckAxes == config.StuckAxesOr {
		stuck = stuckX || stuckY
	} else {
		stuck = stuckX && stuckY
	}

	if !stuck {
		m.counter = 0
		return false
	}

	m.counter++
	if m.counter > m.cfg.LimitTicks {
		m.counter = 0
		return true
	}
	return false
}

// ProgressMonitor fires whenever the agent gets far enough horizontally from
// its last checkpoint. Direction does not matter.
type ProgressMonitor struct {
	threshold  float64
	checkpoint float64
}

// NewProgressMonitor creates a progress monitor anchored at startX.
func NewProgressMonitor(cfg config.ProgressConfig, startX float64) *ProgressMonitor {
	return &ProgressMonitor{threshold: cfg.Threshold, checkpoint: startX}
}

// Reset re-anchors the checkpoint.
func (m *ProgressMonitor) Reset(startX float64) {
	m.checkpoint = startX
}

// Checkpoint returns the current horizontal checkpoint.
func (m *ProgressMonitor) Checkpoint() float64 {
	return m.checkpoint
}

// Tick reports whether a milestone was passed and advances the checkpoint if so.
func (m *ProgressMonitor) Tick(pos core.Vec2) bool {
	if math.Abs(pos.X-m.checkpoint) > m.threshold {
		m.checkpoint = pos.X
		return true
	}
	return false
}
