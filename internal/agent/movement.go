package agent

import (
	"github.com/maxogod/AI-Donkey-Kong/internal/config"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

// Movement converts discrete intents into velocity commands.
// It is pure: it never reads or writes the body itself.
type Movement struct {
	cfg config.MovementConfig
}

// NewMovement creates a movement model.
func NewMovement(cfg config.MovementConfig) Movement {
	return Movement{cfg: cfg}
}

// ApplyHorizontal blends the horizontal velocity toward intent*moveSpeed.
// The vertical component is untouched.
func (m Movement) ApplyHorizontal(vel core.Vec2, h core.Horizontal) core.Vec2 {
	target := h.Direction() * m.cfg.MoveSpeed
	vel.X += (target - vel.X) * m.cfg.SlipperyFactor
	return vel
}

// ApplyVertical handles jump and climb intents.
//
// Jump sets the vertical speed only when grounded and not climbing.
// While climbing, every non-jump intent (including still) sets the vertical
// speed to intent*climbSpeed. Anything else is a no-op.
func (m Movement) ApplyVertical(vel core.Vec2, v core.Vertical, grounded, climbing bool) core.Vec2 {
	switch v {
	case core.VerticalJump:
		if grounded && !climbing {
			vel.Y = m.cfg.JumpSpeed
		}
	default:
		if climbing {
			vel.Y = v.ClimbDirection() * m.cfg.ClimbSpeed
		}
	}
	return vel
}

// GravityScale returns the gravity scale for the climbing state.
func (m Movement) GravityScale(climbing bool) float64 {
	if climbing {
		return 0
	}
	return m.cfg.GravityScale
}
