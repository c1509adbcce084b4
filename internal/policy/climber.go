package policy

import (
	"fmt"
	"math"

	"github.com/maxogod/AI-Donkey-Kong/internal/agent"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
	"github.com/maxogod/AI-Donkey-Kong/internal/registry"
)

func init() {
	registry.Register("climber", func() registry.Policy { return NewClimber() })
}

// Thresholds in normalized observation units (world units / max distance).
const (
	alignTolerance = 0.0075 // Close enough to a ladder's axis to climb
	aboveMargin    = 0.05   // Ladder center must be this far above to be a target
	sameLevelDY    = 0.01   // Ladders closer than this vertically share a floor
	hazardReachX   = 0.075  // Hazards closer than this horizontally trigger a jump
	hazardReachY   = 0.03
	climbGainY     = 0.1 // Height a climb must gain before it counts as done
	stuckTicks     = 100 // Give up a climb that never started after this many ticks
)

type climberMode int

const (
	modeWalk climberMode = iota
	modeClimb
)

// Climber is a scripted ladder-seeker. It walks to the nearest ladder
// above it, climbs to the top and repeats; with no ladder above it heads
// left along the top floor, where the reference level keeps its goal. It
// jumps over hazards rolling at it.
type Climber struct {
	s      slots
	mode   climberMode
	startY float64
	ticks  int
}

// NewClimber creates a climber policy.
func NewClimber() *Climber {
	return &Climber{s: newSlots(nil)}
}

func (p *Climber) ID() string    { return "climber" }
func (p *Climber) Title() string { return "Ladder Climber" }

// Reset implements registry.Policy.
func (p *Climber) Reset(schema []string, _ int64) {
	p.s = newSlots(schema)
	p.mode = modeWalk
	p.startY = 0
	p.ticks = 0
}

// Act implements registry.Policy.
func (p *Climber) Act(obs agent.Observation) core.ActionPair {
	posY := p.s.get(obs, "pos.y", 0)
	grounded := p.s.get(obs, "grounded", 0) > 0.5
	climbing := p.s.get(obs, "climbing", 0) > 0.5

	if p.mode == modeClimb {
		p.ticks++
		switch {
		case !climbing && posY > p.startY+climbGainY:
			p.mode = modeWalk // Made it to the top
		case !climbing && p.ticks > stuckTicks:
			p.mode = modeWalk // Never got on
		default:
			return core.ActionPair{Horizontal: core.HorizontalStill, Vertical: core.VerticalClimbUp}
		}
	}

	if grounded && !climbing && p.hazardIncoming(obs) {
		return core.ActionPair{Horizontal: core.HorizontalStill, Vertical: core.VerticalJump}
	}

	dx, ok := p.ladderAbove(obs)
	if !ok {
		return core.ActionPair{Horizontal: core.HorizontalLeft, Vertical: core.VerticalStill}
	}
	if math.Abs(dx) <= alignTolerance {
		p.mode = modeClimb
		p.startY = posY
		p.ticks = 0
		return core.ActionPair{Horizontal: core.HorizontalStill, Vertical: core.VerticalClimbUp}
	}
	if dx > 0 {
		return core.ActionPair{Horizontal: core.HorizontalRight, Vertical: core.VerticalStill}
	}
	return core.ActionPair{Horizontal: core.HorizontalLeft, Vertical: core.VerticalStill}
}

// ladderAbove returns the horizontal offset to the lowest ladder whose
// center is above the agent, so the next floor up comes first. Ladders at
// the same height are ranked by horizontal distance.
func (p *Climber) ladderAbove(obs agent.Observation) (float64, bool) {
	bestDX, bestDY, found := 0.0, math.Inf(1), false
	for i := 0; ; i++ {
		dxKey, dyKey := fmt.Sprintf("ladder%d.dx", i), fmt.Sprintf("ladder%d.dy", i)
		if _, ok := p.s[dxKey]; !ok {
			break
		}
		dx, dy := p.s.get(obs, dxKey, agent.SentinelDistance), p.s.get(obs, dyKey, agent.SentinelDistance)
		if dx == agent.SentinelDistance && dy == agent.SentinelDistance {
			continue
		}
		if dy <= aboveMargin {
			continue
		}
		lower := dy < bestDY-sameLevelDY
		tie := math.Abs(dy-bestDY) <= sameLevelDY && math.Abs(dx) < math.Abs(bestDX)
		if !found || lower || tie {
			bestDX, bestDY, found = dx, dy, true
		}
	}
	return bestDX, found
}

// hazardIncoming reports a hazard on the agent's level that is close and
// moving toward it.
func (p *Climber) hazardIncoming(obs agent.Observation) bool {
	for i := 0; ; i++ {
		dxKey := fmt.Sprintf("hazard%d.dx", i)
		if _, ok := p.s[dxKey]; !ok {
			return false
		}
		dx := p.s.get(obs, dxKey, agent.SentinelDistance)
		dy := p.s.get(obs, fmt.Sprintf("hazard%d.dy", i), agent.SentinelDistance)
		vx := p.s.get(obs, fmt.Sprintf("hazard%d.vx", i), agent.SentinelVelocity)
		if dx == agent.SentinelDistance && dy == agent.SentinelDistance {
			continue
		}
		approaching := (dx > 0 && vx < 0) || (dx < 0 && vx > 0)
		if approaching && math.Abs(dx) < hazardReachX && math.Abs(dy) < hazardReachY {
			return true
		}
	}
}
