package arena

import "github.com/maxogod/AI-Donkey-Kong/internal/core"

// Player body size in world units.
const (
	PlayerWidth  = 0.8
	PlayerHeight = 1.0
)

// Body is the player's rigid body. It implements agent.Body; the arena
// integrates it once per tick.
type Body struct {
	pos          core.Vec2 // Center
	vel          core.Vec2
	gravityScale float64
}

// NewBody creates a body at p.
func NewBody(p core.Vec2, gravityScale float64) *Body {
	return &Body{pos: p, gravityScale: gravityScale}
}

func (b *Body) Position() core.Vec2 { return b.pos }
func (b *Body) Velocity() core.Vec2 { return b.vel }

// SetVelocity sets the velocity used by the next integration.
func (b *Body) SetVelocity(v core.Vec2) { b.vel = v }

// SetGravityScale sets the multiplier applied to world gravity.
func (b *Body) SetGravityScale(scale float64) { b.gravityScale = scale }

// GravityScale returns the current gravity multiplier.
func (b *Body) GravityScale() float64 { return b.gravityScale }

// Teleport moves the body without physics and zeroes its velocity.
func (b *Body) Teleport(p core.Vec2) {
	b.pos = p
	b.vel = core.Vec2{}
}

// Bounds returns the collision box.
func (b *Body) Bounds() core.Rect {
	return core.RectAround(b.pos, PlayerWidth, PlayerHeight)
}

func (b *Body) bottom() float64 {
	return b.pos.Y - PlayerHeight/2
}
