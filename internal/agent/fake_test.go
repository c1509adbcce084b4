package agent

import (
	"math"

	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// fakeWorld is both World and Body. Tests move it by writing pos directly.
type fakeWorld struct {
	pos      core.Vec2
	vel      core.Vec2
	gravity  float64
	grounded bool
	hazards  []Collider
	filter   core.FilterTable

	gravityLog  []float64
	velocityLog []core.Vec2
	teleports   []core.Vec2
	raycasts    int
}

func (w *fakeWorld) RaycastDown(origin core.Vec2, maxDistance float64, mask core.Mask) (Hit, bool) {
	w.raycasts++
	if !w.grounded || !mask.Has(core.CategoryGround) {
		return Hit{}, false
	}
	return Hit{
		Point:    origin.Add(core.V(0, -maxDistance/2)),
		Distance: maxDistance / 2,
		Collider: Collider{ID: "floor", Category: core.CategoryGround},
	}, true
}

func (w *fakeWorld) OverlapCircle(center core.Vec2, radius float64, mask core.Mask) []Collider {
	var out []Collider
	for _, c := range w.hazards {
		if mask.Has(c.Category) && center.Dist(c.Position) <= radius {
			out = append(out, c)
		}
	}
	return out
}

func (w *fakeWorld) IgnoreCollision(a, b core.Category, ignore bool) {
	w.filter.Set(a, b, ignore)
}

func (w *fakeWorld) Position() core.Vec2 { return w.pos }
func (w *fakeWorld) Velocity() core.Vec2 { return w.vel }

func (w *fakeWorld) SetVelocity(v core.Vec2) {
	w.vel = v
	w.velocityLog = append(w.velocityLog, v)
}

func (w *fakeWorld) SetGravityScale(scale float64) {
	w.gravity = scale
	w.gravityLog = append(w.gravityLog, scale)
}

func (w *fakeWorld) Teleport(p core.Vec2) {
	w.pos = p
	w.vel = core.Vec2{}
	w.teleports = append(w.teleports, p)
}

func enter(id string, cat core.Category) Event {
	return Event{Kind: EventTriggerEnter, Other: Collider{ID: id, Category: cat}}
}

func exit(id string, cat core.Category) Event {
	return Event{Kind: EventTriggerExit, Other: Collider{ID: id, Category: cat}}
}

func collide(id string, cat core.Category) Event {
	return Event{Kind: EventCollision, Other: Collider{ID: id, Category: cat}}
}

func frame(events ...Event) Frame {
	return Frame{Events: events}
}
