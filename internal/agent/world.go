package agent

import "github.com/maxogod/AI-Donkey-Kong/internal/core"

// Collider identifies an entity returned by a physics query or carried by an event.
type Collider struct {
	ID       string
	Category core.Category
	Position core.Vec2
}

// Hit is the result of a successful raycast.
type Hit struct {
	Point    core.Vec2
	Distance float64
	Collider Collider
}

// World is the physics collaborator. All queries complete synchronously within
// the tick; an empty result is a normal outcome.
type World interface {
	// RaycastDown casts a ray straight down from origin.
	RaycastDown(origin core.Vec2, maxDistance float64, mask core.Mask) (Hit, bool)

	// OverlapCircle returns every collider of the masked categories touching the circle.
	OverlapCircle(center core.Vec2, radius float64, mask core.Mask) []Collider

	// IgnoreCollision toggles physical collision between two categories.
	IgnoreCollision(a, b core.Category, ignore bool)
}

// Body is the agent's rigid body inside the World. The agent only issues
// direct velocity commands; the world integrates positions.
type Body interface {
	Position() core.Vec2
	Velocity() core.Vec2
	SetVelocity(v core.Vec2)
	SetGravityScale(scale float64)

	// Teleport moves the body without physics, zeroing its velocity.
	Teleport(p core.Vec2)
}

// EventKind classifies a trigger or collision notification.
type EventKind int

const (
	EventTriggerEnter EventKind = iota
	EventTriggerExit
	EventCollision
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventTriggerEnter:
		return "TriggerEnter"
	case EventTriggerExit:
		return "TriggerExit"
	case EventCollision:
		return "Collision"
	default:
		return "Unknown"
	}
}

// Event is a trigger or collision notification delivered within the tick it occurred.
type Event struct {
	Kind  EventKind
	Other Collider
}

// LadderSnapshot is a read-only view of a ladder.
type LadderSnapshot struct {
	ID       string
	Position core.Vec2 // Center
	Bounds   core.Rect
}

// HazardSnapshot is a read-only view of a hazard.
type HazardSnapshot struct {
	ID       string
	Position core.Vec2
	Velocity core.Vec2
}

// BarrierSnapshot is a read-only view of a barrier.
type BarrierSnapshot struct {
	ID       string
	Position core.Vec2
}

// Scene is the per-tick registry of world entities, keyed by identifier.
// Entities may appear or vanish between ticks.
type Scene struct {
	Ladders  map[string]LadderSnapshot
	Hazards  map[string]HazardSnapshot
	Barriers map[string]BarrierSnapshot
	Zones    map[string]core.Vec2 // Checkpoint name -> center
	Goal     *core.Vec2
}

// Frame is everything the external engine delivers for one tick.
type Frame struct {
	Events []Event
	Scene  Scene
}
