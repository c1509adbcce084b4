// Package arena is the reference World collaborator: a small girder level
// with one-way platforms, ladders, rolling barrels, barriers, checkpoint
// zones and a goal. It integrates bodies at a fixed timestep and reports
// trigger and collision events for each tick.
package arena

import (
	"math"
	"sort"

	"github.com/maxogod/AI-Donkey-Kong/internal/agent"
	"github.com/maxogod/AI-Donkey-Kong/internal/config"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

// Gravity is the world gravity in units/s^2, scaled per body.
const Gravity = 9.81

// landingSlack absorbs float error when a body rests exactly on a top.
const landingSlack = 1e-6

// Arena implements agent.World and owns the player Body.
type Arena struct {
	cfg     config.AgentConfig
	runtime core.RuntimeConfig
	level   Level
	player  *Body
	barrels *BarrelManager
	filter  core.FilterTable

	// Trigger overlap state for the player, used to emit enter/exit events.
	inLadder map[string]bool
	inZone   map[string]bool
	inGoal   bool

	ticks int
}

// New creates an arena for cfg with the default level.
func New(cfg config.AgentConfig, runtime core.RuntimeConfig) (*Arena, error) {
	return NewWithLevel(cfg, runtime, DefaultLevel(cfg))
}

// NewWithLevel creates an arena with a custom level.
func NewWithLevel(cfg config.AgentConfig, runtime core.RuntimeConfig, lv Level) (*Arena, error) {
	if err := lv.Validate(cfg); err != nil {
		return nil, err
	}
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	a := &Arena{
		cfg:     cfg,
		runtime: runtime,
		level:   lv,
		player:  NewBody(core.V(cfg.Spawn.X, cfg.Spawn.Y), cfg.Movement.GravityScale),
		barrels: NewBarrelManager(runtime.Seed, cfg.Arena.Barrels, config.NewCurriculumManager(cfg.Arena.Difficulty)),
	}
	a.Reset(runtime.Seed)
	return a, nil
}

// Reset puts the player at spawn and clears every barrel. Collision filters
// are left alone: they belong to whoever set them.
func (a *Arena) Reset(seed int64) {
	a.runtime.Seed = seed
	a.player.Teleport(core.V(a.cfg.Spawn.X, a.cfg.Spawn.Y))
	a.player.SetGravityScale(a.cfg.Movement.GravityScale)
	a.barrels.Reset(seed)
	a.inLadder = make(map[string]bool)
	a.inZone = make(map[string]bool)
	a.inGoal = false
	a.ticks = 0
}

// Player returns the player body.
func (a *Arena) Player() *Body { return a.player }

// Level returns the static layout.
func (a *Arena) Level() Level { return a.level }

// Barrels returns the barrel manager.
func (a *Arena) Barrels() *BarrelManager { return a.barrels }

// Ticks returns the number of ticks advanced since the last reset.
func (a *Arena) Ticks() int { return a.ticks }

// SetDifficulty sets the curriculum level used for barrel speed and cadence.
func (a *Arena) SetDifficulty(level float64) { a.barrels.SetLevel(level) }

// IgnoreCollision implements agent.World.
func (a *Arena) IgnoreCollision(x, y core.Category, ignore bool) {
	a.filter.Set(x, y, ignore)
}

// Ignored reports whether collisions between x and y are disabled.
func (a *Arena) Ignored(x, y core.Category) bool {
	return a.filter.Ignored(x, y)
}

// RaycastDown implements agent.World. Platforms and barrels are hit on
// their top surface.
func (a *Arena) RaycastDown(origin core.Vec2, maxDistance float64, mask core.Mask) (agent.Hit, bool) {
	best := agent.Hit{Distance: math.Inf(1)}
	found := false
	try := func(c agent.Collider, r core.Rect) {
		if origin.X < r.X || origin.X > r.Right() {
			return
		}
		d := origin.Y - r.Top()
		if d < -landingSlack || d > maxDistance || d >= best.Distance {
			return
		}
		best = agent.Hit{Point: core.V(origin.X, r.Top()), Distance: math.Max(d, 0), Collider: c}
		found = true
	}

	if mask.Has(core.CategoryGround) {
		for _, p := range a.level.Platforms {
			try(agent.Collider{ID: p.ID, Category: core.CategoryGround, Position: p.Bounds.Center()}, p.Bounds)
		}
	}
	if mask.Has(core.CategoryHazard) {
		r := a.cfg.Arena.Barrels.Radius
		for _, b := range a.barrels.Barrels() {
			try(agent.Collider{ID: b.ID, Category: core.CategoryHazard, Position: b.Pos}, b.Bounds(r))
		}
	}
	return best, found
}

// OverlapCircle implements agent.World. Results are ordered by distance,
// then identifier.
func (a *Arena) OverlapCircle(center core.Vec2, radius float64, mask core.Mask) []agent.Collider {
	type hit struct {
		c agent.Collider
		d float64
	}
	var hits []hit
	add := func(id string, cat core.Category, r core.Rect, pos core.Vec2) {
		if d := r.DistanceTo(center); d <= radius {
			hits = append(hits, hit{agent.Collider{ID: id, Category: cat, Position: pos}, d})
		}
	}

	if mask.Has(core.CategoryGround) {
		for _, p := range a.level.Platforms {
			add(p.ID, core.CategoryGround, p.Bounds, p.Bounds.Center())
		}
	}
	if mask.Has(core.CategoryLadder) {
		for _, l := range a.level.Ladders {
			add(l.ID, core.CategoryLadder, l.Bounds, l.Bounds.Center())
		}
	}
	if mask.Has(core.CategoryHazard) {
		r := a.cfg.Arena.Barrels.Radius
		for _, b := range a.barrels.Barrels() {
			add(b.ID, core.CategoryHazard, b.Bounds(r), b.Pos)
		}
	}
	if mask.Has(core.CategoryBarrier) {
		for _, b := range a.level.Barriers {
			add(b.ID, core.CategoryBarrier, b.Bounds, b.Bounds.Center())
		}
	}
	if mask.Has(core.CategoryZone) {
		for _, z := range a.level.Zones {
			add(z.Name, core.CategoryZone, z.Bounds, z.Bounds.Center())
		}
	}
	if mask.Has(core.CategoryGoal) {
		add(a.level.Goal.Name, core.CategoryGoal, a.level.Goal.Bounds, a.level.Goal.Bounds.Center())
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].d != hits[j].d {
			return hits[i].d < hits[j].d
		}
		return hits[i].c.ID < hits[j].c.ID
	})
	out := make([]agent.Collider, len(hits))
	for i, h := range hits {
		out[i] = h.c
	}
	return out
}

// Advance integrates one tick and returns the events it produced together
// with the scene registry after the tick.
//
// Order: spawner, player, barrels, player triggers, collisions.
func (a *Arena) Advance() agent.Frame {
	dt := a.runtime.DeltaTime()
	a.ticks++

	a.barrels.tickSpawner(dt, a.level.Spawner)
	a.integratePlayer(dt)

	dead := make(map[string]bool)
	for _, b := range a.barrels.Barrels() {
		a.integrateBarrel(b, dt, dead)
	}
	a.collideBarrels(dead)

	var events []agent.Event
	events = a.playerTriggers(events)
	events = a.playerCollisions(events, dead)

	a.barrels.remove(dead)
	return agent.Frame{Events: events, Scene: a.Scene()}
}

func (a *Arena) integratePlayer(dt float64) {
	p := a.player
	prevBottom := p.bottom()

	p.vel.Y -= Gravity * p.gravityScale * dt
	p.pos = p.pos.Add(p.vel.Scale(dt))

	if a.filter.Ignored(core.CategoryPlayer, core.CategoryGround) {
		// Climbing: the ladder foot is the only floor.
		if foot, ok := a.ladderFoot(); ok && p.bottom() < foot {
			p.pos.Y = foot + PlayerHeight/2
			p.vel.Y = math.Max(p.vel.Y, 0)
		}
		return
	}

	b := p.Bounds()
	if top, ok := a.landing(b.X, b.Right(), prevBottom, p.bottom(), ""); ok {
		p.pos.Y = top + PlayerHeight/2
		p.vel.Y = math.Max(p.vel.Y, 0)
	}
}

// ladderFoot returns the lowest bottom of the ladders the player overlaps.
func (a *Arena) ladderFoot() (float64, bool) {
	foot, ok := math.Inf(1), false
	for _, l := range a.level.Ladders {
		if a.inLadder[l.ID] {
			foot = math.Min(foot, l.Bounds.Y)
			ok = true
		}
	}
	return foot, ok
}

// landing finds the highest platform top crossed from above between
// prevBottom and bottom within [minX, maxX], skipping the ignored platform.
func (a *Arena) landing(minX, maxX, prevBottom, bottom float64, ignored string) (float64, bool) {
	best, found := math.Inf(-1), false
	for _, p := range a.level.Platforms {
		if p.ID == ignored {
			continue
		}
		top := p.Bounds.Top()
		if maxX < p.Bounds.X || minX > p.Bounds.Right() {
			continue
		}
		if prevBottom >= top-landingSlack && bottom <= top && top > best {
			best, found = top, true
		}
	}
	return best, found
}

// platformUnder returns the platform a body of the given bottom rests on.
func (a *Arena) platformUnder(x, bottom float64) string {
	for _, p := range a.level.Platforms {
		if x >= p.Bounds.X && x <= p.Bounds.Right() && math.Abs(bottom-p.Bounds.Top()) < 0.05 {
			return p.ID
		}
	}
	return ""
}

func (a *Arena) integrateBarrel(b *Barrel, dt float64, dead map[string]bool) {
	r := a.cfg.Arena.Barrels.Radius
	prevBottom := b.Pos.Y - r
	under := a.platformUnder(b.Pos.X, prevBottom)

	b.Vel.Y -= Gravity * dt
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))

	if !a.filter.Ignored(core.CategoryHazard, core.CategoryGround) {
		if top, ok := a.landing(b.Pos.X-r, b.Pos.X+r, prevBottom, b.Pos.Y-r, b.ignored); ok {
			b.Pos.Y = top + r
			b.Vel.Y = 0
			b.ignored = ""
		}
	}

	if !a.filter.Ignored(core.CategoryHazard, core.CategoryBarrier) {
		bounds := b.Bounds(r)
		for _, w := range a.level.Barriers {
			if !bounds.Intersects(w.Bounds) {
				continue
			}
			wc := w.Bounds.Center().X
			if (wc > b.Pos.X && b.Vel.X > 0) || (wc < b.Pos.X && b.Vel.X < 0) {
				b.Vel.X = -b.Vel.X
			}
		}
	}

	bounds := b.Bounds(r)
	for _, l := range a.level.Ladders {
		over := bounds.Intersects(l.Bounds)
		switch {
		case over && !b.ladders[l.ID]:
			b.ladders[l.ID] = true
			// Only a ladder going down from here can be fallen through.
			if l.Bounds.Y < prevBottom-0.1 {
				a.barrels.enterLadder(b, under)
			}
		case !over && b.ladders[l.ID]:
			delete(b.ladders, l.ID)
			a.barrels.exitLadder(b)
		}
	}

	if a.barrels.tickIdle(b) || !a.inPlayArea(b.Pos) {
		dead[b.ID] = true
	}
}

// collideBarrels destroys both barrels of every touching pair.
func (a *Arena) collideBarrels(dead map[string]bool) {
	if a.filter.Ignored(core.CategoryHazard, core.CategoryHazard) {
		return
	}
	r := a.cfg.Arena.Barrels.Radius
	bs := a.barrels.Barrels()
	for i := 0; i < len(bs); i++ {
		for j := i + 1; j < len(bs); j++ {
			if bs[i].Bounds(r).Intersects(bs[j].Bounds(r)) {
				dead[bs[i].ID] = true
				dead[bs[j].ID] = true
			}
		}
	}
}

func (a *Arena) playerTriggers(events []agent.Event) []agent.Event {
	pb := a.player.Bounds()
	trigger := func(inside, was bool, c agent.Collider) []agent.Event {
		switch {
		case inside && !was:
			return append(events, agent.Event{Kind: agent.EventTriggerEnter, Other: c})
		case !inside && was:
			return append(events, agent.Event{Kind: agent.EventTriggerExit, Other: c})
		}
		return events
	}

	for _, l := range a.level.Ladders {
		inside := pb.Intersects(l.Bounds)
		events = trigger(inside, a.inLadder[l.ID], agent.Collider{ID: l.ID, Category: core.CategoryLadder, Position: l.Bounds.Center()})
		a.setFlag(a.inLadder, l.ID, inside)
	}
	for _, z := range a.level.Zones {
		inside := pb.Intersects(z.Bounds)
		events = trigger(inside, a.inZone[z.Name], agent.Collider{ID: z.Name, Category: core.CategoryZone, Position: z.Bounds.Center()})
		a.setFlag(a.inZone, z.Name, inside)
	}

	g := a.level.Goal
	inside := pb.Intersects(g.Bounds)
	events = trigger(inside, a.inGoal, agent.Collider{ID: g.Name, Category: core.CategoryGoal, Position: g.Bounds.Center()})
	a.inGoal = inside

	return events
}

func (a *Arena) setFlag(m map[string]bool, id string, v bool) {
	if v {
		m[id] = true
	} else {
		delete(m, id)
	}
}

// playerCollisions reports barrels touching the player. A barrel that hits
// the player is destroyed.
func (a *Arena) playerCollisions(events []agent.Event, dead map[string]bool) []agent.Event {
	if a.filter.Ignored(core.CategoryPlayer, core.CategoryHazard) {
		return events
	}
	pb := a.player.Bounds()
	r := a.cfg.Arena.Barrels.Radius
	for _, b := range a.barrels.Barrels() {
		if dead[b.ID] || !pb.Intersects(b.Bounds(r)) {
			continue
		}
		events = append(events, agent.Event{
			Kind:  agent.EventCollision,
			Other: agent.Collider{ID: b.ID, Category: core.CategoryHazard, Position: b.Pos},
		})
		dead[b.ID] = true
	}
	return events
}

func (a *Arena) inPlayArea(p core.Vec2) bool {
	pa := a.cfg.PlayArea
	return p.X >= pa.MinX && p.X <= pa.MaxX && p.Y >= pa.MinY && p.Y <= pa.MaxY
}

// Scene returns the entity registry for the current tick.
func (a *Arena) Scene() agent.Scene {
	sc := agent.Scene{
		Ladders:  make(map[string]agent.LadderSnapshot, len(a.level.Ladders)),
		Hazards:  make(map[string]agent.HazardSnapshot, len(a.barrels.Barrels())),
		Barriers: make(map[string]agent.BarrierSnapshot, len(a.level.Barriers)),
		Zones:    make(map[string]core.Vec2, len(a.level.Zones)),
	}
	for _, l := range a.level.Ladders {
		sc.Ladders[l.ID] = agent.LadderSnapshot{ID: l.ID, Position: l.Bounds.Center(), Bounds: l.Bounds}
	}
	for _, b := range a.barrels.Barrels() {
		sc.Hazards[b.ID] = agent.HazardSnapshot{ID: b.ID, Position: b.Pos, Velocity: b.Vel}
	}
	for _, w := range a.level.Barriers {
		sc.Barriers[w.ID] = agent.BarrierSnapshot{ID: w.ID, Position: w.Bounds.Center()}
	}
	for _, z := range a.level.Zones {
		sc.Zones[z.Name] = z.Bounds.Center()
	}
	goal := a.level.Goal.Bounds.Center()
	sc.Goal = &goal
	return sc
}
