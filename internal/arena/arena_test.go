package arena

import (
	"math"
	"strings"
	"testing"

	"github.com/maxogod/AI-Donkey-Kong/internal/agent"
	"github.com/maxogod/AI-Donkey-Kong/internal/config"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

func newArena(t *testing.T, mutate func(*config.AgentConfig)) *Arena {
	t.Helper()
	cfg := config.DefaultAgentConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	rt := core.DefaultConfig()
	rt.Seed = 1
	a, err := New(cfg, rt)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return a
}

// quiet stops the spawner so tests place barrels by hand.
func quiet(a *Arena) {
	a.barrels.nextSpawn = math.Inf(1)
}

func hasEvent(events []agent.Event, kind agent.EventKind, id string) bool {
	for _, e := range events {
		if e.Kind == kind && e.Other.ID == id {
			return true
		}
	}
	return false
}

func TestDefaultLevelIsConnected(t *testing.T) {
	cfg := config.DefaultAgentConfig()
	lv := DefaultLevel(cfg)
	if err := lv.Validate(cfg); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if len(lv.Zones) != len(cfg.Zones) {
		t.Errorf("len(Zones) = %d, expected %d", len(lv.Zones), len(cfg.Zones))
	}

	topAt := func(x, y float64) bool {
		for _, p := range lv.Platforms {
			if math.Abs(p.Bounds.Top()-y) < 1e-9 && x >= p.Bounds.X && x <= p.Bounds.Right() {
				return true
			}
		}
		return false
	}
	for _, l := range lv.Ladders {
		x := l.Bounds.Center().X
		if !topAt(x, l.Bounds.Y) {
			t.Errorf("%s: foot %v is not on a platform", l.ID, l.Bounds.Y)
		}
		if !topAt(x, l.Bounds.Top()-ladderOverhang) {
			t.Errorf("%s: head %v does not reach a platform", l.ID, l.Bounds.Top()-ladderOverhang)
		}
	}
}

func TestPlayerLandsOnFloor(t *testing.T) {
	a := newArena(t, nil)
	quiet(a)

	for i := 0; i < 50; i++ {
		a.Advance()
	}
	p := a.Player().Position()
	if expected := floor0 + PlayerHeight/2; math.Abs(p.Y-expected) > 1e-9 {
		t.Errorf("player y = %v, expected %v", p.Y, expected)
	}

	cfg := config.DefaultAgentConfig()
	origin := p.Add(core.V(0, cfg.GroundCheck.OffsetY))
	hit, ok := a.RaycastDown(origin, cfg.GroundCheck.Distance, core.MaskOf(core.CategoryGround))
	if !ok || hit.Collider.ID != "floor-0" {
		t.Errorf("RaycastDown() = %+v, %v, expected floor-0", hit, ok)
	}
	if _, ok := a.RaycastDown(origin.Add(core.V(0, 1)), cfg.GroundCheck.Distance, core.MaskOf(core.CategoryGround)); ok {
		t.Errorf("RaycastDown() from the air hit something")
	}
}

func TestLadderTriggers(t *testing.T) {
	a := newArena(t, nil)
	quiet(a)

	a.Player().Teleport(core.V(5, floor0+PlayerHeight/2))
	f := a.Advance()
	if !hasEvent(f.Events, agent.EventTriggerEnter, "ladder-0") {
		t.Errorf("events = %v, expected ladder-0 enter", f.Events)
	}
	f = a.Advance()
	if hasEvent(f.Events, agent.EventTriggerEnter, "ladder-0") {
		t.Errorf("ladder-0 enter repeated while inside")
	}

	a.Player().Teleport(core.V(0, floor0+PlayerHeight/2))
	f = a.Advance()
	if !hasEvent(f.Events, agent.EventTriggerExit, "ladder-0") {
		t.Errorf("events = %v, expected ladder-0 exit", f.Events)
	}
}

func TestZoneAndGoalTriggers(t *testing.T) {
	a := newArena(t, nil)
	quiet(a)
	lv := a.Level()

	z := lv.Zones[0]
	a.Player().Teleport(core.V(z.Bounds.Center().X, z.Bounds.Y+PlayerHeight/2))
	f := a.Advance()
	if !hasEvent(f.Events, agent.EventTriggerEnter, z.Name) {
		t.Errorf("events = %v, expected %s enter", f.Events, z.Name)
	}

	g := lv.Goal
	a.Player().Teleport(core.V(g.Bounds.Center().X, g.Bounds.Y+PlayerHeight/2))
	f = a.Advance()
	found := false
	for _, e := range f.Events {
		if e.Kind == agent.EventTriggerEnter && e.Other.Category == core.CategoryGoal && e.Other.ID == g.Name {
			found = true
		}
	}
	if !found {
		t.Errorf("events = %v, expected goal enter", f.Events)
	}
}

func TestClimbingStopsAtLadderFoot(t *testing.T) {
	a := newArena(t, nil)
	quiet(a)
	a.IgnoreCollision(core.CategoryPlayer, core.CategoryGround, true)

	p := a.Player()
	p.Teleport(core.V(5, floor0+PlayerHeight/2))
	p.SetGravityScale(0)
	for i := 0; i < 10; i++ {
		p.SetVelocity(core.V(0, -2))
		a.Advance()
	}
	if expected := floor0 + PlayerHeight/2; math.Abs(p.Position().Y-expected) > 1e-9 {
		t.Errorf("player y = %v, expected %v", p.Position().Y, expected)
	}
}

func TestBarrelHitsPlayer(t *testing.T) {
	a := newArena(t, nil)
	quiet(a)
	r := a.cfg.Arena.Barrels.Radius

	a.Player().Teleport(core.V(-4.64, floor0+PlayerHeight/2))
	b := a.barrels.spawn(core.V(-4.3, floor0+r))

	f := a.Advance()
	if !hasEvent(f.Events, agent.EventCollision, b.ID) {
		t.Fatalf("events = %v, expected collision with %s", f.Events, b.ID)
	}
	if n := len(a.barrels.Barrels()); n != 0 {
		t.Errorf("barrels = %d, expected 0 after hitting the player", n)
	}
}

func TestBarrelBouncesOffBarrier(t *testing.T) {
	a := newArena(t, nil)
	quiet(a)
	b := a.barrels.spawn(core.V(8.0, floor2+a.cfg.Arena.Barrels.Radius))

	for i := 0; i < 30; i++ {
		a.Advance()
	}
	if b.Vel.X >= 0 {
		t.Errorf("barrel vx = %v, expected negative after the barrier", b.Vel.X)
	}
}

func TestBarrelFallsThroughLadder(t *testing.T) {
	a := newArena(t, func(c *config.AgentConfig) { c.Arena.Barrels.FallOneIn = 1 })
	quiet(a)
	r := a.cfg.Arena.Barrels.Radius
	b := a.barrels.spawn(core.V(4.0, floor3+r))

	for i := 0; i < 100; i++ {
		a.Advance()
	}
	if math.Abs(b.Pos.Y-(floor2+r)) > 1e-9 {
		t.Errorf("barrel y = %v, expected to rest on floor-2 at %v", b.Pos.Y, floor2+r)
	}
	if b.Vel.X >= 0 {
		t.Errorf("barrel vx = %v, expected reversed by the ladder push", b.Vel.X)
	}
}

func TestBarrelRemoval(t *testing.T) {
	t.Run("idle", func(t *testing.T) {
		a := newArena(t, nil)
		quiet(a)
		b := a.barrels.spawn(core.V(0, floor2+a.cfg.Arena.Barrels.Radius))
		b.Vel = core.Vec2{}

		limit := a.cfg.Arena.Barrels.MaxIdleTicks
		for i := 0; i < limit; i++ {
			a.Advance()
		}
		if len(a.barrels.Barrels()) != 1 {
			t.Fatalf("barrel removed before idling %d ticks", limit)
		}
		a.Advance()
		if len(a.barrels.Barrels()) != 0 {
			t.Errorf("idle barrel not removed")
		}
	})

	t.Run("off screen", func(t *testing.T) {
		a := newArena(t, nil)
		quiet(a)
		a.barrels.spawn(core.V(a.cfg.PlayArea.MaxX-0.05, floor0+a.cfg.Arena.Barrels.Radius))
		for i := 0; i < 5; i++ {
			a.Advance()
		}
		if len(a.barrels.Barrels()) != 0 {
			t.Errorf("barrel survived leaving the play area")
		}
	})

	t.Run("barrel on barrel", func(t *testing.T) {
		a := newArena(t, nil)
		quiet(a)
		y := floor2 + a.cfg.Arena.Barrels.Radius
		a.barrels.spawn(core.V(0, y))
		a.barrels.spawn(core.V(0.3, y))
		a.Advance()
		if len(a.barrels.Barrels()) != 0 {
			t.Errorf("colliding barrels survived")
		}
	})
}

func TestSpawnerCadence(t *testing.T) {
	a := newArena(t, nil)
	cfg := a.cfg.Arena.Barrels

	a.Advance()
	if a.barrels.spawned != 1 {
		t.Fatalf("spawned = %d after first tick, expected 1", a.barrels.spawned)
	}
	if a.barrels.nextSpawn < cfg.MinSpawnSeconds*0.25-1e-9 || a.barrels.nextSpawn > cfg.MaxSpawnSeconds {
		t.Errorf("nextSpawn = %v, outside [%v, %v]", a.barrels.nextSpawn, cfg.MinSpawnSeconds*0.25, cfg.MaxSpawnSeconds)
	}
}

func TestCurriculumSpeedsBarrels(t *testing.T) {
	a := newArena(t, nil)
	quiet(a)
	slow := a.barrels.spawn(core.V(0, 5))
	a.SetDifficulty(1)
	fast := a.barrels.spawn(core.V(2, 5))

	if fast.Vel.X <= slow.Vel.X {
		t.Errorf("roll speed at level 1 = %v, expected more than %v", fast.Vel.X, slow.Vel.X)
	}
}

func TestArenaDeterminism(t *testing.T) {
	run := func() []core.Vec2 {
		a := newArena(t, nil)
		var out []core.Vec2
		for i := 0; i < 600; i++ {
			a.Advance()
		}
		for _, b := range a.barrels.Barrels() {
			out = append(out, b.Pos)
		}
		return out
	}

	x, y := run(), run()
	if len(x) != len(y) {
		t.Fatalf("barrel counts differ: %d != %d", len(x), len(y))
	}
	for i := range x {
		if x[i] != y[i] {
			t.Errorf("barrel %d: %v != %v", i, x[i], y[i])
		}
	}
}

func TestOverlapCircle(t *testing.T) {
	a := newArena(t, nil)
	quiet(a)

	got := a.OverlapCircle(core.V(5, floor1-0.1), 0.05, core.MaskOf(core.CategoryGround, core.CategoryLadder))
	if len(got) != 2 || got[0].ID != "floor-1" || got[1].ID != "ladder-0" {
		t.Errorf("OverlapCircle() = %v, expected [floor-1 ladder-0]", got)
	}
	if got := a.OverlapCircle(core.V(0, 7), 0.5, core.MaskOf(core.CategoryHazard)); len(got) != 0 {
		t.Errorf("OverlapCircle(empty sky) = %v, expected none", got)
	}
}

func TestSceneRegistry(t *testing.T) {
	a := newArena(t, nil)
	quiet(a)
	b := a.barrels.spawn(core.V(0, 5))

	sc := a.Scene()
	if len(sc.Ladders) != len(a.Level().Ladders) || len(sc.Barriers) != len(a.Level().Barriers) {
		t.Errorf("Scene() ladders=%d barriers=%d", len(sc.Ladders), len(sc.Barriers))
	}
	if _, ok := sc.Hazards[b.ID]; !ok {
		t.Errorf("Scene() missing %s", b.ID)
	}
	if sc.Goal == nil {
		t.Errorf("Scene().Goal = nil")
	}
}

func TestResetKeepsFilters(t *testing.T) {
	a := newArena(t, nil)
	a.IgnoreCollision(core.CategoryPlayer, core.CategoryBarrier, true)
	a.Advance()
	a.Reset(3)

	if !a.Ignored(core.CategoryPlayer, core.CategoryBarrier) {
		t.Errorf("Reset cleared collision filters")
	}
	if len(a.barrels.Barrels()) != 0 || a.Ticks() != 0 {
		t.Errorf("Reset left barrels=%d ticks=%d", len(a.barrels.Barrels()), a.Ticks())
	}
}

func TestRender(t *testing.T) {
	a := newArena(t, nil)
	quiet(a)
	a.barrels.spawn(core.V(0, 5))

	dst := core.NewScreen(60, 24)
	a.Render(dst, nil)
	out := dst.String()
	for _, ch := range []rune{PlayerChar, PlatformChar, LadderChar, BarrelChar, GoalChar} {
		if !strings.ContainsRune(out, ch) {
			t.Errorf("render missing %q", ch)
		}
	}
}
