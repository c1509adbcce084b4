package arena

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/maxogod/AI-Donkey-Kong/internal/config"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

// Barrel is a rolling hazard.
type Barrel struct {
	ID      string
	Pos     core.Vec2
	Vel     core.Vec2
	falling bool            // Dropping through a ladder
	ignored string          // Platform it fell through, until it lands
	ladders map[string]bool // Ladders currently overlapped
	idle    int             // Consecutive ticks without horizontal motion
}

// Bounds returns the collision box.
func (b *Barrel) Bounds(radius float64) core.Rect {
	return core.RectAround(b.Pos, 2*radius, 2*radius)
}

// BarrelManager handles spawning, movement and removal of barrels.
type BarrelManager struct {
	barrels    []*Barrel
	rng        *rand.Rand
	cfg        config.BarrelConfig
	curriculum *config.CurriculumManager
	level      float64
	nextSpawn  float64 // Seconds until the next spawn
	spawned    int
}

// NewBarrelManager creates a barrel manager with the given RNG seed.
func NewBarrelManager(seed int64, cfg config.BarrelConfig, cur *config.CurriculumManager) *BarrelManager {
	bm := &BarrelManager{cfg: cfg, curriculum: cur}
	bm.Reset(seed)
	return bm
}

// Reset clears all barrels and reseeds the RNG. The first barrel spawns
// immediately.
func (bm *BarrelManager) Reset(seed int64) {
	bm.barrels = bm.barrels[:0]
	bm.rng = rand.New(rand.NewSource(seed))
	bm.nextSpawn = 0
	bm.spawned = 0
}

// SetLevel sets the curriculum level in [0, 1].
func (bm *BarrelManager) SetLevel(level float64) {
	bm.level = core.ClampF(level, 0, 1)
}

// Level returns the curriculum level.
func (bm *BarrelManager) Level() float64 {
	return bm.level
}

// Barrels returns the live barrels.
func (bm *BarrelManager) Barrels() []*Barrel {
	return bm.barrels
}

func (bm *BarrelManager) rollSpeed() float64 {
	if bm.curriculum == nil {
		return bm.cfg.RollSpeed
	}
	return bm.curriculum.RollSpeed(bm.cfg.RollSpeed, bm.level)
}

// spawnDelay draws the next spawn interval from [min, max] seconds.
func (bm *BarrelManager) spawnDelay() float64 {
	d := bm.cfg.MinSpawnSeconds
	if span := bm.cfg.MaxSpawnSeconds - bm.cfg.MinSpawnSeconds; span > 0 {
		d += bm.rng.Float64() * span
	}
	if bm.curriculum != nil {
		d = bm.curriculum.SpawnInterval(d, bm.level)
	}
	return d
}

// tickSpawner counts down and spawns a barrel at p when due.
func (bm *BarrelManager) tickSpawner(dt float64, p core.Vec2) *Barrel {
	bm.nextSpawn -= dt
	if bm.nextSpawn > 0 {
		return nil
	}
	bm.nextSpawn = bm.spawnDelay()
	return bm.spawn(p)
}

func (bm *BarrelManager) spawn(p core.Vec2) *Barrel {
	b := &Barrel{
		ID:      fmt.Sprintf("barrel-%d", bm.spawned),
		Pos:     p,
		Vel:     core.V(bm.rollSpeed(), 0),
		ladders: make(map[string]bool),
	}
	bm.spawned++
	bm.barrels = append(bm.barrels, b)
	return b
}

// shouldFall rolls the 1-in-N chance of dropping through a ladder.
func (bm *BarrelManager) shouldFall() bool {
	n := bm.cfg.FallOneIn
	if n <= 0 {
		return false
	}
	return bm.rng.Intn(n) == 0
}

// enterLadder may start a fall through the platform under the barrel.
func (bm *BarrelManager) enterLadder(b *Barrel, under string) {
	if b.falling || under == "" || !bm.shouldFall() {
		return
	}
	b.falling = true
	b.ignored = under
}

// exitLadder ends a fall with a push opposite the roll direction.
func (bm *BarrelManager) exitLadder(b *Barrel) {
	if !b.falling {
		return
	}
	b.falling = false
	dir := -core.Sign(b.Vel.X)
	if dir == 0 {
		dir = 1
	}
	b.Vel.X += dir * 2 * bm.rollSpeed()
}

// tickIdle counts ticks without horizontal motion and reports whether the
// barrel has idled too long.
func (bm *BarrelManager) tickIdle(b *Barrel) bool {
	if math.Abs(b.Vel.X) < 1e-6 {
		b.idle++
	} else {
		b.idle = 0
	}
	return bm.cfg.MaxIdleTicks > 0 && b.idle > bm.cfg.MaxIdleTicks
}

// remove drops barrels whose IDs are in dead.
func (bm *BarrelManager) remove(dead map[string]bool) {
	if len(dead) == 0 {
		return
	}
	kept := bm.barrels[:0]
	for _, b := range bm.barrels {
		if !dead[b.ID] {
			kept = append(kept, b)
		}
	}
	bm.barrels = kept
}
