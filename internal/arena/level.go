package arena

import (
	"fmt"

	"github.com/maxogod/AI-Donkey-Kong/internal/config"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

// Platform is a one-way floor segment. Bodies land on it from above.
type Platform struct {
	ID     string
	Bounds core.Rect
}

// Ladder is a climbable trigger. It reaches from the lower platform top to
// one player height above the upper one, so a climb ends standing.
type Ladder struct {
	ID     string
	Bounds core.Rect
}

// Zone is a named trigger region.
type Zone struct {
	Name   string
	Bounds core.Rect
}

// Barrier keeps barrels on the upper floors. The player passes through it.
type Barrier struct {
	ID     string
	Bounds core.Rect
}

// Level is the static layout of the reference world.
type Level struct {
	Platforms []Platform
	Ladders   []Ladder
	Barriers  []Barrier
	Zones     []Zone // Checkpoints in order
	Goal      Zone
	Spawner   core.Vec2
}

// Floor tops, bottom to top.
const (
	floor0 = -7.0
	floor1 = -3.5
	floor2 = 0.0
	floor3 = 3.5

	platformThickness = 0.4
	ladderWidth       = 0.6
	ladderOverhang    = 1.0
)

// DefaultLevel builds the four-floor girder layout: floors alternate their
// open end so barrels zig-zag down, and one ladder links each pair of floors.
// Checkpoint zones take their names from cfg.Zones in order.
func DefaultLevel(cfg config.AgentConfig) Level {
	pa := cfg.PlayArea
	plat := func(id string, minX, maxX, top float64) Platform {
		return Platform{ID: id, Bounds: core.NewRect(minX, top-platformThickness, maxX-minX, platformThickness)}
	}
	ladder := func(id string, x, bottom, top float64) Ladder {
		h := top + ladderOverhang - bottom
		return Ladder{ID: id, Bounds: core.NewRect(x-ladderWidth/2, bottom, ladderWidth, h)}
	}

	lv := Level{
		Platforms: []Platform{
			plat("floor-0", pa.MinX, pa.MaxX, floor0),
			plat("floor-1", pa.MinX, pa.MaxX-2, floor1),
			plat("floor-2", pa.MinX+2, pa.MaxX, floor2),
			plat("floor-3", pa.MinX, pa.MaxX-2, floor3),
		},
		Ladders: []Ladder{
			ladder("ladder-0", 5, floor0, floor1),
			ladder("ladder-1", -5, floor1, floor2),
			ladder("ladder-2", 5, floor2, floor3),
		},
		Barriers: []Barrier{
			{ID: "barrier-left", Bounds: core.NewRect(pa.MinX, floor1, 0.2, pa.MaxY-floor1)},
			{ID: "barrier-right", Bounds: core.NewRect(pa.MaxX-0.2, floor1, 0.2, pa.MaxY-floor1)},
		},
		Goal: Zone{
			Name:   cfg.Episode.GoalName,
			Bounds: core.NewRect(pa.MinX+0.5, floor3, 1.5, 2),
		},
		Spawner: core.V(pa.MinX+3, floor3+0.5),
	}

	// Checkpoints climb the same path the ladders do.
	anchors := []core.Rect{
		core.NewRect(3, floor0, 1.2, 1.5),
		core.NewRect(5.5, floor1, 1.2, 1.5),
		core.NewRect(-4, floor1, 1.2, 1.5),
		core.NewRect(-4, floor2, 1.2, 1.5),
		core.NewRect(4, floor3, 1.2, 1.5),
	}
	for i, z := range cfg.Zones {
		b := anchors[len(anchors)-1]
		if i < len(anchors) {
			b = anchors[i]
		} else {
			// Extra zones line up along the top floor.
			b.X -= float64(i-len(anchors)+1) * 1.6
		}
		lv.Zones = append(lv.Zones, Zone{Name: z.Name, Bounds: b})
	}

	return lv
}

// Validate reports layout errors that would make the level unplayable.
func (lv Level) Validate(cfg config.AgentConfig) error {
	if len(lv.Platforms) == 0 {
		return fmt.Errorf("arena: level has no platforms")
	}
	if lv.Goal.Name == "" {
		return fmt.Errorf("arena: level has no goal")
	}
	area := core.NewRect(cfg.PlayArea.MinX, cfg.PlayArea.MinY,
		cfg.PlayArea.MaxX-cfg.PlayArea.MinX, cfg.PlayArea.MaxY-cfg.PlayArea.MinY)
	if !area.Contains(lv.Goal.Bounds.Center()) {
		return fmt.Errorf("arena: goal %q outside the play area", lv.Goal.Name)
	}
	for _, z := range lv.Zones {
		if !area.Contains(z.Bounds.Center()) {
			return fmt.Errorf("arena: zone %q outside the play area", z.Name)
		}
	}
	return nil
}
