package agent

import (
	"fmt"
	"math"
	"sort"

	"github.com/maxogod/AI-Donkey-Kong/internal/config"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

// Sentinel values for empty observation slots.
const (
	SentinelDistance = -1.0
	SentinelVelocity = 0.0
)

// Observation is the fixed-length vector handed to the trainer.
type Observation []float64

// ObservationBuilder assembles observations in a fixed layout:
//
//	pos.x pos.y vel.x vel.y grounded climbing zone.dist
//	ladder[K].{dx,dy} barrier[B].{dx,dy} hazard[M].{dx,dy,vx}
//
// A slot count of zero drops that range from the layout.
type ObservationBuilder struct {
	cfg    config.ObservationConfig
	schema []string
}

// NewObservationBuilder creates a builder for the configured layout.
func NewObservationBuilder(cfg config.ObservationConfig) *ObservationBuilder {
	b := &ObservationBuilder{cfg: cfg}
	b.schema = b.buildSchema()
	return b
}

// Size returns the vector length for this configuration.
func (b *ObservationBuilder) Size() int {
	return len(b.schema)
}

// Schema returns one label per vector slot.
func (b *ObservationBuilder) Schema() []string {
	return append([]string(nil), b.schema...)
}

func (b *ObservationBuilder) buildSchema() []string {
	s := []string{"pos.x", "pos.y", "vel.x", "vel.y", "grounded", "climbing", "zone.dist"}
	for i := 0; i < b.cfg.LadderSlots; i++ {
		s = append(s, fmt.Sprintf("ladder%d.dx", i), fmt.Sprintf("ladder%d.dy", i))
	}
	for i := 0; i < b.cfg.BarrierSlots; i++ {
		s = append(s, fmt.Sprintf("barrier%d.dx", i), fmt.Sprintf("barrier%d.dy", i))
	}
	for i := 0; i < b.cfg.HazardSlots; i++ {
		s = append(s, fmt.Sprintf("hazard%d.dx", i), fmt.Sprintf("hazard%d.dy", i), fmt.Sprintf("hazard%d.vx", i))
	}
	return s
}

// Build assembles the observation for the given state and scene.
func (b *ObservationBuilder) Build(st AgentState, ledger *ZoneLedger, scene Scene) Observation {
	obs := make(Observation, 0, b.Size())
	pos := st.Position

	obs = append(obs,
		b.dist(pos.X), b.dist(pos.Y),
		b.speed(st.Velocity.X), b.speed(st.Velocity.Y),
		flag(st.IsGrounded), flag(st.IsClimbing),
		b.nearestUnvisitedZone(pos, ledger, scene),
	)

	ladders := sortedLadders(scene.Ladders, pos)
	for i := 0; i < b.cfg.LadderSlots; i++ {
		if i < len(ladders) {
			off := ladders[i].Position.Sub(pos)
			obs = append(obs, b.dist(off.X), b.dist(off.Y))
		} else {
			obs = append(obs, SentinelDistance, SentinelDistance)
		}
	}

	barriers := sortedBarriers(scene.Barriers)
	for i := 0; i < b.cfg.BarrierSlots; i++ {
		if i < len(barriers) {
			off := barriers[i].Position.Sub(pos)
			obs = append(obs, b.dist(off.X), b.dist(off.Y))
		} else {
			obs = append(obs, SentinelDistance, SentinelDistance)
		}
	}

	hazards := sortedHazards(scene.Hazards, pos)
	for i := 0; i < b.cfg.HazardSlots; i++ {
		if i < len(hazards) {
			off := hazards[i].Position.Sub(pos)
			obs = append(obs, b.dist(off.X), b.dist(off.Y), b.speed(hazards[i].Velocity.X))
		} else {
			obs = append(obs, SentinelDistance, SentinelDistance, SentinelVelocity)
		}
	}

	return obs
}

func (b *ObservationBuilder) nearestUnvisitedZone(pos core.Vec2, ledger *ZoneLedger, scene Scene) float64 {
	best := math.Inf(1)
	for name, center := range scene.Zones {
		if ledger == nil || !ledger.Known(name) || ledger.Visited(name) {
			continue
		}
		if d := pos.Dist(center); d < best {
			best = d
		}
	}
	if math.IsInf(best, 1) {
		return SentinelDistance
	}
	return core.ClampF(best/b.cfg.MaxDistance, 0, 1)
}

func (b *ObservationBuilder) dist(v float64) float64 {
	return core.ClampF(v/b.cfg.MaxDistance, -1, 1)
}

func (b *ObservationBuilder) speed(v float64) float64 {
	return core.ClampF(v/b.cfg.MaxSpeed, -1, 1)
}

func flag(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// sortedLadders orders ladders nearest-first by vertical distance.
func sortedLadders(m map[string]LadderSnapshot, pos core.Vec2) []LadderSnapshot {
	out := make([]LadderSnapshot, 0, len(m))
	for _, l := range m {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := math.Abs(out[i].Position.Y-pos.Y), math.Abs(out[j].Position.Y-pos.Y)
		if di != dj {
			return di < dj
		}
		hi, hj := math.Abs(out[i].Position.X-pos.X), math.Abs(out[j].Position.X-pos.X)
		if hi != hj {
			return hi < hj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// sortedHazards orders hazards nearest-first by horizontal distance.
func sortedHazards(m map[string]HazardSnapshot, pos core.Vec2) []HazardSnapshot {
	out := make([]HazardSnapshot, 0, len(m))
	for _, h := range m {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := math.Abs(out[i].Position.X-pos.X), math.Abs(out[j].Position.X-pos.X)
		if di != dj {
			return di < dj
		}
		vi, vj := math.Abs(out[i].Position.Y-pos.Y), math.Abs(out[j].Position.Y-pos.Y)
		if vi != vj {
			return vi < vj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// sortedBarriers orders barriers by identifier so each keeps its slot.
func sortedBarriers(m map[string]BarrierSnapshot) []BarrierSnapshot {
	out := make([]BarrierSnapshot, 0, len(m))
	for _, b := range m {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}
