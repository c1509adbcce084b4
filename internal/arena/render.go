package arena

import (
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

// Visual characters for rendering
const (
	PlatformChar = '═'
	LadderChar   = 'H'
	BarrelChar   = 'o'
	BarrierChar  = '│'
	ZoneChar     = '·'
	GoalChar     = '★'
	PlayerChar   = 'M'
	SpawnerChar  = '&'
)

// viewport maps world coordinates onto screen cells, y up to rows down.
type viewport struct {
	minX, minY, maxX, maxY float64
	w, h                   int
}

func (a *Arena) viewport(dst *core.Screen) viewport {
	pa := a.cfg.PlayArea
	return viewport{pa.MinX, pa.MinY, pa.MaxX, pa.MaxY, dst.Width(), dst.Height()}
}

func (v viewport) cell(p core.Vec2) (int, int) {
	col := int((p.X - v.minX) / (v.maxX - v.minX) * float64(v.w))
	row := int((v.maxY - p.Y) / (v.maxY - v.minY) * float64(v.h))
	return core.Clamp(col, 0, v.w-1), core.Clamp(row, 0, v.h-1)
}

// fill draws r with ch, covering at least one cell.
func (v viewport) fill(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	x0, y0 := v.cell(core.V(r.X, r.Top()))
	x1, y1 := v.cell(core.V(r.Right(), r.Y))
	if x1 > x0 && r.Right() < v.maxX {
		x1-- // right edge exclusive
	}
	if y1 > y0 && r.Y > v.minY {
		y1--
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dst.Set(x, y, ch, c)
		}
	}
}

// Render draws the arena. Zones in visited are drawn dimmed.
func (a *Arena) Render(dst *core.Screen, visited map[string]bool) {
	dst.Clear()
	v := a.viewport(dst)

	for _, z := range a.level.Zones {
		c := core.ColorGreen
		if visited[z.Name] {
			c = core.ColorGray
		}
		v.fill(dst, z.Bounds, ZoneChar, c)
	}
	v.fill(dst, a.level.Goal.Bounds, GoalChar, core.ColorYellow)

	for _, w := range a.level.Barriers {
		v.fill(dst, w.Bounds, BarrierChar, core.ColorGray)
	}
	for _, p := range a.level.Platforms {
		x0, y := v.cell(core.V(p.Bounds.X, p.Bounds.Top()))
		x1, _ := v.cell(core.V(p.Bounds.Right(), p.Bounds.Top()))
		for x := x0; x <= x1; x++ {
			dst.Set(x, y, PlatformChar, core.ColorRed)
		}
	}
	for _, l := range a.level.Ladders {
		v.fill(dst, l.Bounds, LadderChar, core.ColorCyan)
	}

	sx, sy := v.cell(a.level.Spawner)
	dst.Set(sx, sy, SpawnerChar, core.ColorMagenta)

	for _, b := range a.barrels.Barrels() {
		x, y := v.cell(b.Pos)
		dst.Set(x, y, BarrelChar, core.ColorOrange)
	}

	px, py := v.cell(a.player.pos)
	dst.Set(px, py, PlayerChar, core.ColorBlue)
}
