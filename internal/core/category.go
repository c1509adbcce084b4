package core

// Category is a collision capability class. It replaces engine-specific layer
// indices: the agent asks for filter changes by category pair.
type Category int

const (
	CategoryPlayer Category = iota
	CategoryGround
	CategoryLadder
	CategoryHazard
	CategoryBarrier
	CategoryZone
	CategoryGoal

	categoryCount
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case CategoryPlayer:
		return "Player"
	case CategoryGround:
		return "Ground"
	case CategoryLadder:
		return "Ladder"
	case CategoryHazard:
		return "Hazard"
	case CategoryBarrier:
		return "Barrier"
	case CategoryZone:
		return "Zone"
	case CategoryGoal:
		return "Goal"
	default:
		return "Unknown"
	}
}

// Mask is a set of categories used by physics queries.
type Mask uint32

// MaskOf builds a mask from categories.
func MaskOf(cats ...Category) Mask {
	var m Mask
	for _, c := range cats {
		m |= 1 << uint(c)
	}
	return m
}

// Has reports whether the mask includes c.
func (m Mask) Has(c Category) bool {
	return m&(1<<uint(c)) != 0
}

// FilterTable records which category pairs ignore each other.
// It is symmetric: ignoring (a, b) also ignores (b, a).
type FilterTable struct {
	ignored [categoryCount][categoryCount]bool
}

// Set enables or disables collision between a and b.
func (t *FilterTable) Set(a, b Category, ignore bool) {
	if !a.valid() || !b.valid() {
		return
	}
	t.ignored[a][b] = ignore
	t.ignored[b][a] = ignore
}

// Ignored reports whether collisions between a and b are suppressed.
func (t *FilterTable) Ignored(a, b Category) bool {
	if !a.valid() || !b.valid() {
		return false
	}
	return t.ignored[a][b]
}

// Reset re-enables every pair.
func (t *FilterTable) Reset() {
	t.ignored = [categoryCount][categoryCount]bool{}
}

func (c Category) valid() bool {
	return c >= 0 && c < categoryCount
}
