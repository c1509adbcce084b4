package core

// Horizontal is the horizontal action branch.
// Values match the discrete indices a trainer sends.
type Horizontal int

const (
	HorizontalStill Horizontal = iota
	HorizontalRight
	HorizontalLeft
)

// HorizontalBranchSize is the number of valid horizontal actions.
const HorizontalBranchSize = 3

// Valid reports whether h is a known horizontal action.
func (h Horizontal) Valid() bool {
	return h >= HorizontalStill && h <= HorizontalLeft
}

// Direction returns the signed unit intent: +1 right, -1 left, 0 still.
func (h Horizontal) Direction() float64 {
	switch h {
	case HorizontalRight:
		return 1
	case HorizontalLeft:
		return -1
	default:
		return 0
	}
}

// String returns a human-readable name for the action.
func (h Horizontal) String() string {
	switch h {
	case HorizontalStill:
		return "Still"
	case HorizontalRight:
		return "Right"
	case HorizontalLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Vertical is the vertical action branch.
type Vertical int

const (
	VerticalStill Vertical = iota
	VerticalJump
	VerticalClimbUp
	VerticalClimbDown
)

// VerticalBranchSize is the number of valid vertical actions.
const VerticalBranchSize = 4

// Valid reports whether v is a known vertical action.
func (v Vertical) Valid() bool {
	return v >= VerticalStill && v <= VerticalClimbDown
}

// ClimbDirection returns +1 for climb up, -1 for climb down and 0 otherwise.
func (v Vertical) ClimbDirection() float64 {
	switch v {
	case VerticalClimbUp:
		return 1
	case VerticalClimbDown:
		return -1
	default:
		return 0
	}
}

// String returns a human-readable name for the action.
func (v Vertical) String() string {
	switch v {
	case VerticalStill:
		return "Still"
	case VerticalJump:
		return "Jump"
	case VerticalClimbUp:
		return "ClimbUp"
	case VerticalClimbDown:
		return "ClimbDown"
	default:
		return "Unknown"
	}
}

// ActionPair is the discrete action delivered for one tick.
// Indices are not validated on construction; the agent decides how to treat
// out-of-range values.
type ActionPair struct {
	Horizontal Horizontal `json:"h"`
	Vertical   Vertical   `json:"v"`
}

// Act builds an ActionPair from raw branch indices.
func Act(h, v int) ActionPair {
	return ActionPair{Horizontal: Horizontal(h), Vertical: Vertical(v)}
}

// Noop is the "do nothing" action on both branches.
var Noop = ActionPair{}

// Sanitize replaces each invalid branch with its "still" value and reports
// which branches were replaced.
func (a ActionPair) Sanitize() (clean ActionPair, badH, badV bool) {
	clean = a
	if !a.Horizontal.Valid() {
		clean.Horizontal = HorizontalStill
		badH = true
	}
	if !a.Vertical.Valid() {
		clean.Vertical = VerticalStill
		badV = true
	}
	return clean, badH, badV
}
