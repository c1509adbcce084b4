package agent

import (
	"math/rand"

	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

// ActionDecorator rewrites the action before the agent interprets it.
type ActionDecorator interface {
	Decorate(a core.ActionPair) core.ActionPair
}

// ActionDecoratorFunc adapts a function to ActionDecorator.
type ActionDecoratorFunc func(core.ActionPair) core.ActionPair

// Decorate calls f(a).
func (f ActionDecoratorFunc) Decorate(a core.ActionPair) core.ActionPair {
	return f(a)
}

// EpsilonExplorer replaces the action with a uniformly random one with
// probability epsilon.
type EpsilonExplorer struct {
	epsilon float64
	rng     *rand.Rand
}

// NewEpsilonExplorer creates a seeded epsilon-exploration decorator.
func NewEpsilonExplorer(epsilon float64, seed int64) *EpsilonExplorer {
	return &EpsilonExplorer{
		epsilon: core.ClampF(epsilon, 0, 1),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Decorate implements ActionDecorator.
func (e *EpsilonExplorer) Decorate(a core.ActionPair) core.ActionPair {
	if e.epsilon == 0 || e.rng.Float64() >= e.epsilon {
		return a
	}
	return core.Act(e.rng.Intn(core.HorizontalBranchSize), e.rng.Intn(core.VerticalBranchSize))
}
