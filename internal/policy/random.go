package policy

import (
	"math/rand"

	"github.com/maxogod/AI-Donkey-Kong/internal/agent"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
	"github.com/maxogod/AI-Donkey-Kong/internal/registry"
)

func init() {
	registry.Register("random", func() registry.Policy { return NewRandom() })
}

// Random picks uniformly from both action branches every tick.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random policy.
func NewRandom() *Random {
	return &Random{rng: rand.New(rand.NewSource(1))}
}

func (p *Random) ID() string    { return "random" }
func (p *Random) Title() string { return "Uniform Random" }

// Reset reseeds the generator.
func (p *Random) Reset(_ []string, seed int64) {
	p.rng = rand.New(rand.NewSource(seed))
}

// Act implements registry.Policy.
func (p *Random) Act(agent.Observation) core.ActionPair {
	return core.Act(p.rng.Intn(core.HorizontalBranchSize), p.rng.Intn(core.VerticalBranchSize))
}
