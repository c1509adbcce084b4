package policy

import (
	"github.com/maxogod/AI-Donkey-Kong/internal/agent"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
	"github.com/maxogod/AI-Donkey-Kong/internal/registry"
)

func init() {
	registry.Register("idle", func() registry.Policy { return Idle{} })
}

// Idle never acts. Useful as a baseline for the idle penalty.
type Idle struct{}

func (Idle) ID() string                            { return "idle" }
func (Idle) Title() string                         { return "Do Nothing" }
func (Idle) Reset([]string, int64)                 {}
func (Idle) Act(agent.Observation) core.ActionPair { return core.Noop }
