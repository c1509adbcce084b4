package env

import (
	"context"

	"github.com/maxogod/AI-Donkey-Kong/internal/agent"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
	"github.com/maxogod/AI-Donkey-Kong/internal/registry"
	"github.com/maxogod/AI-Donkey-Kong/internal/transcript"
)

// Tick is what a runner reports for every step.
type Tick struct {
	EpisodeID string
	Tick      int
	Action    core.ActionPair
	Reward    float64
	Phase     agent.Phase
	Position  core.Vec2
	Terminal  bool
}

// Record converts the tick into a transcript line.
func (t Tick) Record() transcript.Record {
	return transcript.Record{
		EpisodeID: t.EpisodeID,
		Tick:      t.Tick,
		Action:    t.Action,
		Reward:    t.Reward,
		Phase:     t.Phase.String(),
		X:         t.Position.X,
		Y:         t.Position.Y,
		Terminal:  t.Terminal,
	}
}

// RunEpisode plays one full episode with the policy. onTick, if non-nil, is
// called after every step. Cancelling ctx stops the episode between ticks.
func RunEpisode(ctx context.Context, e *Env, p registry.Policy, onTick func(Tick)) (Summary, error) {
	obs := e.Reset()
	p.Reset(e.Schema(), e.seed)

	for {
		if err := ctx.Err(); err != nil {
			return e.Summary(), err
		}

		action := p.Act(obs)
		res := e.Step(action)
		obs = res.Observation

		if onTick != nil {
			onTick(Tick{
				EpisodeID: res.EpisodeID,
				Tick:      res.Tick,
				Action:    action,
				Reward:    res.Reward,
				Phase:     e.agent.Phase(),
				Position:  e.agent.State().Position,
				Terminal:  res.Terminal,
			})
		}
		if res.Terminal {
			return e.Summary(), nil
		}
	}
}
