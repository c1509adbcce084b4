// Package env is the trainer-facing environment: it pairs the reference
// arena with an agent and exposes Reset/Step over whole episodes.
package env

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/maxogod/AI-Donkey-Kong/internal/agent"
	"github.com/maxogod/AI-Donkey-Kong/internal/arena"
	"github.com/maxogod/AI-Donkey-Kong/internal/config"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
	"github.com/maxogod/AI-Donkey-Kong/internal/storage"
)

// StepResult is one environment tick.
type StepResult struct {
	agent.StepResult
	Tick      int
	EpisodeID string
}

// Summary describes an episode, finished or in progress.
type Summary struct {
	EpisodeID    string
	Seed         int64
	Outcome      agent.Outcome
	Cause        string
	Reward       float64
	Ticks        int
	HighestY     float64
	ZonesVisited int
	Difficulty   float64
}

// Episode converts the summary into a storage row for the given policy.
func (s Summary) Episode(policy string) storage.Episode {
	return storage.Episode{
		EpisodeID:    s.EpisodeID,
		Policy:       policy,
		Outcome:      s.Outcome.String(),
		Cause:        s.Cause,
		Reward:       s.Reward,
		Ticks:        s.Ticks,
		HighestY:     s.HighestY,
		ZonesVisited: s.ZonesVisited,
		Seed:         s.Seed,
		Difficulty:   s.Difficulty,
	}
}

// Env runs episodes of one agent in one arena. It is not safe for
// concurrent use; each session owns its own Env.
type Env struct {
	cfg        config.AgentConfig
	runtime    core.RuntimeConfig
	arena      *arena.Arena
	agent      *agent.Agent
	curriculum *config.CurriculumManager
	logger     *log.Logger
	explore    float64

	episodeID string
	seed      int64
	episodes  int // Finished episodes
	wins      int
	last      StepResult
	done      bool
}

// Option configures an Env.
type Option func(*Env)

// WithLogger sets the logger for the environment and its agent.
func WithLogger(l *log.Logger) Option {
	return func(e *Env) {
		e.logger = l
	}
}

// WithExploration wraps the agent in an epsilon-exploration decorator.
func WithExploration(epsilon float64) Option {
	return func(e *Env) {
		e.explore = epsilon
	}
}

// New creates an environment. Call Reset before the first Step.
func New(cfg config.AgentConfig, runtime core.RuntimeConfig, opts ...Option) (*Env, error) {
	e := &Env{
		cfg:        cfg,
		runtime:    runtime,
		curriculum: config.NewCurriculumManager(cfg.Arena.Difficulty),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "env", Level: log.WarnLevel})
	}

	a, err := arena.New(cfg, runtime)
	if err != nil {
		return nil, err
	}
	e.arena = a

	agentOpts := []agent.Option{agent.WithLogger(e.logger.WithPrefix("agent"))}
	if e.explore > 0 {
		agentOpts = append(agentOpts, agent.WithActionDecorator(agent.NewEpsilonExplorer(e.explore, runtime.Seed)))
	}
	ag, err := agent.New(cfg, a, a.Player(), agentOpts...)
	if err != nil {
		return nil, err
	}
	e.agent = ag
	e.done = true
	return e, nil
}

// Reset starts a new episode and returns its first observation. Each
// episode gets a fresh ID and the next seed in sequence.
func (e *Env) Reset() agent.Observation {
	e.episodeID = uuid.NewString()
	e.seed = e.runtime.Seed + int64(e.episodes)

	e.arena.SetDifficulty(e.curriculum.Level(e.episodes, e.wins))
	e.arena.Reset(e.seed)
	e.agent.Reset()
	e.done = false

	obs := e.agent.Observe(e.arena.Scene())
	e.last = StepResult{
		StepResult: agent.StepResult{Observation: obs},
		EpisodeID:  e.episodeID,
	}
	e.logger.Debug("episode start", "id", e.episodeID, "seed", e.seed, "difficulty", e.arena.Barrels().Level())
	return obs
}

// Step advances the world one tick and lets the agent act on it. Stepping
// a finished episode returns the terminal result again.
func (e *Env) Step(action core.ActionPair) StepResult {
	if e.done {
		r := e.last
		r.Reward = 0
		return r
	}

	frame := e.arena.Advance()
	res := e.agent.Step(action, frame)

	e.last = StepResult{
		StepResult: res,
		Tick:       e.agent.State().Ticks,
		EpisodeID:  e.episodeID,
	}
	if res.Terminal {
		e.done = true
		e.episodes++
		if res.Outcome == agent.OutcomeWin {
			e.wins++
		}
		e.logger.Info("episode end",
			"id", e.episodeID, "outcome", res.Outcome, "cause", res.Cause,
			"reward", e.agent.State().EpisodeReward, "ticks", e.last.Tick)
	}
	return e.last
}

// Teleport warps the agent, suspending off-screen death until it is back
// inside the play area.
func (e *Env) Teleport(p core.Vec2) {
	if e.done {
		return
	}
	e.agent.Teleport(p)
}

// Summary describes the current or last episode.
func (e *Env) Summary() Summary {
	st := e.agent.State()
	visited := 0
	for _, z := range e.agent.Zones() {
		if z.Visited {
			visited++
		}
	}
	return Summary{
		EpisodeID:    e.episodeID,
		Seed:         e.seed,
		Outcome:      e.agent.Outcome(),
		Cause:        e.last.Cause,
		Reward:       st.EpisodeReward,
		Ticks:        st.Ticks,
		HighestY:     st.HighestY,
		ZonesVisited: visited,
		Difficulty:   e.arena.Barrels().Level(),
	}
}

// Render draws the arena with visited zones dimmed.
func (e *Env) Render(dst *core.Screen) {
	visited := make(map[string]bool)
	for _, z := range e.agent.Zones() {
		if z.Visited {
			visited[z.Name] = true
		}
	}
	e.arena.Render(dst, visited)
}

// Done reports whether the current episode has ended.
func (e *Env) Done() bool { return e.done }

// EpisodeID returns the current episode identifier.
func (e *Env) EpisodeID() string { return e.episodeID }

// Episodes returns the number of finished episodes and wins.
func (e *Env) Episodes() (episodes, wins int) { return e.episodes, e.wins }

// Agent exposes the agent for viewers.
func (e *Env) Agent() *agent.Agent { return e.agent }

// Arena exposes the world for viewers.
func (e *Env) Arena() *arena.Arena { return e.arena }

// Config returns the environment configuration.
func (e *Env) Config() config.AgentConfig { return e.cfg }

// ObservationSize returns the observation vector length.
func (e *Env) ObservationSize() int { return e.agent.ObservationSize() }

// Schema returns one label per observation slot.
func (e *Env) Schema() []string { return e.agent.ObservationSchema() }
