// Package agent implements the decision and reward-shaping engine of the
// climbing agent: one synchronous Step per fixed simulation tick turns a
// discrete action pair and the tick's world events into velocity commands,
// a shaped reward and the next observation.
package agent

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/maxogod/AI-Donkey-Kong/internal/config"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

// Phase is the lifecycle state of the agent.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseClimbing
	PhaseTeleporting
	PhaseTerminal
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseActive:
		return "Active"
	case PhaseClimbing:
		return "Climbing"
	case PhaseTeleporting:
		return "Teleporting"
	case PhaseTerminal:
		return "Terminal"
	default:
		return "Unknown"
	}
}

// Outcome describes how an episode ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeDeath
	OutcomeTimeout
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWin:
		return "win"
	case OutcomeDeath:
		return "death"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// AgentState is the mutable agent state, owned by the Agent.
type AgentState struct {
	Position      core.Vec2
	Velocity      core.Vec2
	IsGrounded    bool
	IsClimbing    bool
	IsTeleporting bool
	HighestY      float64
	EpisodeReward float64
	Ticks         int
}

// StepResult is returned by Agent.Step after each tick.
type StepResult struct {
	Observation Observation
	Reward      float64
	Terminal    bool
	Outcome     Outcome
	Cause       string
	Breakdown   RewardBreakdown
}

// Agent is the episode lifecycle manager. It owns the agent state, the zone
// ledger and the monitors, and is driven by a caller-owned loop.
// An Agent is not safe for concurrent use.
type Agent struct {
	cfg       config.AgentConfig
	world     World
	body      Body
	logger    *log.Logger
	decorator ActionDecorator

	movement Movement
	ledger   *ZoneLedger
	idle     *IdleMonitor
	progress *ProgressMonitor
	shaper   *RewardShaper
	builder  *ObservationBuilder

	state   AgentState
	phase   Phase
	outcome Outcome
	cause   string
	ladders map[string]bool // Ladder triggers currently overlapped
	last    StepResult
}

// Option configures an Agent.
type Option func(*Agent)

// WithLogger sets the logger used for non-fatal conditions.
func WithLogger(l *log.Logger) Option {
	return func(a *Agent) {
		a.logger = l
	}
}

// WithActionDecorator installs a decorator applied to every incoming action.
func WithActionDecorator(d ActionDecorator) Option {
	return func(a *Agent) {
		a.decorator = d
	}
}

// New creates an agent bound to a world and its body, and resets it to the
// spawn point.
func New(cfg config.AgentConfig, world World, body Body, opts ...Option) (*Agent, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if world == nil || body == nil {
		return nil, fmt.Errorf("agent: world and body are required")
	}

	spawn := spawnPoint(cfg)
	a := &Agent{
		cfg:      cfg,
		world:    world,
		body:     body,
		movement: NewMovement(cfg.Movement),
		ledger:   NewZoneLedger(cfg.Zones, cfg.Rewards, cfg.Policies.RearmOnReenter),
		idle:     NewIdleMonitor(cfg.Idle, spawn),
		progress: NewProgressMonitor(cfg.Progress, spawn.X),
		shaper:   NewRewardShaper(cfg.Rewards),
		builder:  NewObservationBuilder(cfg.Observation),
		ladders:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "agent",
			Level:  log.WarnLevel,
		})
	}

	// The player never collides with barriers or other players.
	world.IgnoreCollision(core.CategoryPlayer, core.CategoryBarrier, true)
	world.IgnoreCollision(core.CategoryPlayer, core.CategoryPlayer, true)

	a.Reset()
	return a, nil
}

func spawnPoint(cfg config.AgentConfig) core.Vec2 {
	return core.V(cfg.Spawn.X, cfg.Spawn.Y)
}

// Reset starts a fresh episode: spawn position, zero velocity, restored
// gravity, cleared counters and a re-initialized zone ledger.
// It is idempotent and safe to call at any point, including mid-tick.
func (a *Agent) Reset() {
	spawn := spawnPoint(a.cfg)

	a.body.Teleport(spawn)
	a.body.SetVelocity(core.Vec2{})
	a.body.SetGravityScale(a.movement.GravityScale(false))
	a.world.IgnoreCollision(core.CategoryPlayer, core.CategoryGround, false)

	a.state = AgentState{
		Position: spawn,
		HighestY: spawn.Y,
	}
	a.phase = PhaseIdle
	a.outcome = OutcomeNone
	a.cause = ""
	a.ladders = make(map[string]bool)
	a.last = StepResult{}

	a.ledger.Reset()
	a.idle.Reset(spawn)
	a.progress.Reset(spawn.X)
	a.shaper.Reset()

	a.logger.Debug("episode reset", "spawn", spawn)
}

// Teleport moves the agent without physics. Off-screen death detection is
// suspended until the agent is back inside the play area or EndTeleport is called.
func (a *Agent) Teleport(p core.Vec2) {
	if a.phase == PhaseTerminal {
		return
	}
	a.state.IsTeleporting = true
	a.body.Teleport(p)
	a.state.Position = p
	a.state.Velocity = core.Vec2{}
	a.refreshPhase()
}

// EndTeleport clears the teleporting flag.
func (a *Agent) EndTeleport() {
	a.state.IsTeleporting = false
	a.refreshPhase()
}

// Step advances the agent by one tick.
//
// Order: sense (ground probe), lifecycle events, play-area check, movement,
// monitors, timeout, reward, observation. Once the episode is terminal every
// further Step is a no-op returning the last observation and zero reward.
func (a *Agent) Step(action core.ActionPair, frame Frame) StepResult {
	if a.phase == PhaseTerminal {
		return StepResult{
			Observation: a.last.Observation,
			Terminal:    true,
			Outcome:     a.outcome,
			Cause:       a.cause,
		}
	}

	a.state.Ticks++
	a.shaper.Begin()
	a.sense()

	for _, ev := range frame.Events {
		if a.phase == PhaseTerminal {
			break // first terminal event wins
		}
		a.handleEvent(ev, frame.Scene)
	}

	if a.phase != PhaseTerminal {
		a.checkPlayArea(frame.Scene)
	}

	if a.phase != PhaseTerminal {
		a.move(action, frame.Scene)
		a.monitor()
		if limit := a.cfg.Episode.MaxTicks; limit > 0 && a.state.Ticks >= limit {
			a.terminate(OutcomeTimeout, "max ticks reached")
		}
	}

	reward, breakdown := a.shaper.Finish()
	a.state.EpisodeReward = a.shaper.Total()

	a.last = StepResult{
		Observation: a.builder.Build(a.state, a.ledger, frame.Scene),
		Reward:      reward,
		Terminal:    a.phase == PhaseTerminal,
		Outcome:     a.outcome,
		Cause:       a.cause,
		Breakdown:   breakdown,
	}
	return a.last
}

// Observe builds an observation of the current state without advancing time.
func (a *Agent) Observe(scene Scene) Observation {
	return a.builder.Build(a.state, a.ledger, scene)
}

// sense refreshes kinematics and the grounded probe from the world.
func (a *Agent) sense() {
	a.state.Position = a.body.Position()
	a.state.Velocity = a.body.Velocity()

	origin := a.state.Position.Add(core.V(0, a.cfg.GroundCheck.OffsetY))
	_, hit := a.world.RaycastDown(origin, a.cfg.GroundCheck.Distance, core.MaskOf(core.CategoryGround))
	a.state.IsGrounded = hit

	a.refreshPhase()
}

func (a *Agent) handleEvent(ev Event, scene Scene) {
	other := ev.Other
	switch ev.Kind {
	case EventTriggerEnter:
		switch {
		case other.Category == core.CategoryGoal || other.ID == a.cfg.Episode.GoalName:
			a.shaper.SetWin()
			a.terminate(OutcomeWin, "reached "+other.ID)
		case other.Category == core.CategoryLadder:
			a.enterLadder(other.ID)
		case other.Category == core.CategoryZone:
			if r, ok := a.ledger.OnZoneTrigger(other.ID); ok {
				a.shaper.AddZone(r)
			}
		}

	case EventTriggerExit:
		if other.Category == core.CategoryLadder {
			a.exitLadder(other.ID, scene)
		}

	case EventCollision:
		if other.Category == core.CategoryHazard {
			a.die("hit "+other.ID, scene)
		}
	}
}

// enterLadder starts climbing on the first overlapped ladder.
func (a *Agent) enterLadder(id string) {
	if a.ladders[id] {
		return
	}
	a.ladders[id] = true
	if len(a.ladders) > 1 {
		return
	}

	a.state.IsClimbing = true
	a.body.SetGravityScale(a.movement.GravityScale(true))
	a.state.Velocity.Y = 0
	a.body.SetVelocity(a.state.Velocity)
	a.world.IgnoreCollision(core.CategoryPlayer, core.CategoryGround, true)
	a.refreshPhase()
}

// exitLadder stops climbing once no ladder is overlapped and scores the exit
// against the best height so far. An exit caused by a teleport is not scored.
func (a *Agent) exitLadder(id string, scene Scene) {
	if !a.ladders[id] {
		return
	}
	delete(a.ladders, id)
	if len(a.ladders) > 0 {
		return
	}

	a.state.IsClimbing = false
	a.body.SetGravityScale(a.movement.GravityScale(false))
	a.world.IgnoreCollision(core.CategoryPlayer, core.CategoryGround, false)
	if a.state.IsTeleporting {
		a.refreshPhase()
		return
	}

	dir := core.Sign(a.state.Velocity.Y)
	if dir == 0 {
		if l, ok := scene.Ladders[id]; ok {
			dir = core.Sign(a.state.Position.Y - l.Position.Y)
		}
	}
	a.shaper.AddLadderExit(dir, a.state.Position.Y, a.state.HighestY)
	if dir > 0 && a.state.Position.Y > a.state.HighestY {
		a.state.HighestY = a.state.Position.Y
	}
	a.refreshPhase()
}

// checkPlayArea kills the agent when it leaves the visible area, unless a
// teleport is in progress. A teleport ends once the agent is back inside.
func (a *Agent) checkPlayArea(scene Scene) {
	inside := a.insidePlayArea(a.state.Position)
	if a.state.IsTeleporting {
		if inside {
			a.state.IsTeleporting = false
			a.refreshPhase()
		}
		return
	}
	if !inside {
		a.die("left play area", scene)
	}
}

func (a *Agent) insidePlayArea(p core.Vec2) bool {
	pa := a.cfg.PlayArea
	return p.X >= pa.MinX && p.X <= pa.MaxX && p.Y >= pa.MinY && p.Y <= pa.MaxY
}

func (a *Agent) die(cause string, scene Scene) {
	d := a.cfg.Rewards.GoalMaxDistance
	if scene.Goal != nil {
		d = a.state.Position.Dist(*scene.Goal)
	}
	a.shaper.SetDeath(d)
	a.terminate(OutcomeDeath, cause)
}

func (a *Agent) terminate(o Outcome, cause string) {
	if a.phase == PhaseTerminal {
		return
	}
	a.phase = PhaseTerminal
	a.outcome = o
	a.cause = cause
	a.logger.Debug("episode terminal", "outcome", o, "cause", cause, "ticks", a.state.Ticks)
}

// move interprets the action and issues one velocity command.
func (a *Agent) move(action core.ActionPair, scene Scene) {
	if a.decorator != nil {
		action = a.decorator.Decorate(action)
	}
	clean, badH, badV := action.Sanitize()
	if badH {
		a.logger.Warn("invalid action index", "branch", "horizontal", "value", int(action.Horizontal))
	}
	if badV {
		a.logger.Warn("invalid action index", "branch", "vertical", "value", int(action.Vertical))
	}

	if a.cfg.Policies.LadderAssist && a.nearLadder(scene) {
		clean.Vertical = core.VerticalClimbUp
	}

	vel := a.movement.ApplyHorizontal(a.state.Velocity, clean.Horizontal)
	vel = a.movement.ApplyVertical(vel, clean.Vertical, a.state.IsGrounded, a.state.IsClimbing)
	a.state.Velocity = vel
	a.body.SetVelocity(vel)
}

func (a *Agent) nearLadder(scene Scene) bool {
	for _, l := range scene.Ladders {
		if math.Abs(l.Position.X-a.state.Position.X) <= a.cfg.Policies.LadderAssistRadius {
			return true
		}
	}
	return false
}

// monitor runs the idle, progress and hazard-proximity checks.
func (a *Agent) monitor() {
	pos := a.state.Position
	if a.idle.Tick(pos) {
		a.shaper.AddIdle()
	}
	if a.progress.Tick(pos) {
		a.shaper.AddProgress()
	}

	if a.cfg.Rewards.HazardRadius > 0 {
		near := a.world.OverlapCircle(pos, a.cfg.Rewards.HazardRadius, core.MaskOf(core.CategoryHazard))
		if len(near) > 0 {
			best := math.Inf(1)
			for _, c := range near {
				best = math.Min(best, pos.Dist(c.Position))
			}
			a.shaper.AddHazardProximity(best)
		}
	}
}

// refreshPhase derives the non-terminal phase from the state flags.
func (a *Agent) refreshPhase() {
	if a.phase == PhaseTerminal {
		return
	}
	switch {
	case a.state.IsTeleporting:
		a.phase = PhaseTeleporting
	case a.state.IsClimbing:
		a.phase = PhaseClimbing
	default:
		a.phase = PhaseActive
	}
}

// State returns a copy of the agent state.
func (a *Agent) State() AgentState {
	return a.state
}

// Phase returns the current lifecycle phase.
func (a *Agent) Phase() Phase {
	return a.phase
}

// Outcome returns how the episode ended, or OutcomeNone while it runs.
func (a *Agent) Outcome() Outcome {
	return a.outcome
}

// Zones returns the zone ledger records in checkpoint order.
func (a *Agent) Zones() []ZoneRecord {
	return a.ledger.Records()
}

// IdleCounter returns the current idle window length.
func (a *Agent) IdleCounter() int {
	return a.idle.Counter()
}

// ObservationSize returns the observation vector length.
func (a *Agent) ObservationSize() int {
	return a.builder.Size()
}

// ObservationSchema returns one label per observation slot.
func (a *Agent) ObservationSchema() []string {
	return a.builder.Schema()
}

// Config returns the configuration the agent was built with.
func (a *Agent) Config() config.AgentConfig {
	return a.cfg
}

// ClimbingLadders returns the IDs of ladders currently overlapped, sorted.
func (a *Agent) ClimbingLadders() []string {
	ids := make([]string, 0, len(a.ladders))
	for id := range a.ladders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
