package agent

import (
	"math"

	"github.com/maxogod/AI-Donkey-Kong/internal/config"
	"github.com/maxogod/AI-Donkey-Kong/internal/core"
)

// RewardBreakdown itemizes one tick's reward.
type RewardBreakdown struct {
	Zone     float64 `json:"zone,omitempty"`
	Ladder   float64 `json:"ladder,omitempty"`
	Idle     float64 `json:"idle,omitempty"`
	Progress float64 `json:"progress,omitempty"`
	Hazard   float64 `json:"hazard,omitempty"`
	Terminal float64 `json:"terminal,omitempty"`
	Clamped  bool    `json:"clamped,omitempty"`
}

// Shaping returns the sum of non-terminal terms before clamping.
func (b RewardBreakdown) Shaping() float64 {
	return b.Zone + b.Ladder + b.Idle + b.Progress + b.Hazard
}

// RewardShaper accumulates the reward for each tick and for the episode.
type RewardShaper struct {
	cfg   config.RewardConfig
	tick  RewardBreakdown
	total float64
}

// NewRewardShaper creates a reward shaper.
func NewRewardShaper(cfg config.RewardConfig) *RewardShaper {
	return &RewardShaper{cfg: cfg}
}

// Reset clears the episode total.
func (s *RewardShaper) Reset() {
	s.tick = RewardBreakdown{}
	s.total = 0
}

// Begin starts a new tick.
func (s *RewardShaper) Begin() {
	s.tick = RewardBreakdown{}
}

// AddZone records a zone ledger reward.
func (s *RewardShaper) AddZone(r float64) {
	s.tick.Zone += r
}

// AddLadderExit rewards upward exits above the best height and penalizes
// downward exits below it.
func (s *RewardShaper) AddLadderExit(direction, exitY, highestY float64) {
	switch {
	case direction > 0 && exitY > highestY:
		s.tick.Ladder += s.cfg.LadderUpReward
	case direction < 0 && exitY < highestY:
		s.tick.Ladder += s.cfg.LadderDownPenalty
	}
}

// AddIdle applies the idle penalty.
func (s *RewardShaper) AddIdle() {
	s.tick.Idle += s.cfg.IdlePenalty
}

// AddProgress applies the horizontal progress reward.
func (s *RewardShaper) AddProgress() {
	s.tick.Progress += s.cfg.ProgressReward
}

// AddHazardProximity penalizes a hazard at distance d, scaled by closeness.
func (s *RewardShaper) AddHazardProximity(d float64) {
	if s.cfg.HazardRadius <= 0 {
		return
	}
	closeness := core.ClampF(1-d/s.cfg.HazardRadius, 0, 1)
	s.tick.Hazard += s.cfg.HazardPenalty * closeness
}

// SetWin records the win bonus.
func (s *RewardShaper) SetWin() {
	s.tick.Terminal = s.cfg.WinReward
}

// SetDeath records the death penalty, shrunk by proximity to the goal.
func (s *RewardShaper) SetDeath(distanceToGoal float64) {
	s.tick.Terminal = DeathPenalty(s.cfg, distanceToGoal)
}

// Finish clamps the shaping terms, adds the terminal term and returns the
// tick reward.
func (s *RewardShaper) Finish() (float64, RewardBreakdown) {
	shaping := s.tick.Shaping()
	if limit := s.cfg.ShapingClamp; limit > 0 && math.Abs(shaping) > limit {
		shaping = core.ClampF(shaping, -limit, limit)
		s.tick.Clamped = true
	}
	r := shaping + s.tick.Terminal
	s.total += r
	return r, s.tick
}

// Total returns the cumulative episode reward.
func (s *RewardShaper) Total() float64 {
	return s.total
}

// DeathPenalty computes base * (1 - clamp(1 - d/max, 0, 1)).
// Closer deaths yield smaller magnitudes.
func DeathPenalty(cfg config.RewardConfig, distanceToGoal float64) float64 {
	if cfg.GoalMaxDistance <= 0 {
		return cfg.DeathPenalty
	}
	closeness := core.ClampF(1-distanceToGoal/cfg.GoalMaxDistance, 0, 1)
	return cfg.DeathPenalty * (1 - closeness)
}
