package config

import (
	_ "embed"
)

//go:embed defaults/agent.yaml
var defaultAgentYAML []byte

// DefaultAgentConfig returns the built-in configuration.
// It mirrors defaults/agent.yaml and is used when the embedded file cannot be parsed.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Movement: MovementConfig{
			MoveSpeed:      3.0,
			JumpSpeed:      7.0,
			SlipperyFactor: 0.3,
			ClimbSpeed:     2.0,
			GravityScale:   1.5,
		},
		GroundCheck: GroundCheckConfig{
			Distance: 0.2,
			OffsetY:  -0.5,
		},
		Spawn:    Point{X: -4.64, Y: -6.22},
		PlayArea: Area{MinX: -9, MinY: -8, MaxX: 9, MaxY: 8},
		Rewards: RewardConfig{
			BaseZoneReward:    0.3,
			ReenterPenalty:    -0.2,
			WinReward:         1.0,
			DeathPenalty:      -1.0,
			GoalMaxDistance:   20.0,
			LadderUpReward:    0.2,
			LadderDownPenalty: -0.2,
			IdlePenalty:       -0.1,
			ProgressReward:    0.05,
			HazardRadius:      1.5,
			HazardPenalty:     -0.01,
			ShapingClamp:      0.5,
		},
		Zones: []ZoneConfig{
			{Name: "Zone1", Bonus: 0.0},
			{Name: "Zone2", Bonus: 0.05},
			{Name: "Zone3", Bonus: 0.1},
			{Name: "Zone4", Bonus: 0.15},
			{Name: "Zone5", Bonus: 0.2},
		},
		Idle: IdleConfig{
			ThresholdX: 0.01,
			ThresholdY: 0.01,
			LimitTicks: 100,
			StuckAxes:  StuckAxesAnd,
		},
		Progress: ProgressConfig{Threshold: 1.0},
		Observation: ObservationConfig{
			MaxDistance:  20.0,
			MaxSpeed:     10.0,
			LadderSlots:  2,
			HazardSlots:  3,
			BarrierSlots: 2,
		},
		Policies: PolicyConfig{
			LadderAssist:       false,
			LadderAssistRadius: 0.3,
			RearmOnReenter:     false,
		},
		Episode: EpisodeConfig{
			MaxTicks: 3000,
			GoalName: "WinningArea",
		},
		Arena: ArenaConfig{
			DebugWarp: Point{X: 4, Y: 4},
			Barrels: BarrelConfig{
				RollSpeed:       3.0,
				MinSpawnSeconds: 4.0,
				MaxSpawnSeconds: 8.0,
				FallOneIn:       4,
				MaxIdleTicks:    100,
				Radius:          0.3,
			},
			Difficulty: DifficultyConfig{
				Enabled:      true,
				InitialLevel: 0.0,
				Progression: ProgressionConfig{
					Type:  "episodes",
					MaxAt: 500,
				},
				Scaling: ScalingConfig{
					SpeedMultiplier: 0.5,
					SpawnReduction:  0.5,
				},
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultAgentYAML
}
