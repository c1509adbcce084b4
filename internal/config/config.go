// Package config provides YAML-based agent and arena configuration loading,
// validation and curriculum management.
package config

// AgentConfig contains all configuration for the climbing agent and the
// reference arena it is trained in.
type AgentConfig struct {
	Movement    MovementConfig    `yaml:"movement" json:"movement"`
	GroundCheck GroundCheckConfig `yaml:"ground_check" json:"ground_check"`
	Spawn       Point             `yaml:"spawn" json:"spawn"`
	PlayArea    Area              `yaml:"play_area" json:"play_area"`
	Rewards     RewardConfig      `yaml:"rewards" json:"rewards"`
	Zones       []ZoneConfig      `yaml:"zones" json:"zones"`
	Idle        IdleConfig        `yaml:"idle" json:"idle"`
	Progress    ProgressConfig    `yaml:"progress" json:"progress"`
	Observation ObservationConfig `yaml:"observation" json:"observation"`
	Policies    PolicyConfig      `yaml:"policies" json:"policies"`
	Episode     EpisodeConfig     `yaml:"episode" json:"episode"`
	Arena       ArenaConfig       `yaml:"arena" json:"arena"`
}

// MovementConfig defines how discrete actions become velocity commands.
type MovementConfig struct {
	MoveSpeed      float64 `yaml:"move_speed" json:"move_speed"`
	JumpSpeed      float64 `yaml:"jump_speed" json:"jump_speed"`
	SlipperyFactor float64 `yaml:"slippery_factor" json:"slippery_factor"` // Blend toward target velocity per tick
	ClimbSpeed     float64 `yaml:"climb_speed" json:"climb_speed"`
	GravityScale   float64 `yaml:"gravity_scale" json:"gravity_scale"` // Restored when not climbing
}

// GroundCheckConfig defines the downward grounded probe.
type GroundCheckConfig struct {
	Distance float64 `yaml:"distance" json:"distance"`
	OffsetY  float64 `yaml:"offset_y" json:"offset_y"` // Probe origin relative to the agent center
}

// Point is a position in world units.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Area is an axis-aligned region in world units.
type Area struct {
	MinX float64 `yaml:"min_x" json:"min_x"`
	MinY float64 `yaml:"min_y" json:"min_y"`
	MaxX float64 `yaml:"max_x" json:"max_x"`
	MaxY float64 `yaml:"max_y" json:"max_y"`
}

// RewardConfig defines the shaped reward schedule.
type RewardConfig struct {
	BaseZoneReward    float64 `yaml:"base_zone_reward" json:"base_zone_reward"`
	ReenterPenalty    float64 `yaml:"reenter_penalty" json:"reenter_penalty"`
	WinReward         float64 `yaml:"win_reward" json:"win_reward"`
	DeathPenalty      float64 `yaml:"death_penalty" json:"death_penalty"`
	GoalMaxDistance   float64 `yaml:"goal_max_distance" json:"goal_max_distance"` // Distance at which death is fully penalized
	LadderUpReward    float64 `yaml:"ladder_up_reward" json:"ladder_up_reward"`
	LadderDownPenalty float64 `yaml:"ladder_down_penalty" json:"ladder_down_penalty"`
	IdlePenalty       float64 `yaml:"idle_penalty" json:"idle_penalty"`
	ProgressReward    float64 `yaml:"progress_reward" json:"progress_reward"`
	HazardRadius      float64 `yaml:"hazard_radius" json:"hazard_radius"`
	HazardPenalty     float64 `yaml:"hazard_penalty" json:"hazard_penalty"`
	ShapingClamp      float64 `yaml:"shaping_clamp" json:"shaping_clamp"` // Per-tick bound on non-terminal terms
}

// ZoneConfig names a checkpoint zone and its static bonus.
// Zones are listed in checkpoint order.
type ZoneConfig struct {
	Name  string  `yaml:"name" json:"name"`
	Bonus float64 `yaml:"bonus" json:"bonus"`
}

// Stuck-axis combinators for idle detection.
const (
	StuckAxesAnd = "and"
	StuckAxesOr  = "or"
)

// IdleConfig defines stagnation detection.
type IdleConfig struct {
	ThresholdX float64 `yaml:"threshold_x" json:"threshold_x"`
	ThresholdY float64 `yaml:"threshold_y" json:"threshold_y"`
	LimitTicks int     `yaml:"limit_ticks" json:"limit_ticks"`
	StuckAxes  string  `yaml:"stuck_axes" json:"stuck_axes"` // "and" or "or"
}

// ProgressConfig defines horizontal progress milestones.
type ProgressConfig struct {
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// ObservationConfig defines the observation vector shape and normalization.
type ObservationConfig struct {
	MaxDistance  float64 `yaml:"max_distance" json:"max_distance"`
	MaxSpeed     float64 `yaml:"max_speed" json:"max_speed"`
	LadderSlots  int     `yaml:"ladder_slots" json:"ladder_slots"`
	HazardSlots  int     `yaml:"hazard_slots" json:"hazard_slots"`
	BarrierSlots int     `yaml:"barrier_slots" json:"barrier_slots"` // 0 drops the barrier range
}

// PolicyConfig holds rule switches that differ between known variants.
type PolicyConfig struct {
	LadderAssist       bool    `yaml:"ladder_assist" json:"ladder_assist"`
	LadderAssistRadius float64 `yaml:"ladder_assist_radius" json:"ladder_assist_radius"`
	RearmOnReenter     bool    `yaml:"rearm_on_reenter" json:"rearm_on_reenter"`
}

// EpisodeConfig defines episode limits and reserved names.
type EpisodeConfig struct {
	MaxTicks int    `yaml:"max_ticks" json:"max_ticks"` // 0 disables the timeout
	GoalName string `yaml:"goal_name" json:"goal_name"`
}

// ArenaConfig configures the reference world.
type ArenaConfig struct {
	Barrels    BarrelConfig     `yaml:"barrels" json:"barrels"`
	DebugWarp  Point            `yaml:"debug_warp" json:"debug_warp"`
	Difficulty DifficultyConfig `yaml:"difficulty" json:"difficulty"`
}

// BarrelConfig defines hazard spawning and motion in the reference world.
type BarrelConfig struct {
	RollSpeed       float64 `yaml:"roll_speed" json:"roll_speed"`
	MinSpawnSeconds float64 `yaml:"min_spawn_seconds" json:"min_spawn_seconds"`
	MaxSpawnSeconds float64 `yaml:"max_spawn_seconds" json:"max_spawn_seconds"`
	FallOneIn       int     `yaml:"fall_one_in" json:"fall_one_in"` // Chance of dropping down a ladder is 1/N
	MaxIdleTicks    int     `yaml:"max_idle_ticks" json:"max_idle_ticks"`
	Radius          float64 `yaml:"radius" json:"radius"`
}

// DifficultyConfig defines the curriculum progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" json:"enabled"`
	InitialLevel float64           `yaml:"initial_level" json:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" json:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" json:"scaling"`
}

// ProgressionConfig defines how difficulty increases across episodes.
type ProgressionConfig struct {
	Type  string `yaml:"type" json:"type"`     // "episodes", "wins", or "none"
	MaxAt int    `yaml:"max_at" json:"max_at"` // Count at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" json:"speed_multiplier"` // Added to roll speed at max difficulty
	SpawnReduction  float64 `yaml:"spawn_reduction" json:"spawn_reduction"`   // Fraction of spawn interval removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the arena curriculum based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *AgentConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Arena.Difficulty.Enabled = false
	default:
		cfg.Arena.Difficulty.Enabled = true
		cfg.Arena.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// ZoneNames returns zone names in checkpoint order.
func (c AgentConfig) ZoneNames() []string {
	names := make([]string, len(c.Zones))
	for i, z := range c.Zones {
		names[i] = z.Name
	}
	return names
}
