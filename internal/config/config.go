// Package config provides YAML-based configuration loading and difficulty
// presets for the hackslash arena.
package config

// Config contains every tunable of the arena simulation.
type Config struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Clock      ClockConfig      `yaml:"clock"`
	Player     PlayerConfig     `yaml:"player"`
	Weapon     WeaponConfig     `yaml:"weapon"`
	Mobs       MobsConfig       `yaml:"mobs"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ArenaConfig defines the play area in world units.
type ArenaConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	CellSize float64 `yaml:"cell_size"` // spatial grid cell edge
}

// ClockConfig defines the fixed timestep, in seconds.
type ClockConfig struct {
	Step     float64 `yaml:"step"`
	MaxFrame float64 `yaml:"max_frame"` // longest wall-clock frame fed to the accumulator
}

// PlayerConfig defines the player body.
type PlayerConfig struct {
	Radius    float64 `yaml:"radius"`
	HP        int     `yaml:"hp"`
	MoveSpeed float64 `yaml:"move_speed"`
}

// WeaponConfig defines the melee swing.
type WeaponConfig struct {
	Reach             float64 `yaml:"reach"`
	Radius            float64 `yaml:"radius"`
	Cooldown          float64 `yaml:"cooldown"`
	SwingTime         float64 `yaml:"swing_time"`
	DeflectMultiplier float64 `yaml:"deflect_multiplier"`
}

// Range is an inclusive [Min, Max] interval sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// MobsConfig defines enemy and projectile parameters.
type MobsConfig struct {
	Radius         float64      `yaml:"radius"`
	MeleeSpeed     Range        `yaml:"melee_speed"`
	RangedSpeed    Range        `yaml:"ranged_speed"`
	SafeDistance   float64      `yaml:"safe_distance"`
	ScorePerKill   int          `yaml:"score_per_kill"`
	SeparationStep float64      `yaml:"separation_step"`
	Bullet         BulletConfig `yaml:"bullet"`
}

// BulletConfig defines ranged fire.
type BulletConfig struct {
	Radius       float64 `yaml:"radius"`
	Speed        float64 `yaml:"speed"`
	FireInterval float64 `yaml:"fire_interval"`
	FireJitter   float64 `yaml:"fire_jitter"`
}

// SpawnerConfig defines the wave ramp.
type SpawnerConfig struct {
	InitialRequired   int     `yaml:"initial_required"`
	Increment         int     `yaml:"increment"`
	Offset            float64 `yaml:"offset"` // distance past the edge a mob appears at
	SpeedTierInterval int     `yaml:"speed_tier_interval"`
	SpeedBonusPerTier float64 `yaml:"speed_bonus_per_tier"`
}

// DifficultyConfig records the preset the config was built with.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}
