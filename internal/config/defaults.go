package config

import (
	_ "embed"
)

//go:embed defaults/hackslash.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It mirrors the embedded YAML
// and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Arena: ArenaConfig{
			Width:    1280,
			Height:   720,
			CellSize: 64,
		},
		Clock: ClockConfig{
			Step:     1.0 / 60.0,
			MaxFrame: 0.25,
		},
		Player: PlayerConfig{
			Radius:    25,
			HP:        10,
			MoveSpeed: 180,
		},
		Weapon: WeaponConfig{
			Reach:             50,
			Radius:            30,
			Cooldown:          0.4,
			SwingTime:         0.15,
			DeflectMultiplier: 1.5,
		},
		Mobs: MobsConfig{
			Radius:         20,
			MeleeSpeed:     Range{Min: 30, Max: 100},
			RangedSpeed:    Range{Min: 15, Max: 30},
			SafeDistance:   300,
			ScorePerKill:   10,
			SeparationStep: 0.5,
			Bullet: BulletConfig{
				Radius:       5,
				Speed:        300,
				FireInterval: 5,
				FireJitter:   4,
			},
		},
		Spawner: SpawnerConfig{
			InitialRequired:   5,
			Increment:         2,
			Offset:            20,
			SpeedTierInterval: 3,
			SpeedBonusPerTier: 10,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
