package config

import (
	"fmt"
	"slices"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset converts a flag value to a preset. The empty string means
// normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	switch {
	case p == "":
		return DifficultyNormal, nil
	case slices.Contains(Presets(), p):
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want one of %v)", ErrInvalid, s, Presets())
	}
}

// ApplyPreset modifies the config based on a difficulty preset. Normal leaves
// the loaded values untouched so a custom file is honoured as written.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset

	switch preset {
	case DifficultyEasy:
		cfg.Player.HP += cfg.Player.HP / 2
		cfg.Spawner.Increment = max(1, cfg.Spawner.Increment-1)
		cfg.Spawner.SpeedBonusPerTier /= 2
		cfg.Mobs.MeleeSpeed = scaleRange(cfg.Mobs.MeleeSpeed, 0.8)
		cfg.Mobs.Bullet.Speed *= 0.8
	case DifficultyHard:
		cfg.Player.HP = max(1, cfg.Player.HP*6/10)
		cfg.Spawner.Increment++
		cfg.Spawner.SpeedTierInterval = max(1, cfg.Spawner.SpeedTierInterval-1)
		cfg.Spawner.SpeedBonusPerTier *= 1.5
		cfg.Mobs.MeleeSpeed = scaleRange(cfg.Mobs.MeleeSpeed, 1.25)
		cfg.Mobs.Bullet.Speed *= 1.25
	}
}

func scaleRange(r Range, f float64) Range {
	return Range{Min: r.Min * f, Max: r.Max * f}
}
