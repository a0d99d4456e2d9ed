package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports every out-of-range value at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Arena.Width > 0, "arena.width must be positive, got %g", c.Arena.Width)
	check(c.Arena.Height > 0, "arena.height must be positive, got %g", c.Arena.Height)
	check(c.Arena.CellSize > 0, "arena.cell_size must be positive, got %g", c.Arena.CellSize)

	check(c.Clock.Step > 0, "clock.step must be positive, got %g", c.Clock.Step)
	check(c.Clock.MaxFrame >= c.Clock.Step, "clock.max_frame must be at least clock.step, got %g", c.Clock.MaxFrame)

	check(c.Player.Radius > 0, "player.radius must be positive, got %g", c.Player.Radius)
	check(c.Player.HP > 0, "player.hp must be positive, got %d", c.Player.HP)
	check(c.Player.MoveSpeed >= 0, "player.move_speed must not be negative, got %g", c.Player.MoveSpeed)

	check(c.Weapon.Radius > 0, "weapon.radius must be positive, got %g", c.Weapon.Radius)
	check(c.Weapon.Reach >= 0, "weapon.reach must not be negative, got %g", c.Weapon.Reach)
	check(c.Weapon.Cooldown >= 0, "weapon.cooldown must not be negative, got %g", c.Weapon.Cooldown)
	check(c.Weapon.SwingTime >= 0, "weapon.swing_time must not be negative, got %g", c.Weapon.SwingTime)
	check(c.Weapon.DeflectMultiplier > 0, "weapon.deflect_multiplier must be positive, got %g", c.Weapon.DeflectMultiplier)

	check(c.Mobs.Radius > 0, "mobs.radius must be positive, got %g", c.Mobs.Radius)
	check(validRange(c.Mobs.MeleeSpeed), "mobs.melee_speed must satisfy 0 <= min <= max, got %+v", c.Mobs.MeleeSpeed)
	check(validRange(c.Mobs.RangedSpeed), "mobs.ranged_speed must satisfy 0 <= min <= max, got %+v", c.Mobs.RangedSpeed)
	check(c.Mobs.SafeDistance >= 0, "mobs.safe_distance must not be negative, got %g", c.Mobs.SafeDistance)
	check(c.Mobs.ScorePerKill >= 0, "mobs.score_per_kill must not be negative, got %d", c.Mobs.ScorePerKill)
	check(c.Mobs.SeparationStep >= 0, "mobs.separation_step must not be negative, got %g", c.Mobs.SeparationStep)
	check(c.Mobs.Bullet.Radius > 0, "mobs.bullet.radius must be positive, got %g", c.Mobs.Bullet.Radius)
	check(c.Mobs.Bullet.Speed > 0, "mobs.bullet.speed must be positive, got %g", c.Mobs.Bullet.Speed)
	check(c.Mobs.Bullet.FireInterval > 0, "mobs.bullet.fire_interval must be positive, got %g", c.Mobs.Bullet.FireInterval)
	check(c.Mobs.Bullet.FireJitter >= 0, "mobs.bullet.fire_jitter must not be negative, got %g", c.Mobs.Bullet.FireJitter)

	check(c.Spawner.InitialRequired >= 0, "spawner.initial_required must not be negative, got %d", c.Spawner.InitialRequired)
	check(c.Spawner.Increment >= 0, "spawner.increment must not be negative, got %d", c.Spawner.Increment)
	check(c.Spawner.InitialRequired+c.Spawner.Increment > 0, "spawner must create at least one mob per wave")
	check(c.Spawner.SpeedTierInterval > 0, "spawner.speed_tier_interval must be positive, got %d", c.Spawner.SpeedTierInterval)
	check(c.Spawner.SpeedBonusPerTier >= 0, "spawner.speed_bonus_per_tier must not be negative, got %g", c.Spawner.SpeedBonusPerTier)

	switch c.Difficulty.Preset {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, "":
	default:
		check(false, "difficulty.preset %q is unknown", c.Difficulty.Preset)
	}

	return errors.Join(errs...)
}

func validRange(r Range) bool {
	return r.Min >= 0 && r.Min <= r.Max
}
