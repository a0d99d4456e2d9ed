package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded yaml and Default() differ:\n%+v\n%+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded default.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Player.HP != 10 {
		t.Errorf("embedded HP = %d, want 10", cfg.Player.HP)
	}

	// Local ./configs beats the embedded default.
	writeFile(t, filepath.Join(work, "configs", fileName), "player:\n  hp: 7\n")
	cfg, _ = Load("")
	if cfg.Player.HP != 7 {
		t.Errorf("local HP = %d, want 7", cfg.Player.HP)
	}

	// User dir beats local.
	writeFile(t, filepath.Join(home, ".hackslash", "configs", fileName), "player:\n  hp: 4\n")
	cfg, _ = Load("")
	if cfg.Player.HP != 4 {
		t.Errorf("user HP = %d, want 4", cfg.Player.HP)
	}

	// Explicit path beats everything.
	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "player:\n  hp: 2\n")
	cfg, _ = Load(custom)
	if cfg.Player.HP != 2 {
		t.Errorf("custom HP = %d, want 2", cfg.Player.HP)
	}
	if cfg.Arena.Width != 1280 {
		t.Errorf("unset keys should keep defaults, width = %g", cfg.Arena.Width)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "player: [1, 2\n")
	if _, err := Load(bad); err == nil {
		t.Error("malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "arena:\n  cell_size: 0\n")
	_, err := Load(invalid)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Load(invalid) error = %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero width", func(c *Config) { c.Arena.Width = 0 }, false},
		{"negative cell", func(c *Config) { c.Arena.CellSize = -1 }, false},
		{"zero step", func(c *Config) { c.Clock.Step = 0 }, false},
		{"max frame below step", func(c *Config) { c.Clock.MaxFrame = c.Clock.Step / 2 }, false},
		{"zero hp", func(c *Config) { c.Player.HP = 0 }, false},
		{"inverted melee range", func(c *Config) { c.Mobs.MeleeSpeed = Range{Min: 10, Max: 5} }, false},
		{"zero tier interval", func(c *Config) { c.Spawner.SpeedTierInterval = 0 }, false},
		{"empty waves", func(c *Config) { c.Spawner.InitialRequired, c.Spawner.Increment = 0, 0 }, false},
		{"unknown preset", func(c *Config) { c.Difficulty.Preset = "nightmare" }, false},
		{"degenerate range", func(c *Config) { c.Mobs.RangedSpeed = Range{Min: 20, Max: 20} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	base := Default()

	easy := Default()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Player.HP <= base.Player.HP {
		t.Errorf("easy HP = %d, want more than %d", easy.Player.HP, base.Player.HP)
	}
	if easy.Spawner.Increment >= base.Spawner.Increment {
		t.Errorf("easy increment = %d, want less than %d", easy.Spawner.Increment, base.Spawner.Increment)
	}

	hard := Default()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Player.HP >= base.Player.HP {
		t.Errorf("hard HP = %d, want less than %d", hard.Player.HP, base.Player.HP)
	}
	if hard.Mobs.MeleeSpeed.Max <= base.Mobs.MeleeSpeed.Max {
		t.Errorf("hard melee max = %g, want faster than %g", hard.Mobs.MeleeSpeed.Max, base.Mobs.MeleeSpeed.Max)
	}

	normal := Default()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != base {
		t.Error("normal preset should not change values")
	}

	for _, p := range Presets() {
		cfg := Default()
		ApplyPreset(&cfg, p)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s produces invalid config: %v", p, err)
		}
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
		err  bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"fixed", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParsePreset(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	ApplyPreset(&cfg, DifficultyHard)
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if back != cfg {
		t.Errorf("round trip mismatch:\n%+v\n%+v", back, cfg)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
