package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-hackslash/internal/config"
	"github.com/vovakirdan/tui-hackslash/internal/core"
	"github.com/vovakirdan/tui-hackslash/internal/leaderboard"
	"github.com/vovakirdan/tui-hackslash/internal/platform/tui"
	"github.com/vovakirdan/tui-hackslash/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game in this terminal.

Controls:
  WASD/Arrows   - Move
  Mouse         - Aim
  Space/Click   - Attack
  P/Esc         - Pause
  G             - Toggle the grid overlay
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - More HP, slower mobs, gentler waves
  normal - The config as written
  hard   - Less HP, faster mobs, steeper waves

Examples:
  hackslash play
  hackslash play --difficulty easy
  hackslash play --config ./arena.yaml --seed 7`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	logPath := filepath.Join(config.UserDir(), "hackslash.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "hackslash")
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// The game still works without history.
		logger.Warn("could not open run history", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting", "difficulty", cfg.Difficulty.Preset, "seed", flagSeed)
	return tui.Run(tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:  store,
		Board:  leaderboard.NewFile(scoresPath()),
		Logger: logger,
	})
}
