// hackslash is a top-down hack-and-slash arena for the terminal.
//
// Usage:
//
//	hackslash play            - Play in this terminal
//	hackslash serve           - Host the game over SSH
//	hackslash scores          - Show the leaderboard (--history for past runs)
//	hackslash config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Frames per second (default: 60)
//	--seed <value>        - RNG seed for reproducible rounds
//	--db <path>           - Run history database (default: ~/.hackslash/runs.db)
//	--scores-file <path>  - Leaderboard file (default: ~/.hackslash/high_scores.txt)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hackslash/internal/config"
	"github.com/vovakirdan/tui-hackslash/internal/leaderboard"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagScoresFile string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hackslash",
	Short: "Hack & Slash - survive the waves in your terminal",
	Long: `Hack & Slash is a top-down arena game. Mobs pour in from the edges in
ever larger waves; cut them down, bat their bullets back at them and last as
long as you can.

Available commands:
  play     - Play in this terminal
  serve    - Start an SSH server for remote play
  scores   - View the leaderboard and run history
  config   - Print the effective configuration

Examples:
  hackslash play
  hackslash play --difficulty hard --seed 42
  hackslash serve --ssh :2222
  hackslash scores --history`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Frames per second")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.hackslash/runs.db", "Path to run history database")
	pf.StringVar(&flagScoresFile, "scores-file", "", "Path to leaderboard file (default ~/.hackslash/"+leaderboard.DefaultFileName+")")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	presets := make([]string, 0, len(config.Presets()))
	for _, p := range config.Presets() {
		presets = append(presets, string(p))
	}
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: "+strings.Join(presets, ", "))
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadConfig resolves the config file and applies the difficulty preset.
// --difficulty wins over the preset named in the file.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	name := string(cfg.Difficulty.Preset)
	if flagDifficulty != "" {
		name = flagDifficulty
	}
	preset, err := config.ParsePreset(name)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// scoresPath returns the leaderboard location.
func scoresPath() string {
	if flagScoresFile != "" {
		return flagScoresFile
	}
	if dir := config.UserDir(); dir != "" {
		return filepath.Join(dir, leaderboard.DefaultFileName)
	}
	return leaderboard.DefaultFileName
}
