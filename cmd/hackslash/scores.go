package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hackslash/internal/leaderboard"
	"github.com/vovakirdan/tui-hackslash/internal/storage"
)

var (
	flagHistory bool
	flagLimit   int
	flagRunID   string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the leaderboard file. With --history, also list the best and the
most recent runs from the run history database and totals over all runs.
With --run, show one stored run in full, including the seed it was played
with and the digest of its final state.

Examples:
  hackslash scores
  hackslash scores --history --limit 20
  hackslash scores --run 6f1c2d7e-1b0a-4c55-9a53-8d2b0f7e4a11`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagHistory, "history", false, "Also show recent runs and totals")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of best and recent runs to show")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show the stored run with this ID")
}

func runScores(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if flagRunID != "" {
		return showRun(out, flagRunID)
	}

	board := leaderboard.NewFile(scoresPath())
	entries, err := board.Load()
	if err != nil {
		return err
	}
	printBoard(out, entries)

	if !flagHistory {
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	best, err := store.TopRuns(flagLimit)
	if err != nil {
		return err
	}
	recent, err := store.RecentRuns(flagLimit)
	if err != nil {
		return err
	}
	stats, err := store.Stats()
	if err != nil {
		return err
	}
	printHistory(out, best, recent, stats, time.Now())
	return nil
}

func showRun(w io.Writer, id string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with ID %q", id)
	}
	printRun(w, run, time.Now())
	return nil
}

func printBoard(w io.Writer, entries []leaderboard.Entry) {
	fmt.Fprintln(w, "High Scores - Hack & Slash")
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'hackslash play' to set the first high score!")
		return
	}

	fmt.Fprintf(w, "  %-4s  %-4s  %10s\n", "Rank", "Name", "Score")
	fmt.Fprintf(w, "  %-4s  %-4s  %10s\n", "----", "----", "-----")
	for i, e := range entries {
		fmt.Fprintf(w, "  %-4d  %-4s  %10s\n", i+1, e.Name, humanize.Comma(int64(e.Score)))
	}
}

func printHistory(w io.Writer, best, recent []storage.Run, stats *storage.Stats, now time.Time) {
	printRuns(w, "Best Runs", best, now)
	printRuns(w, "Recent Runs", recent, now)
	if stats.Runs == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Runs: %s  Best: %s  Average: %.1f  Kills: %s  Best wave: %d  Played: %s\n",
		humanize.Comma(int64(stats.Runs)),
		humanize.Comma(int64(stats.HighScore)),
		stats.AvgScore,
		humanize.Comma(stats.TotalKills),
		stats.BestWave,
		stats.PlayTime.Round(time.Second),
	)
}

func printRuns(w io.Writer, title string, runs []storage.Run, now time.Time) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return
	}

	fmt.Fprintf(w, "  %-4s  %8s  %6s  %5s  %8s  %-14s  %s\n", "Name", "Score", "Kills", "Waves", "Time", "When", "ID")
	for _, r := range runs {
		fmt.Fprintf(w, "  %-4s  %8s  %6d  %5d  %8s  %-14s  %s\n",
			displayName(r.Name),
			humanize.Comma(int64(r.Score)),
			r.Kills,
			r.Waves,
			r.Duration.Round(time.Second),
			humanize.RelTime(r.CreatedAt, now, "ago", "from now"),
			r.ID,
		)
	}
}

func printRun(w io.Writer, r *storage.Run, now time.Time) {
	fmt.Fprintf(w, "Run %s\n\n", r.ID)
	fmt.Fprintf(w, "  Name:    %s\n", displayName(r.Name))
	fmt.Fprintf(w, "  Score:   %s\n", humanize.Comma(int64(r.Score)))
	fmt.Fprintf(w, "  Kills:   %s\n", humanize.Comma(int64(r.Kills)))
	fmt.Fprintf(w, "  Waves:   %d\n", r.Waves)
	fmt.Fprintf(w, "  Ticks:   %s\n", humanize.Comma(int64(r.Ticks)))
	fmt.Fprintf(w, "  Time:    %s\n", r.Duration.Round(time.Second))
	fmt.Fprintf(w, "  Seed:    %d\n", r.Seed)
	fmt.Fprintf(w, "  State:   %s\n", displayName(r.StateHash))
	fmt.Fprintf(w, "  Played:  %s (%s)\n", r.CreatedAt.Format(time.DateTime), humanize.RelTime(r.CreatedAt, now, "ago", "from now"))
}

// displayName renders an unset name as a dash.
func displayName(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
