package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-hackslash/internal/leaderboard"
	"github.com/vovakirdan/tui-hackslash/internal/storage"
)

func TestPrintBoard(t *testing.T) {
	var buf bytes.Buffer
	printBoard(&buf, []leaderboard.Entry{{Score: 12500, Name: "ABC"}, {Score: 40, Name: "x y"}})

	out := buf.String()
	for _, want := range []string{"1     ABC       12,500", "2     x y           40"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintBoardEmpty(t *testing.T) {
	var buf bytes.Buffer
	printBoard(&buf, nil)
	if !strings.Contains(buf.String(), "No scores recorded yet.") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestPrintHistory(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	runs := []storage.Run{
		{ID: "run-a", Name: "ABC", Score: 1200, Kills: 120, Waves: 9, Duration: 95 * time.Second, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "run-b", Score: 30, Kills: 3, Waves: 1, Duration: 10 * time.Second, CreatedAt: now.Add(-3 * 24 * time.Hour)},
	}
	stats := &storage.Stats{Runs: 2, HighScore: 1200, AvgScore: 615, TotalKills: 123, BestWave: 9, PlayTime: 105 * time.Second}

	var buf bytes.Buffer
	printHistory(&buf, runs, runs[1:], stats, now)
	out := buf.String()

	tests := []string{
		"Best Runs",
		"Recent Runs",
		"1,200",
		"run-a",
		"2 hours ago",
		"3 days ago",
		"1m35s",
		"  -   ",
		"Runs: 2  Best: 1,200  Average: 615.0  Kills: 123  Best wave: 9  Played: 1m45s",
	}
	for _, want := range tests {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	printHistory(&buf, nil, nil, &storage.Stats{}, time.Now())
	out := buf.String()

	if got := strings.Count(out, "No runs recorded yet."); got != 2 {
		t.Errorf("expected both sections empty, got %d:\n%s", got, out)
	}
	if strings.Contains(out, "Runs:") {
		t.Errorf("totals should be omitted without runs:\n%s", out)
	}
}

func TestPrintRun(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	run := &storage.Run{
		ID:        "6f1c2d7e",
		Score:     4310,
		Kills:     431,
		Waves:     12,
		Ticks:     36000,
		Duration:  10 * time.Minute,
		Seed:      42,
		StateHash: "0123456789abcdef",
		CreatedAt: now.Add(-time.Hour),
	}

	var buf bytes.Buffer
	printRun(&buf, run, now)
	out := buf.String()

	tests := []string{
		"Run 6f1c2d7e",
		"Name:    -",
		"Score:   4,310",
		"Ticks:   36,000",
		"Time:    10m0s",
		"Seed:    42",
		"State:   0123456789abcdef",
		"Played:  2024-06-01 11:00:00 (1 hour ago)",
	}
	for _, want := range tests {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
