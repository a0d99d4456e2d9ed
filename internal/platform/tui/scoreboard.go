package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-hackslash/internal/leaderboard"
	"github.com/vovakirdan/tui-hackslash/internal/storage"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			MarginBottom(1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Scoreboard renders the leaderboard file as a table with a run history
// summary underneath.
type Scoreboard struct {
	board   *leaderboard.File
	store   *storage.Store
	table   table.Model
	entries []leaderboard.Entry
	stats   *storage.Stats
	err     error
}

// NewScoreboard creates a scoreboard. Either source may be nil.
func NewScoreboard(board *leaderboard.File, store *storage.Store) *Scoreboard {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Name", Width: 6},
			{Title: "Score", Width: 10},
		}),
		table.WithHeight(leaderboard.MaxEntries+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return &Scoreboard{board: board, store: store, table: t}
}

// Reload rereads the leaderboard and history. highlight selects a row,
// -1 for none.
func (sb *Scoreboard) Reload(highlight int) {
	sb.err = nil
	sb.entries = nil
	sb.stats = nil

	if sb.board != nil {
		sb.entries, sb.err = sb.board.Load()
	}
	if sb.store != nil && sb.err == nil {
		sb.stats, sb.err = sb.store.Stats()
	}

	rows := make([]table.Row, len(sb.entries))
	for i, e := range sb.entries {
		rows[i] = table.Row{strconv.Itoa(i + 1), e.Name, humanize.Comma(int64(e.Score))}
	}
	sb.table.SetRows(rows)
	if highlight >= 0 && highlight < len(rows) {
		sb.table.Focus()
		sb.table.SetCursor(highlight)
	} else {
		sb.table.Blur()
	}
}

// View renders the table and the history summary.
func (sb *Scoreboard) View(now time.Time) string {
	parts := []string{titleStyle.Render("HIGH SCORES")}

	switch {
	case sb.err != nil:
		parts = append(parts, statusStyle.Render(fmt.Sprintf("could not load scores: %v", sb.err)))
	case len(sb.entries) == 0:
		parts = append(parts, dimStyle.Render("No scores yet. Go and earn one."))
	default:
		parts = append(parts, sb.table.View())
	}

	if sb.stats != nil && sb.stats.Runs > 0 {
		summary := fmt.Sprintf("%s runs, best wave %d, last played %s",
			humanize.Comma(int64(sb.stats.Runs)),
			sb.stats.BestWave,
			humanize.RelTime(sb.stats.LastPlayed, now, "ago", "from now"),
		)
		parts = append(parts, "", dimStyle.Render(summary))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}
