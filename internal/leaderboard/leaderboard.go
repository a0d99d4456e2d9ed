// Package leaderboard reads and writes the high score file: one entry per
// line as "<score> <name>", best first, at most MaxEntries lines.
package leaderboard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// MaxEntries is the number of scores kept.
	MaxEntries = 10
	// NameLen is the exact length of a player name.
	NameLen = 3
	// MinNameChar and MaxNameChar bound the accepted name characters.
	MinNameChar = 32
	MaxNameChar = 125
)

// ErrInvalidName is returned for names that are not exactly NameLen
// characters in [MinNameChar, MaxNameChar].
var ErrInvalidName = errors.New("leaderboard: invalid name")

// Entry is one leaderboard line.
type Entry struct {
	Score int
	Name  string
}

// ValidNameChar reports whether r may appear in a name.
func ValidNameChar(r rune) bool {
	return r >= MinNameChar && r <= MaxNameChar
}

// ValidateName checks a player name.
func ValidateName(name string) error {
	if len(name) != NameLen {
		return fmt.Errorf("%w: %q must be %d characters", ErrInvalidName, name, NameLen)
	}
	for _, r := range name {
		if !ValidNameChar(r) {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, r)
		}
	}
	return nil
}

// Parse reads entries from r. Malformed lines are skipped. The result is
// returned in file order; callers that need ranking should trust the file
// or call Insert for each entry.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		scoreText, name, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		score, err := strconv.Atoi(scoreText)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Score: score, Name: name})
	}
	if err := sc.Err(); err != nil {
		return entries, fmt.Errorf("leaderboard: read: %w", err)
	}
	return entries, nil
}

// Format writes entries one per line.
func Format(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%d %s\n", e.Score, e.Name); err != nil {
			return fmt.Errorf("leaderboard: write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("leaderboard: write: %w", err)
	}
	return nil
}

// Insert places e after every entry with a score greater than or equal to
// its own, so older scores win ties, and trims the list to limit. It returns
// the new list and e's zero-based rank, or -1 if e did not make the cut.
// The input slice is not modified.
func Insert(entries []Entry, e Entry, limit int) ([]Entry, int) {
	pos := len(entries)
	for i, cur := range entries {
		if e.Score > cur.Score {
			pos = i
			break
		}
	}

	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entries[:pos]...)
	out = append(out, e)
	out = append(out, entries[pos:]...)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if pos >= len(out) {
		return out, -1
	}
	return out, pos
}

// Qualifies reports whether score would enter a board holding entries.
func Qualifies(entries []Entry, score, limit int) bool {
	_, rank := Insert(entries, Entry{Score: score}, limit)
	return rank >= 0
}
