package leaderboard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFileName is the conventional leaderboard file name.
const DefaultFileName = "high_scores.txt"

// File is a leaderboard persisted at a path. It is safe for concurrent use
// within one process, which is what SSH sessions sharing a server need.
type File struct {
	path  string
	limit int
	mu    sync.Mutex
}

// NewFile opens the leaderboard at path. The file is created on the first
// Submit.
func NewFile(path string) *File {
	return &File{path: path, limit: MaxEntries}
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// Load returns the current entries. A missing file is an empty board.
func (f *File) Load() ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *File) load() ([]Entry, error) {
	fh, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leaderboard: open %s: %w", f.path, err)
	}
	defer func() { _ = fh.Close() }()
	return Parse(fh)
}

// Qualifies reports whether score would enter the board.
func (f *File) Qualifies(score int) (bool, error) {
	entries, err := f.Load()
	if err != nil {
		return false, err
	}
	return Qualifies(entries, score, f.limit), nil
}

// Submit merges (score, name) into the file and returns its zero-based rank,
// or -1 if it did not make the board. The file is replaced atomically.
func (f *File) Submit(score int, name string) (int, error) {
	if err := ValidateName(name); err != nil {
		return -1, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return -1, err
	}
	entries, rank := Insert(entries, Entry{Score: score, Name: name}, f.limit)
	if rank < 0 {
		return -1, nil
	}
	if err := f.write(entries); err != nil {
		return -1, err
	}
	return rank, nil
}

func (f *File) write(entries []Entry) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("leaderboard: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".high_scores-*")
	if err != nil {
		return fmt.Errorf("leaderboard: temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := Format(tmp, entries); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("leaderboard: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("leaderboard: replace %s: %w", f.path, err)
	}
	return nil
}
