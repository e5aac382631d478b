// Package scorestore persists the best score as a single decimal integer.
package scorestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/plus3/blockfall/tetris"
)

// DefaultPath is the file the desktop front end keeps its best score in.
const DefaultPath = "historybest.txt"

// FileStore keeps the best score in a text file. Writes truncate the file in
// place; the last write wins.
type FileStore struct {
	Path string
}

var _ tetris.ScoreStore = (*FileStore)(nil)

// NewFileStore returns a store backed by path, or DefaultPath when path is empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	return &FileStore{Path: path}
}

// Load reads the stored score. A missing file yields tetris.ErrNoScore.
func (s *FileStore) Load() (int, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, tetris.ErrNoScore
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", s.Path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, nil
	}
	score, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	if score < 0 {
		return 0, fmt.Errorf("parse %s: negative score %d", s.Path, score)
	}
	return score, nil
}

func (s *FileStore) Save(score int) error {
	if err := os.WriteFile(s.Path, []byte(strconv.Itoa(score)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	return nil
}

// MemoryStore keeps the best score in memory. The zero value holds no record.
type MemoryStore struct {
	mu      sync.Mutex
	score   int
	present bool
}

var _ tetris.ScoreStore = (*MemoryStore)(nil)

func (s *MemoryStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return 0, tetris.ErrNoScore
	}
	return s.score, nil
}

func (s *MemoryStore) Save(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.score, s.present = score, true
	return nil
}
