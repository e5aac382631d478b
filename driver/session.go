// Package driver runs tetris games: it owns the active game of a session,
// drives gravity and input through a frame scheduler or a timed loop,
// reconciles the best score when a game ends and publishes snapshots that
// other goroutines may read.
package driver

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/blockfall/tetris"
)

// SessionConfig configures the games a Session creates.
type SessionConfig struct {
	Store   tetris.ScoreStore
	Speed   tetris.Speed
	Shuffle tetris.ShuffleFunc

	// Options are appended to the options every new game is created with.
	Options []tetris.Option
}

// Session owns one game at a time. Restart throws the current game away and
// starts a fresh one; only the statistics survive a restart.
type Session struct {
	cfg   SessionConfig
	stats *Stats

	id       string
	game     *tetris.Game
	finished bool
	newBest  bool

	snapshot atomic.Pointer[Snapshot]
}

// NewSession creates a session and starts its first game.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Speed == (tetris.Speed{}) {
		cfg.Speed = tetris.DefaultSpeed
	}
	s := &Session{
		cfg:   cfg,
		stats: NewStats(),
	}
	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) ID() string          { return s.id }
func (s *Session) Game() *tetris.Game  { return s.game }
func (s *Session) Stats() *Stats       { return s.stats }
func (s *Session) Speed() tetris.Speed { return s.cfg.Speed }

// Delay returns the gravity delay for the current score.
func (s *Session) Delay() time.Duration {
	return s.cfg.Speed.Delay(s.game.Score())
}

// Restart discards the current game and starts a new one with the best score
// read back from the store.
func (s *Session) Restart() error {
	opts := []tetris.Option{
		tetris.WithStore(s.cfg.Store),
		tetris.WithShuffle(s.cfg.Shuffle),
		tetris.WithPlacementHook(s.stats.Record),
	}
	opts = append(opts, s.cfg.Options...)

	s.id = uuid.NewString()
	s.game = tetris.New(opts...)
	s.finished = false
	s.newBest = false
	s.stats.games++

	if err := s.game.ReadScore(); err != nil {
		return fmt.Errorf("session %s: %w", s.id, err)
	}
	s.Publish()
	return nil
}

// Apply forwards a to the current game.
func (s *Session) Apply(a tetris.Action) bool {
	return s.game.Apply(a)
}

// Finish reconciles the finished game's score with the store. It does
// nothing before game over and runs at most once per game.
func (s *Session) Finish() (bool, error) {
	if !s.game.Over() || s.finished {
		return s.newBest, nil
	}
	s.finished = true
	newBest, err := s.game.Finish()
	if err != nil {
		return false, fmt.Errorf("session %s: %w", s.id, err)
	}
	s.newBest = newBest
	return newBest, nil
}

// Finished reports whether Finish has run for the current game.
func (s *Session) Finished() bool { return s.finished }

// Publish captures the current state for Snapshot.
func (s *Session) Publish() *Snapshot {
	snap := newSnapshot(s)
	s.snapshot.Store(snap)
	return snap
}

// Snapshot returns the last published state. It is safe to call from any
// goroutine.
func (s *Session) Snapshot() *Snapshot {
	return s.snapshot.Load()
}
