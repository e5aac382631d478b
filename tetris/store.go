package tetris

import (
	"errors"
	"fmt"
)

// ErrNoScore is returned by a ScoreStore that holds no best score yet.
var ErrNoScore = errors.New("tetris: no best score recorded")

// ScoreStore persists the best score between sessions.
type ScoreStore interface {
	// Load returns the stored best score, or ErrNoScore when none exists.
	Load() (int, error)
	Save(score int) error
}

// ReadScore loads the best score from the store into the game. An absent
// record is initialised to 0 and read again once.
func (g *Game) ReadScore() error {
	if g.store == nil {
		return nil
	}
	best, err := g.store.Load()
	if errors.Is(err, ErrNoScore) {
		if err := g.store.Save(0); err != nil {
			return fmt.Errorf("initialise best score: %w", err)
		}
		best, err = g.store.Load()
	}
	if err != nil {
		return fmt.Errorf("read best score: %w", err)
	}
	g.best = best
	return nil
}

// WriteScore overwrites the stored best score with score.
func (g *Game) WriteScore(score int) error {
	if g.store == nil {
		return nil
	}
	if err := g.store.Save(score); err != nil {
		return fmt.Errorf("write best score: %w", err)
	}
	return nil
}

// Finish reconciles the session score with the stored best. It re-reads the
// store and writes the score back only when it strictly exceeds the previous
// best. It reports whether a new best was recorded.
func (g *Game) Finish() (bool, error) {
	if err := g.ReadScore(); err != nil {
		return false, err
	}
	if g.score <= g.best {
		return false, nil
	}
	if err := g.WriteScore(g.score); err != nil {
		return false, err
	}
	g.best = g.score
	return true, nil
}
