package driver

import (
	"context"
	"time"

	"github.com/plus3/blockfall/tetris"
)

// RunTimed plays the session's current game until it ends. It waits for the
// gravity delay of the current score, performs one tick and redraws, and in
// between applies every action received on actions immediately, in order.
// When the game is over the best score is reconciled and the final snapshot
// is drawn. RunTimed returns early only when ctx is done.
func RunTimed(ctx context.Context, s *Session, actions <-chan tetris.Action, redraw func(*Snapshot)) error {
	if redraw == nil {
		redraw = func(*Snapshot) {}
	}
	redraw(s.Publish())

	timer := time.NewTimer(s.Delay())
	defer timer.Stop()

	game := s.Game()
	for !game.Over() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case a, ok := <-actions:
			if !ok {
				actions = nil
				continue
			}
			game.Apply(a)
		case <-timer.C:
			game.Tick()
			timer.Reset(s.Delay())
		}
		redraw(s.Publish())
	}

	_, err := s.Finish()
	redraw(s.Publish())
	return err
}
