package driver

import (
	"log"
	"time"

	"github.com/plus3/blockfall/tetris"
)

// ActionSource yields the actions received since the previous frame, in the
// order they arrived.
type ActionSource interface {
	Actions() []tetris.Action
}

// ActionFunc adapts a function to ActionSource.
type ActionFunc func() []tetris.Action

func (f ActionFunc) Actions() []tetris.Action { return f() }

// InputSystem applies each pending action to the game as soon as the frame
// reaches it, one complete operation at a time.
type InputSystem struct {
	Source ActionSource

	Applied int64
}

func (s *InputSystem) Execute(frame *UpdateFrame) {
	if s.Source == nil {
		return
	}
	for _, a := range s.Source.Actions() {
		if frame.Session.Game().Over() {
			return
		}
		frame.Session.Apply(a)
		s.Applied++
	}
}

// GravitySystem accumulates frame time and performs exactly one gravity tick
// each time the accumulated time reaches the session's current delay.
type GravitySystem struct {
	game    *tetris.Game
	elapsed time.Duration

	Ticks int64
}

func (s *GravitySystem) Execute(frame *UpdateFrame) {
	game := frame.Session.Game()
	if game != s.game {
		s.game = game
		s.elapsed = 0
	}
	if game.Over() {
		return
	}

	s.elapsed += time.Duration(frame.DeltaTime * float64(time.Second))
	if s.elapsed < frame.Session.Delay() {
		return
	}
	s.elapsed = 0
	game.Tick()
	s.Ticks++
}

// GameOverSystem reconciles the best score once per finished game and can
// queue a restart when AutoRestart is set.
type GameOverSystem struct {
	AutoRestart bool

	// OnFinish, when set, is called once per finished game.
	OnFinish func(session *Session, newBest bool)
}

func (s *GameOverSystem) Execute(frame *UpdateFrame) {
	session := frame.Session
	if !session.Game().Over() || session.Finished() {
		return
	}

	newBest, err := session.Finish()
	if err != nil {
		log.Printf("session %s: saving best score: %v", session.ID(), err)
	}
	game := session.Game()
	log.Printf("session %s: game over, score %d, best %d, pieces %d", session.ID(), game.Score(), game.BestScore(), game.Placements())
	if newBest {
		log.Printf("session %s: new best score %d", session.ID(), game.Score())
	}

	if s.OnFinish != nil {
		s.OnFinish(session, newBest)
	}
	if s.AutoRestart {
		frame.Commands.Restart()
	}
}

// PublishSystem captures a snapshot of the session every frame.
type PublishSystem struct{}

func (s *PublishSystem) Execute(frame *UpdateFrame) {
	frame.Session.Publish()
}
