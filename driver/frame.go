package driver

import "log"

// UpdateFrame is handed to every system during one scheduler pass.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Session   *Session
}

func newUpdateFrame(dt float64, session *Session) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Session:   session,
	}
}

// Commands buffers work that must run after every system of a frame has
// executed, such as replacing the session's game.
type Commands struct {
	restart bool
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run when the frame is flushed.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Restart queues a new game. Multiple requests in one frame restart once.
func (c *Commands) Restart() {
	c.restart = true
}

// Flush applies the buffered commands to session, restarts first, and resets
// the buffer.
func (c *Commands) Flush(session *Session) {
	if c.restart {
		if err := session.Restart(); err != nil {
			log.Printf("restart failed: %v", err)
		} else {
			log.Printf("session %s: new game", session.ID())
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.restart = false
	c.defers = c.defers[:0]
}
