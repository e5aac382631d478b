package tetris

//go:generate go tool stringer -type=Action -trimprefix=Action

// Action is a discrete driver input applied to a Game.
type Action uint8

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionRotateCW
	ActionRotateCCW
	ActionSoftDrop
	ActionHardDrop
)

// Actions lists every action that moves the active piece.
var Actions = [...]Action{
	ActionLeft,
	ActionRight,
	ActionRotateCW,
	ActionRotateCCW,
	ActionSoftDrop,
	ActionHardDrop,
}

// Apply dispatches a to the matching Game operation and reports whether the
// active piece moved or was placed.
func (g *Game) Apply(a Action) bool {
	switch a {
	case ActionLeft:
		return g.MoveLeft()
	case ActionRight:
		return g.MoveRight()
	case ActionRotateCW:
		return g.RotateCW()
	case ActionRotateCCW:
		return g.RotateCCW()
	case ActionSoftDrop:
		return g.MoveDown()
	case ActionHardDrop:
		return g.Drop()
	}
	return false
}
