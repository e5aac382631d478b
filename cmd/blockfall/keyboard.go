package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/tetris"
)

// Key repeat timing in ticks. Held movement keys fire once on press, then
// again after repeatDelay and every repeatRate ticks after that.
const (
	repeatDelay = 10
	repeatRate  = 3
)

type binding struct {
	key    ebiten.Key
	action tetris.Action
	repeat bool
}

var bindings = []binding{
	{ebiten.KeyLeft, tetris.ActionLeft, true},
	{ebiten.KeyRight, tetris.ActionRight, true},
	{ebiten.KeyUp, tetris.ActionRotateCW, false},
	{ebiten.KeyDown, tetris.ActionRotateCCW, false},
	{ebiten.KeyShiftLeft, tetris.ActionSoftDrop, true},
	{ebiten.KeySpace, tetris.ActionHardDrop, false},
}

// keyboard is a driver.ActionSource reading the ebiten key state once per
// frame.
type keyboard struct {
	// duration reports how many ticks a key has been held, 0 when released.
	duration func(ebiten.Key) int

	// blocked, when set and true, drops all input for the frame.
	blocked func() bool
}

func newKeyboard(blocked func() bool) *keyboard {
	return &keyboard{duration: inpututil.KeyPressDuration, blocked: blocked}
}

func (k *keyboard) Actions() []tetris.Action {
	if k.blocked != nil && k.blocked() {
		return nil
	}
	var actions []tetris.Action
	for _, b := range bindings {
		if fires(k.duration(b.key), b.repeat) {
			actions = append(actions, b.action)
		}
	}
	return actions
}

func fires(held int, repeat bool) bool {
	switch {
	case held == 1:
		return true
	case !repeat || held < repeatDelay:
		return false
	default:
		return (held-repeatDelay)%repeatRate == 0
	}
}
