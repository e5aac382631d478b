package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestFires(t *testing.T) {
	tests := []struct {
		held   int
		repeat bool
		want   bool
	}{
		{0, true, false},
		{1, false, true},
		{1, true, true},
		{2, false, false},
		{repeatDelay - 1, true, false},
		{repeatDelay, true, true},
		{repeatDelay, false, false},
		{repeatDelay + 1, true, false},
		{repeatDelay + repeatRate, true, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fires(tt.held, tt.repeat), "held %d repeat %v", tt.held, tt.repeat)
	}
}

func TestKeyboardActions(t *testing.T) {
	held := map[ebiten.Key]int{
		ebiten.KeyLeft:  1,
		ebiten.KeyUp:    1,
		ebiten.KeySpace: 5,
	}
	k := &keyboard{duration: func(key ebiten.Key) int { return held[key] }}

	assert.Equal(t, []tetris.Action{tetris.ActionLeft, tetris.ActionRotateCW}, k.Actions())

	k.blocked = func() bool { return true }
	assert.Empty(t, k.Actions())
}

func TestKindOf(t *testing.T) {
	for _, kind := range tetris.Kinds {
		got, ok := kindOf(kind.Letter())
		assert.True(t, ok)
		assert.Equal(t, kind, got)
	}
	_, ok := kindOf('*')
	assert.False(t, ok)
}

func TestScreenSize(t *testing.T) {
	w, h := screenSize(20, 10, 25)
	assert.Equal(t, 2*margin+16*25+margin, w)
	assert.Equal(t, 2*margin+20*25, h)
}
