// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Call Update around the scheduler frame and Overlay after drawing the game.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. The imgui.ini file is
// disabled so debug layouts do not leak into the working directory.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Update wraps frame in an ImGui frame.
func (b *ImguiBackend) Update(frame func()) {
	b.BeginFrame()
	frame()
	b.EndFrame()
}

// Overlay draws the ImGui output on top of screen.
func (b *ImguiBackend) Overlay(screen *ebiten.Image) {
	b.Draw(screen)
}
