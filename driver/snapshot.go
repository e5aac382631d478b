package driver

import (
	"time"

	"github.com/plus3/blockfall/tetris"
)

// Snapshot is an immutable copy of a session's visible state.
type Snapshot struct {
	ID         string        `json:"id"`
	Score      int           `json:"score"`
	Best       int           `json:"best"`
	Over       bool          `json:"over"`
	NewBest    bool          `json:"newBest"`
	Current    string        `json:"current"`
	Next       string        `json:"next"`
	Drop       int           `json:"dropDistance"`
	Placements int           `json:"placements"`
	Delay      time.Duration `json:"delay"`

	// Rows holds the visible rows of the grid, top first. Tiles and the active
	// piece use their kind letter, ghost cells '*' and empty cells '.'.
	Rows  []string      `json:"rows"`
	Stats StatsSnapshot `json:"stats"`
}

func newSnapshot(s *Session) *Snapshot {
	g := s.game
	return &Snapshot{
		ID:         s.id,
		Score:      g.Score(),
		Best:       g.BestScore(),
		Over:       g.Over(),
		NewBest:    s.newBest,
		Current:    g.Current().Kind().String(),
		Next:       g.Next().String(),
		Drop:       g.DropDistance(),
		Placements: g.Placements(),
		Delay:      s.Delay(),
		Rows:       renderRows(g),
		Stats:      s.stats.Snapshot(),
	}
}

func renderRows(g *tetris.Game) []string {
	grid := g.Grid()
	buf := make([][]byte, grid.Rows())
	for row := range buf {
		buf[row] = make([]byte, grid.Cols())
		for col := range buf[row] {
			buf[row][col] = grid.At(row, col).Letter()
		}
	}

	if !g.Over() {
		letter := g.Current().Kind().Letter()
		for _, c := range g.Ghost() {
			if grid.IsInside(c.Row, c.Col) {
				buf[c.Row][c.Col] = '*'
			}
		}
		for _, c := range g.Current().Cells() {
			if grid.IsInside(c.Row, c.Col) {
				buf[c.Row][c.Col] = letter
			}
		}
	}

	start := min(tetris.HiddenRows, grid.Rows())
	rows := make([]string, 0, grid.Rows()-start)
	for _, line := range buf[start:] {
		rows = append(rows, string(line))
	}
	return rows
}
