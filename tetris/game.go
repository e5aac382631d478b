// Package tetris implements the game logic of a falling-block puzzle: the
// grid, the seven piece kinds and their rotation tables, a 7-bag piece queue
// and the Game state machine that moves, rotates, places and scores pieces.
//
// A Game has no notion of time. A driver calls Tick at whatever cadence it
// chooses (see Speed) and forwards input through the movement methods.
package tetris

import "math/rand/v2"

// Option configures a Game created by New.
type Option func(*Game)

// PlacementHook is called after a piece is committed to the grid, with the
// kind placed and the number of rows the placement cleared.
type PlacementHook func(k Kind, cleared int)

// WithSize overrides the grid dimensions. Spawn offsets assume at least
// DefaultCols columns.
func WithSize(rows, cols int) Option {
	return func(g *Game) {
		g.rows, g.cols = rows, cols
	}
}

// WithShuffle sets the permutation source of the piece queue.
func WithShuffle(shuffle ShuffleFunc) Option {
	return func(g *Game) {
		g.shuffle = shuffle
	}
}

// WithSeed makes the piece order reproducible: games created with the same
// seed draw the same sequence of kinds.
func WithSeed(seed uint64) Option {
	return WithShuffle(rand.New(rand.NewPCG(seed, seed)).Shuffle)
}

// WithStore sets the best-score store used by ReadScore, WriteScore and Finish.
func WithStore(store ScoreStore) Option {
	return func(g *Game) {
		g.store = store
	}
}

func WithPlacementHook(hook PlacementHook) Option {
	return func(g *Game) {
		g.onPlace = hook
	}
}

// Game owns the grid, the piece queue and the active piece. All operations
// are synchronous and leave the game in a consistent state: the active piece
// never overlaps a tile or leaves the grid.
type Game struct {
	rows, cols int
	shuffle    ShuffleFunc
	store      ScoreStore
	onPlace    PlacementHook

	grid    *Grid
	queue   *Queue
	current *Piece

	score  int
	best   int
	over   bool
	placed int
}

// New starts a game with an empty grid and the first piece spawned.
func New(opts ...Option) *Game {
	g := &Game{rows: DefaultRows, cols: DefaultCols}
	for _, opt := range opts {
		opt(g)
	}
	g.grid = NewGrid(g.rows, g.cols)
	g.queue = NewQueue(g.shuffle)
	g.spawn(g.queue.GetAndUpdate())
	return g
}

func (g *Game) Grid() *Grid       { return g.grid }
func (g *Game) Current() *Piece   { return g.current }
func (g *Game) Next() Kind        { return g.queue.Next() }
func (g *Game) Queue() *Queue     { return g.queue }
func (g *Game) Score() int        { return g.score }
func (g *Game) BestScore() int    { return g.best }
func (g *Game) Over() bool        { return g.over }
func (g *Game) Placements() int   { return g.placed }
func (g *Game) Store() ScoreStore { return g.store }

// fits reports whether every cell of the active piece is inside the grid and
// over an empty tile.
func (g *Game) fits() bool {
	for _, c := range g.current.Cells() {
		if !g.grid.IsEmpty(c.Row, c.Col) {
			return false
		}
	}
	return true
}

// spawn makes p the active piece. The piece is reset and then nudged down by
// up to two rows, skipping any nudge that would collide.
func (g *Game) spawn(p *Piece) {
	g.current = p
	p.Reset()
	for range HiddenRows {
		p.Move(1, 0)
		if !g.fits() {
			p.Move(-1, 0)
		}
	}
}

func (g *Game) shift(dr, dc int) bool {
	if g.over {
		return false
	}
	g.current.Move(dr, dc)
	if !g.fits() {
		g.current.Move(-dr, -dc)
		return false
	}
	return true
}

// MoveLeft shifts the active piece one column left unless that collides.
func (g *Game) MoveLeft() bool { return g.shift(0, -1) }

// MoveRight shifts the active piece one column right unless that collides.
func (g *Game) MoveRight() bool { return g.shift(0, 1) }

// RotateCW rotates the active piece clockwise unless that collides.
// There is no wall kick.
func (g *Game) RotateCW() bool {
	if g.over {
		return false
	}
	g.current.RotateCW()
	if !g.fits() {
		g.current.RotateCCW()
		return false
	}
	return true
}

// RotateCCW rotates the active piece counter-clockwise unless that collides.
func (g *Game) RotateCCW() bool {
	if g.over {
		return false
	}
	g.current.RotateCCW()
	if !g.fits() {
		g.current.RotateCW()
		return false
	}
	return true
}

// MoveDown moves the active piece one row down. When the row below is
// blocked the piece is placed instead. It returns false only after game over.
func (g *Game) MoveDown() bool {
	if g.over {
		return false
	}
	if !g.shift(1, 0) {
		g.place()
	}
	return true
}

// topBlocked reports whether any tile sits in the hidden spawn rows.
func (g *Game) topBlocked() bool {
	for row := range min(HiddenRows, g.grid.Rows()) {
		if !g.grid.IsRowEmpty(row) {
			return true
		}
	}
	return false
}

// Tick is one step of gravity.
func (g *Game) Tick() bool { return g.MoveDown() }

// DropDistance returns how many rows the active piece can fall before any of
// its cells would hit a tile or the floor.
func (g *Game) DropDistance() int {
	drop := g.grid.Rows()
	for _, c := range g.current.Cells() {
		d := 0
		for g.grid.IsEmpty(c.Row+d+1, c.Col) {
			d++
		}
		drop = min(drop, d)
	}
	return drop
}

// Ghost returns the cells the active piece would occupy after a hard drop.
func (g *Game) Ghost() []Position {
	d := g.DropDistance()
	cells := g.current.Cells()
	for i := range cells {
		cells[i].Row += d
	}
	return cells
}

// Drop hard-drops the active piece and places it.
func (g *Game) Drop() bool {
	if g.over {
		return false
	}
	g.current.Move(g.DropDistance(), 0)
	g.place()
	return true
}

// place commits the active piece to the grid, scores cleared rows and either
// ends the game or spawns the next piece.
func (g *Game) place() {
	kind := g.current.Kind()
	for _, c := range g.current.Cells() {
		g.grid.Set(c.Row, c.Col, kind)
	}
	cleared := g.grid.ClearFullRows()
	g.score += cleared
	g.placed++
	if g.onPlace != nil {
		g.onPlace(kind, cleared)
	}

	if g.topBlocked() {
		g.over = true
		return
	}
	g.spawn(g.queue.GetAndUpdate())
}
