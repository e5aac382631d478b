package tetris

// Piece is an active instance of a Kind: a rotation index plus an offset
// applied to that rotation's relative cells.
type Piece struct {
	kind     Kind
	rotation int
	offset   Position
}

// NewPiece returns a piece of kind k at its spawn rotation and offset.
// It panics if k is not a playable kind.
func NewPiece(k Kind) *Piece {
	if k == Empty || !k.Valid() {
		panic("tetris: cannot create piece of kind " + k.String())
	}
	p := &Piece{kind: k}
	p.Reset()
	return p
}

func (p *Piece) Kind() Kind         { return p.kind }
func (p *Piece) Rotation() int      { return p.rotation }
func (p *Piece) Offset() Position   { return p.offset }
func (p *Piece) RotationCount() int { return len(p.kind.Rotations()) }

// Cells returns the absolute positions of the four cells the piece occupies.
func (p *Piece) Cells() []Position {
	rel := p.kind.Rotations()[p.rotation]
	cells := make([]Position, len(rel))
	for i, c := range rel {
		cells[i] = c.Add(p.offset)
	}
	return cells
}

// Move translates the piece. Move(-dr, -dc) undoes Move(dr, dc).
func (p *Piece) Move(dr, dc int) {
	p.offset.Row += dr
	p.offset.Col += dc
}

func (p *Piece) RotateCW() {
	p.rotation = (p.rotation + 1) % p.RotationCount()
}

func (p *Piece) RotateCCW() {
	n := p.RotationCount()
	p.rotation = (p.rotation + n - 1) % n
}

// Reset returns the piece to rotation 0 at its kind's spawn offset.
func (p *Piece) Reset() {
	p.rotation = 0
	p.offset = p.kind.SpawnOffset()
}

// Clone returns an independent copy of the piece.
func (p *Piece) Clone() *Piece {
	c := *p
	return &c
}
