package tetris

//go:generate go tool stringer -type=Kind

// Kind identifies a piece type. The numeric value doubles as the tile id
// stored in the Grid, so Empty must stay zero.
type Kind uint8

const (
	Empty Kind = iota
	I
	J
	L
	O
	S
	T
	Z
)

// Kinds is the ordered list of playable kinds.
var Kinds = [7]Kind{I, J, L, O, S, T, Z}

// Valid reports whether k is Empty or one of the seven playable kinds.
func (k Kind) Valid() bool {
	return k <= Z
}

// Letter returns the single-character name of the kind, '.' for Empty.
func (k Kind) Letter() byte {
	if k == Empty || !k.Valid() {
		return '.'
	}
	return k.String()[0]
}

// Rotations returns the rotation states of k. Each state lists the four cells
// occupied by the piece relative to its offset. The returned slice is shared
// and must not be modified.
func (k Kind) Rotations() [][4]Position {
	if k == Empty || !k.Valid() {
		panic("tetris: no rotations for kind " + k.String())
	}
	return rotations[k]
}

// SpawnOffset returns the offset a freshly reset piece of kind k starts from.
func (k Kind) SpawnOffset() Position {
	return spawnOffsets[k]
}

var spawnOffsets = [...]Position{
	I: {-1, 3},
	J: {0, 3},
	L: {0, 3},
	O: {0, 4},
	S: {0, 3},
	T: {0, 3},
	Z: {0, 3},
}

var rotations = [...][][4]Position{
	I: {
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
	},
	J: {
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 0}},
	},
	L: {
		{{0, 2}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 0}},
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	},
	O: {
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	S: {
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 1}, {1, 2}, {2, 0}, {2, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	},
	T: {
		{{0, 1}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 1}},
	},
	Z: {
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{0, 2}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 0}},
	},
}
