package tetris_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newOrderedGame returns a game whose queue yields I, J, L, O, S, T, Z repeatedly.
func newOrderedGame(opts ...tetris.Option) *tetris.Game {
	return tetris.New(append([]tetris.Option{tetris.WithShuffle(noShuffle)}, opts...)...)
}

func assertPieceFits(t *testing.T, g *tetris.Game) {
	t.Helper()
	for _, c := range g.Current().Cells() {
		assert.True(t, g.Grid().IsEmpty(c.Row, c.Col), "active cell %v collides", c)
	}
}

func TestNewGameSpawnsNudgedPiece(t *testing.T) {
	g := newOrderedGame()

	assert.Equal(t, tetris.I, g.Current().Kind())
	assert.Equal(t, tetris.J, g.Next())
	assert.Equal(t, tetris.Position{Row: 1, Col: 3}, g.Current().Offset())
	assert.Equal(t, 0, g.Score())
	assert.False(t, g.Over())
	assertPieceFits(t, g)
}

func TestSpawnNudgeStopsAtObstacle(t *testing.T) {
	g := newOrderedGame()
	g.Grid().Set(3, 4, tetris.T)

	// The I piece sits directly on the obstacle and locks in row 2, so the
	// following J cannot be nudged below its canonical rows.
	require.Equal(t, 0, g.DropDistance())
	g.Drop()

	require.False(t, g.Over())
	assert.Equal(t, tetris.J, g.Current().Kind())
	assert.Equal(t, tetris.J.SpawnOffset(), g.Current().Offset())
	assertPieceFits(t, g)
}

func TestMoveAgainstWalls(t *testing.T) {
	g := newOrderedGame()

	moves := 0
	for g.MoveLeft() {
		moves++
	}
	assert.Equal(t, 3, moves)
	assert.Equal(t, 0, g.Current().Offset().Col)
	assertPieceFits(t, g)

	moves = 0
	for g.MoveRight() {
		moves++
	}
	assert.Equal(t, 6, moves)
	assertPieceFits(t, g)
}

func TestMoveBlockedByTile(t *testing.T) {
	g := newOrderedGame()
	g.Grid().Set(2, 2, tetris.O)
	before := g.Current().Offset()

	assert.False(t, g.MoveLeft())
	assert.Equal(t, before, g.Current().Offset())
}

func TestRotateRevertsOnCollision(t *testing.T) {
	g := newOrderedGame()
	// I rotated clockwise occupies column 5 in rows 1..4.
	g.Grid().Set(4, 5, tetris.Z)

	assert.False(t, g.RotateCW())
	assert.Equal(t, 0, g.Current().Rotation())
	assertPieceFits(t, g)

	g.Grid().Set(4, 5, tetris.Empty)
	require.True(t, g.RotateCW())
	assert.Equal(t, 1, g.Current().Rotation())
	require.True(t, g.RotateCCW())
	assert.Equal(t, 0, g.Current().Rotation())
}

func TestRotateThenCounterRotateRestores(t *testing.T) {
	g := tetris.New(tetris.WithShuffle(seeded(3)))
	for range 30 {
		before := g.Current().Clone()
		if g.RotateCW() {
			require.True(t, g.RotateCCW())
			assert.Equal(t, before.Cells(), g.Current().Cells())
			assert.Equal(t, before.Rotation(), g.Current().Rotation())
		}
		if g.RotateCCW() {
			require.True(t, g.RotateCW())
			assert.Equal(t, before.Cells(), g.Current().Cells())
		}
		g.Drop()
		if g.Over() {
			break
		}
	}
}

func TestDropDistanceOnEmptyGrid(t *testing.T) {
	for seed := uint64(0); seed < 7; seed++ {
		g := tetris.New(tetris.WithShuffle(seeded(seed)))
		d := g.DropDistance()
		require.Positive(t, d)

		landed := g.Current().Clone()
		landed.Move(d, 0)
		touching := false
		for _, c := range landed.Cells() {
			require.True(t, g.Grid().IsEmpty(c.Row, c.Col))
			if c.Row == g.Grid().Rows()-1 || !g.Grid().IsEmpty(c.Row+1, c.Col) {
				touching = true
			}
		}
		assert.True(t, touching, "%s did not land on the floor", g.Current().Kind())
	}
}

func TestDropDistanceOverStack(t *testing.T) {
	g := newOrderedGame()
	g.Grid().Set(10, 4, tetris.L)

	// The I piece spans columns 3..6 in row 2; column 4 is blocked at row 10.
	assert.Equal(t, 7, g.DropDistance())

	ghost := g.Ghost()
	for _, c := range ghost {
		assert.Equal(t, 9, c.Row)
	}
}

func TestHardDropPlacesPiece(t *testing.T) {
	g := newOrderedGame()
	require.True(t, g.Drop())

	want := []tetris.Kind{
		tetris.Empty, tetris.Empty, tetris.Empty,
		tetris.I, tetris.I, tetris.I, tetris.I,
		tetris.Empty, tetris.Empty, tetris.Empty,
	}
	assert.Equal(t, want, g.Grid().Row(tetris.DefaultRows-1))
	assert.Equal(t, tetris.J, g.Current().Kind())
	assert.Equal(t, tetris.L, g.Next())
	assert.Equal(t, 1, g.Placements())
}

func TestSoftDropPlacesOnlyWhenBlocked(t *testing.T) {
	g := newOrderedGame()
	steps := g.DropDistance()
	for range steps {
		require.True(t, g.MoveDown())
		assert.Equal(t, 0, g.Placements())
	}
	require.True(t, g.Tick())
	assert.Equal(t, 1, g.Placements())
	assert.Equal(t, tetris.J, g.Current().Kind())
}

func TestLineClearScoring(t *testing.T) {
	g := newOrderedGame()
	last := g.Grid().Rows() - 1
	for col := 0; col < g.Grid().Cols(); col++ {
		if col < 3 || col > 6 {
			g.Grid().Set(last, col, tetris.O)
		}
	}

	g.Drop()

	assert.Equal(t, 1, g.Score())
	assert.True(t, g.Grid().IsRowEmpty(last))
}

func TestFourLineClearScoresFour(t *testing.T) {
	var hooked []int
	g := newOrderedGame(tetris.WithPlacementHook(func(k tetris.Kind, cleared int) {
		assert.Equal(t, tetris.I, k)
		hooked = append(hooked, cleared)
	}))
	rows := g.Grid().Rows()
	for row := rows - 4; row < rows; row++ {
		for col := 0; col < g.Grid().Cols(); col++ {
			if col != 5 {
				g.Grid().Set(row, col, tetris.J)
			}
		}
	}

	require.True(t, g.RotateCW())
	g.Drop()

	assert.Equal(t, 4, g.Score())
	assert.Equal(t, []int{4}, hooked)
	for row := 0; row < rows; row++ {
		assert.True(t, g.Grid().IsRowEmpty(row), "row %d", row)
	}
}

func TestScoreSumsClearedRows(t *testing.T) {
	g := newOrderedGame()
	last := g.Grid().Rows() - 1
	total := 0
	for range 3 {
		require.Equal(t, tetris.I, g.Current().Kind())
		for col := 0; col < g.Grid().Cols(); col++ {
			if col < 3 || col > 6 {
				g.Grid().Set(last, col, tetris.S)
			}
		}
		g.Drop()
		total++
		assert.Equal(t, total, g.Score())

		// Park the other six kinds of the bag out of the way by clearing the
		// grid after each of them lands.
		for range 6 {
			g.Drop()
			for row := 0; row < g.Grid().Rows(); row++ {
				for col := 0; col < g.Grid().Cols(); col++ {
					g.Grid().Set(row, col, tetris.Empty)
				}
			}
		}
	}
	assert.Equal(t, 3, g.Score())
}

func TestGameOverIsTerminal(t *testing.T) {
	g := newOrderedGame()
	g.Grid().Set(3, 4, tetris.T)
	g.Drop()
	require.Equal(t, tetris.J.SpawnOffset(), g.Current().Offset())

	// The J sits in the hidden rows with the I directly beneath it.
	require.True(t, g.MoveDown())
	require.True(t, g.Over())

	grid := g.Grid().String()
	score := g.Score()
	offset := g.Current().Offset()
	for _, a := range tetris.Actions {
		assert.False(t, g.Apply(a), "%s after game over", a)
	}
	assert.False(t, g.Tick())

	assert.Equal(t, grid, g.Grid().String())
	assert.Equal(t, score, g.Score())
	assert.Equal(t, offset, g.Current().Offset())
	assert.False(t, g.Grid().IsRowEmpty(0))
}

func TestStackingEndsTheGame(t *testing.T) {
	g := tetris.New(tetris.WithShuffle(seeded(11)))
	for range 200 {
		if g.Over() {
			break
		}
		g.Drop()
	}
	require.True(t, g.Over())
	assert.True(t, !g.Grid().IsRowEmpty(0) || !g.Grid().IsRowEmpty(1))
}

func TestCollisionInvariantUnderRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 99))
	g := tetris.New(tetris.WithShuffle(seeded(42)))
	games := 0
	for range 20000 {
		if g.Over() {
			games++
			g = tetris.New(tetris.WithShuffle(seeded(uint64(games))))
		}
		a := tetris.Actions[rng.IntN(len(tetris.Actions))]
		// Keep hard drops rare so pieces spend time moving around.
		if a == tetris.ActionHardDrop && rng.IntN(8) != 0 {
			a = tetris.ActionSoftDrop
		}
		g.Apply(a)
		if !g.Over() {
			assertPieceFits(t, g)
		}
		for row := 0; row < g.Grid().Rows(); row++ {
			for col := 0; col < g.Grid().Cols(); col++ {
				require.True(t, g.Grid().At(row, col).Valid())
			}
		}
	}
}

func TestCustomRowCount(t *testing.T) {
	g := newOrderedGame(tetris.WithSize(8, tetris.DefaultCols))
	assert.Equal(t, 8, g.Grid().Rows())
	assertPieceFits(t, g)

	assert.Equal(t, 5, g.DropDistance())
	g.Drop()
	assert.False(t, g.Grid().IsRowEmpty(7))
}

type memStore struct {
	score   int
	present bool
	saves   []int
	loadErr error
}

func (m *memStore) Load() (int, error) {
	if m.loadErr != nil {
		return 0, m.loadErr
	}
	if !m.present {
		return 0, tetris.ErrNoScore
	}
	return m.score, nil
}

func (m *memStore) Save(score int) error {
	m.score, m.present = score, true
	m.saves = append(m.saves, score)
	return nil
}

func TestReadScoreInitialisesMissingRecord(t *testing.T) {
	store := &memStore{}
	g := newOrderedGame(tetris.WithStore(store))

	require.NoError(t, g.ReadScore())
	assert.Equal(t, 0, g.BestScore())
	assert.Equal(t, []int{0}, store.saves)
}

func TestReadScorePropagatesErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	g := newOrderedGame(tetris.WithStore(&memStore{loadErr: boom}))

	err := g.ReadScore()
	assert.ErrorIs(t, err, boom)
}

func TestFinishWritesOnlyStrictlyBetterScores(t *testing.T) {
	tests := []struct {
		name      string
		stored    int
		score     int
		wantBest  bool
		wantSaves []int
	}{
		{"better", 0, 1, true, []int{1}},
		{"equal", 1, 1, false, nil},
		{"worse", 5, 1, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{score: tt.stored, present: true}
			g := newOrderedGame(tetris.WithStore(store))
			last := g.Grid().Rows() - 1
			for col := 0; col < g.Grid().Cols(); col++ {
				if col < 3 || col > 6 {
					g.Grid().Set(last, col, tetris.T)
				}
			}
			g.Drop()
			require.Equal(t, tt.score, g.Score())

			newBest, err := g.Finish()
			require.NoError(t, err)
			assert.Equal(t, tt.wantBest, newBest)
			assert.Equal(t, tt.wantSaves, store.saves)
			assert.Equal(t, max(tt.stored, tt.score), g.BestScore())
		})
	}
}

func TestNoStoreIsNoop(t *testing.T) {
	g := newOrderedGame()
	assert.NoError(t, g.ReadScore())
	assert.NoError(t, g.WriteScore(10))
	newBest, err := g.Finish()
	assert.NoError(t, err)
	assert.False(t, newBest)
}

func TestWithSeedIsReproducible(t *testing.T) {
	a := tetris.New(tetris.WithSeed(9))
	b := tetris.New(tetris.WithSeed(9))

	for !a.Over() {
		require.Equal(t, a.Current().Kind(), b.Current().Kind())
		require.Equal(t, a.Next(), b.Next())
		a.Drop()
		b.Drop()
	}
	assert.True(t, b.Over())
	assert.Equal(t, a.Placements(), b.Placements())
}
