package tetris_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) tetris.ShuffleFunc {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).Shuffle
}

func noShuffle(int, func(i, j int)) {}

func TestQueueLookahead(t *testing.T) {
	q := tetris.NewQueue(seeded(1))
	for range 50 {
		want := q.Next()
		p := q.GetAndUpdate()
		assert.Equal(t, want, p.Kind())
		assert.Equal(t, 0, p.Rotation())
		assert.Equal(t, want.SpawnOffset(), p.Offset())
	}
	assert.Equal(t, 50, q.Drawn())
}

func TestQueueReturnsFreshPieces(t *testing.T) {
	q := tetris.NewQueue(noShuffle)
	a := q.GetAndUpdate()
	a.Move(5, 0)
	for range 6 {
		q.GetAndUpdate()
	}
	b := q.GetAndUpdate()

	require.Equal(t, a.Kind(), b.Kind())
	assert.NotSame(t, a, b)
	assert.Equal(t, b.Kind().SpawnOffset(), b.Offset())
}

func TestQueueBagCoversEveryKind(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		q := tetris.NewQueue(seeded(seed))
		for bag := 0; bag < 10; bag++ {
			seen := map[tetris.Kind]int{}
			for range len(tetris.Kinds) {
				seen[q.GetAndUpdate().Kind()]++
			}
			require.Len(t, seen, len(tetris.Kinds), "seed %d bag %d", seed, bag)
			for k, n := range seen {
				assert.Equal(t, 1, n, "seed %d bag %d kind %s", seed, bag, k)
			}
		}
	}
}

func TestQueueNoLongRepeats(t *testing.T) {
	q := tetris.NewQueue(seeded(7))
	var draws []tetris.Kind
	for range 700 {
		draws = append(draws, q.GetAndUpdate().Kind())
	}

	// Across a bag boundary a kind can repeat at most once, so any window of
	// seven draws holds a kind at most twice and no kind waits more than 12
	// draws between appearances.
	for i := 0; i+7 <= len(draws); i++ {
		counts := map[tetris.Kind]int{}
		for _, k := range draws[i : i+7] {
			counts[k]++
			assert.LessOrEqual(t, counts[k], 2, "window at %d", i)
		}
	}
	last := map[tetris.Kind]int{}
	for i, k := range draws {
		if prev, ok := last[k]; ok {
			assert.LessOrEqual(t, i-prev, 13, "gap for %s at %d", k, i)
		}
		last[k] = i
	}
	for i := 2; i < len(draws); i++ {
		assert.False(t, draws[i] == draws[i-1] && draws[i] == draws[i-2], "triple %s at %d", draws[i], i)
	}
}

func TestQueueUnshuffledOrder(t *testing.T) {
	q := tetris.NewQueue(noShuffle)
	for range 2 {
		for _, want := range tetris.Kinds {
			assert.Equal(t, want, q.GetAndUpdate().Kind())
		}
	}
}
