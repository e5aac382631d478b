package tetris

import "math/rand/v2"

// ShuffleFunc permutes n elements using swap, with the contract of rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

// Queue hands out pieces from a 7-bag: every kind is drawn exactly once per
// bag, and a freshly shuffled bag is started when the current one runs out.
// One piece of lookahead is always available through Next.
type Queue struct {
	shuffle ShuffleFunc
	bag     []Kind
	next    Kind
	drawn   int
}

// NewQueue creates a queue. A nil shuffle uses the math/rand/v2 global source.
func NewQueue(shuffle ShuffleFunc) *Queue {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	q := &Queue{shuffle: shuffle}
	q.next = q.draw()
	return q
}

// Next returns the kind the following GetAndUpdate call will hand out.
func (q *Queue) Next() Kind { return q.next }

// Drawn returns how many pieces GetAndUpdate has handed out.
func (q *Queue) Drawn() int { return q.drawn }

// GetAndUpdate returns a new piece of the previewed kind and advances the
// lookahead.
func (q *Queue) GetAndUpdate() *Piece {
	p := NewPiece(q.next)
	q.next = q.draw()
	q.drawn++
	return p
}

func (q *Queue) draw() Kind {
	if len(q.bag) == 0 {
		q.refill()
	}
	k := q.bag[0]
	q.bag = q.bag[1:]
	return k
}

func (q *Queue) refill() {
	bag := make([]Kind, len(Kinds))
	copy(bag, Kinds[:])
	q.shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	q.bag = bag
}
