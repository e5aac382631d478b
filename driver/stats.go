package driver

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/tetris"
)

// Stats accumulates placement statistics across all games of a session.
type Stats struct {
	kinds  *intmap.Map[tetris.Kind, int]
	clears *intmap.Map[int, int]
	pieces int
	lines  int
	games  int
}

func NewStats() *Stats {
	return &Stats{
		kinds:  intmap.New[tetris.Kind, int](len(tetris.Kinds)),
		clears: intmap.New[int, int](5),
	}
}

// Record counts one placement. It has the shape of tetris.PlacementHook.
func (s *Stats) Record(k tetris.Kind, cleared int) {
	n, _ := s.kinds.Get(k)
	s.kinds.Put(k, n+1)
	c, _ := s.clears.Get(cleared)
	s.clears.Put(cleared, c+1)
	s.pieces++
	s.lines += cleared
}

// Placed returns how many pieces of kind k were placed.
func (s *Stats) Placed(k tetris.Kind) int {
	n, _ := s.kinds.Get(k)
	return n
}

// Clears returns how many placements cleared exactly n rows.
func (s *Stats) Clears(n int) int {
	c, _ := s.clears.Get(n)
	return c
}

func (s *Stats) Pieces() int { return s.pieces }
func (s *Stats) Lines() int  { return s.lines }
func (s *Stats) Games() int  { return s.games }

// MaxClear returns the largest number of rows a single placement cleared.
func (s *Stats) MaxClear() int {
	best := 0
	s.clears.ForEach(func(n, _ int) bool {
		best = max(best, n)
		return true
	})
	return best
}

// StatsSnapshot is a copy of Stats safe to hand to other goroutines.
type StatsSnapshot struct {
	Games  int            `json:"games"`
	Pieces int            `json:"pieces"`
	Lines  int            `json:"lines"`
	Kinds  map[string]int `json:"kinds"`
	Clears []int          `json:"clears"`
}

func (s *Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Games:  s.games,
		Pieces: s.pieces,
		Lines:  s.lines,
		Kinds:  make(map[string]int, len(tetris.Kinds)),
		Clears: make([]int, s.MaxClear()+1),
	}
	for _, k := range tetris.Kinds {
		snap.Kinds[k.String()] = s.Placed(k)
	}
	for n := range snap.Clears {
		snap.Clears[n] = s.Clears(n)
	}
	return snap
}
