package main

import (
	"bytes"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/scorestore"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3, 1, 2}}
	s.Finalize()
	assert.Equal(t, time.Duration(1), s.Min)
	assert.Equal(t, time.Duration(3), s.Max)
	assert.Equal(t, time.Duration(2), s.Avg)

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestCheckPlacement(t *testing.T) {
	g := tetris.New()
	assert.NoError(t, checkPlacement(g))

	for _, c := range g.Current().Cells() {
		g.Grid().Set(c.Row, c.Col, tetris.O)
	}
	assert.Error(t, checkPlacement(g))
}

func TestRandomPlayKeepsInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	session, err := driver.NewSession(driver.SessionConfig{
		Store:   &scorestore.MemoryStore{},
		Shuffle: rng.Shuffle,
	})
	require.NoError(t, err)

	invariant := &invariantSystem{}
	played := 0
	scheduler := driver.NewScheduler(session)
	scheduler.Register(&driver.InputSystem{Source: &randomInput{rng: rng}})
	scheduler.Register(&driver.GravitySystem{})
	scheduler.Register(invariant)
	scheduler.Register(&driver.GameOverSystem{
		AutoRestart: true,
		OnFinish:    func(*driver.Session, bool) { played++ },
	})

	for frames := 0; played < 3 && frames < 1_000_000; frames++ {
		scheduler.Once(frameTime)
	}

	assert.Equal(t, 3, played)
	assert.Zero(t, invariant.Violations, invariant.First)
	assert.Equal(t, 4, session.Stats().Games())
}

func TestReportGenerate(t *testing.T) {
	report := &Report{
		Duration: time.Second,
		Games:    2,
		Seed:     7,
		Played:   2,
		MaxScore: 3,
	}
	report.Placements = driver.StatsSnapshot{
		Pieces: 40,
		Lines:  3,
		Kinds:  map[string]int{"I": 6},
		Clears: []int{37, 3},
	}
	report.Scheduler = &driver.SchedulerStats{
		Frames:  100,
		Systems: []driver.SystemStats{{Name: "GravitySystem", ExecutionCount: 100}},
	}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "**Games Played:** 2")
	assert.Contains(t, out, "  - I: 6")
	assert.Contains(t, out, "  - 1: 3")
	assert.Contains(t, out, "GravitySystem: 100 runs")
	assert.NotContains(t, out, "First:")
}
