package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/scorestore"
	"github.com/plus3/blockfall/tetris"
)

// frameTime is the simulated time between frames.
const frameTime = 1.0 / 60.0

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The longest the soak should run for.")
	games := flag.Int("games", 1000, "The number of games to play.")
	seed := flag.Uint64("seed", 1, "Seed for piece order and random input.")
	quiet := flag.Bool("quiet", true, "Silence per-game log lines while running.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting soak test...")

	rng := rand.New(rand.NewPCG(*seed, *seed))
	store := &scorestore.MemoryStore{}
	session, err := driver.NewSession(driver.SessionConfig{
		Store:   store,
		Shuffle: rng.Shuffle,
	})
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	report := &Report{
		Duration:       *duration,
		Games:          *games,
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	invariant := &invariantSystem{}
	scheduler := driver.NewScheduler(session)
	scheduler.Register(&driver.InputSystem{Source: &randomInput{rng: rng}})
	scheduler.Register(&driver.GravitySystem{})
	scheduler.Register(invariant)
	scheduler.Register(&driver.GameOverSystem{
		AutoRestart: true,
		OnFinish: func(s *driver.Session, newBest bool) {
			report.Played++
			report.MaxScore = max(report.MaxScore, s.Game().Score())
		},
	})

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Playing %d games for at most %s...\n", *games, *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	logOutput := log.Writer()
	if *quiet {
		log.SetOutput(io.Discard)
	}

	startTime := time.Now()

Loop:
	for report.Played < *games {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			scheduler.Once(frameTime)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		}
	}

	log.SetOutput(logOutput)
	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Scheduler = scheduler.GetStats()
	report.Placements = session.Stats().Snapshot()
	report.Violations = invariant.Violations
	report.FirstViolation = invariant.First
	if best, err := store.Load(); err == nil {
		report.Best = best
	}
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak finished.")

	fmt.Println("\n\n--- Soak Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	if report.Violations > 0 {
		os.Exit(1)
	}
}

// randomInput is an ActionSource yielding up to two random actions per
// frame, with a bias towards doing nothing so games last.
type randomInput struct {
	rng *rand.Rand
}

func (r *randomInput) Actions() []tetris.Action {
	var actions []tetris.Action
	for range 2 {
		i := r.rng.IntN(len(tetris.Actions) * 3)
		if i < len(tetris.Actions) {
			actions = append(actions, tetris.Actions[i])
		}
	}
	return actions
}

// invariantSystem checks after input and gravity that the active piece lies
// inside the grid and on empty cells.
type invariantSystem struct {
	Violations int
	First      string
}

func (s *invariantSystem) Execute(frame *driver.UpdateFrame) {
	if err := checkPlacement(frame.Session.Game()); err != nil {
		s.Violations++
		if s.First == "" {
			s.First = fmt.Sprintf("session %s: %v", frame.Session.ID(), err)
		}
	}
}

func checkPlacement(g *tetris.Game) error {
	if g.Over() {
		return nil
	}
	grid := g.Grid()
	for _, c := range g.Current().Cells() {
		if !grid.IsEmpty(c.Row, c.Col) {
			return fmt.Errorf("%s piece cell %v collides or leaves the grid\n%s", g.Current().Kind(), c, grid)
		}
	}
	return nil
}
