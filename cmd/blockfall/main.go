package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/web"
	"golang.org/x/image/font/basicfont"
)

// Game implements ebiten.Game on top of a driver session.
type Game struct {
	session   *driver.Session
	scheduler *driver.Scheduler
	renderer  *renderer
	width     int
	height    int

	// Set only with -debug.
	imguiBackend *debugui_ebiten.ImguiBackend
	imguiSystem  *debugui.ImguiSystem
}

func newGame(cfg config.Config, session *driver.Session, debug bool) *Game {
	g := &Game{
		session:  session,
		renderer: &renderer{cell: float32(cfg.CellSize), face: text.NewGoXFace(basicfont.Face7x13)},
	}
	g.width, g.height = screenSize(tetris.DefaultRows-tetris.HiddenRows, tetris.DefaultCols, cfg.CellSize)

	if debug {
		g.imguiBackend = debugui_ebiten.NewImguiBackend("blockfall (debug)", 1280, 720)
	}

	g.scheduler = driver.NewScheduler(session)
	g.scheduler.Register(&driver.InputSystem{Source: newKeyboard(g.imguiWantsKeyboard)})
	g.scheduler.Register(&driver.GravitySystem{})
	g.scheduler.Register(&driver.GameOverSystem{})
	g.scheduler.Register(&driver.PublishSystem{})
	if debug {
		g.imguiSystem = debugui.Install(g.scheduler)
	}
	return g
}

func (g *Game) imguiWantsKeyboard() bool {
	return g.imguiSystem != nil && g.imguiSystem.InputState.WantCaptureKeyboard
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.session.Game().Over() && !g.imguiWantsKeyboard() &&
		(inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)) {
		if err := g.session.Restart(); err != nil {
			log.Printf("restart failed: %v", err)
		}
	}

	frame := func() { g.scheduler.Once(1.0 / float64(ebiten.TPS())) }
	if g.imguiBackend != nil {
		g.imguiBackend.Update(frame)
	} else {
		frame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.draw(screen, g.session.Snapshot())
	if g.imguiBackend != nil {
		g.imguiBackend.Overlay(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imguiBackend != nil {
		g.imguiBackend.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.width, g.height
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	session, err := driver.NewSession(driver.SessionConfig{
		Store:   cfg.Store(),
		Speed:   cfg.Speed(),
		Shuffle: cfg.Shuffle(),
	})
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	log.Printf("session %s: best score %d", session.ID(), session.Game().BestScore())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if cfg.HTTPAddr != "" {
		go func() {
			if err := web.Serve(ctx, cfg.HTTPAddr, session); err != nil {
				log.Printf("status server: %v", err)
			}
		}()
	}

	game := newGame(cfg, session, cfg.Debug)
	if !cfg.Debug {
		ebiten.SetWindowSize(game.width, game.height)
		ebiten.SetWindowTitle("blockfall")
	}

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	log.Println("bye")
}
