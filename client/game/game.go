package game

import (
	"fmt"
	"os"
	"sync"

	"github.com/cbodonnell/twenty48/client/scenes"
	"github.com/cbodonnell/twenty48/pkg/app"
	"github.com/cbodonnell/twenty48/pkg/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
// It also schedules frame callbacks for the application bootstrap.
type Game struct {
	// debug is a boolean value indicating whether debug mode is enabled.
	debug bool
	// app is the application context holding the game manager.
	app *app.App
	// scene is the current scene.
	scene scenes.Scene

	lock           sync.Mutex
	frameCallbacks []func()
}

var (
	_ ebiten.Game   = &Game{}
	_ app.Scheduler = &Game{}
)

type NewGameOptions struct {
	Debug bool
	App   *app.App
	Scene scenes.Scene
}

// NewGame creates the game and bootstraps the application on its first frame.
func NewGame(opts NewGameOptions) (*Game, error) {
	if opts.App == nil {
		return nil, fmt.Errorf("app is required")
	}
	g := &Game{
		debug: opts.Debug,
		app:   opts.App,
	}

	if err := g.SetScene(opts.Scene); err != nil {
		return nil, fmt.Errorf("failed to set scene: %v", err)
	}
	g.app.Bootstrap(g)

	return g, nil
}

func (g *Game) SetScene(scene scenes.Scene) error {
	if scene == nil {
		return fmt.Errorf("scene is nil")
	}
	if g.scene != nil {
		if err := g.scene.Destroy(); err != nil {
			return fmt.Errorf("failed to destroy previous scene: %v", err)
		}
	}

	g.scene = scene
	if err := g.scene.Init(); err != nil {
		return fmt.Errorf("failed to initialize scene: %v", err)
	}

	return nil
}

// RequestAnimationFrame runs callback once at the start of the next Update.
func (g *Game) RequestAnimationFrame(callback func()) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.frameCallbacks = append(g.frameCallbacks, callback)
}

func (g *Game) runFrameCallbacks() {
	g.lock.Lock()
	callbacks := g.frameCallbacks
	g.frameCallbacks = nil
	g.lock.Unlock()

	for _, cb := range callbacks {
		cb()
	}
}

func (g *Game) Update() error {
	g.runFrameCallbacks()

	// construction failures are not recovered
	if err := g.app.Err(); err != nil {
		return err
	}

	if gm := g.app.GameManager(); gm != nil {
		if err := gm.Update(); err != nil {
			return fmt.Errorf("failed to update game manager: %v", err)
		}
	}

	if g.debug {
		g.handleDebugInput()
	}

	// Update the current scene
	if err := g.scene.Update(); err != nil {
		return fmt.Errorf("failed to update scene: %v", err)
	}

	return nil
}

func (g *Game) handleDebugInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		if err := g.app.PrintBoard(os.Stdout); err != nil {
			log.Error("Failed to print board: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		board, err := g.app.GetBoard()
		if err != nil {
			log.Error("Failed to get board: %v", err)
			return
		}
		log.Info("Board: %v", board)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n   FPS: %0.1f", ebiten.ActualFPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n   TPS: %0.1f", ebiten.ActualTPS()))

	board, err := g.app.GetBoard()
	if err != nil {
		return
	}
	ebitenutil.DebugPrintAt(screen, board.String(), 4, 48)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return scenes.ScreenWidth, scenes.ScreenHeight
}
