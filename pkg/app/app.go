package app

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/cbodonnell/twenty48/pkg/game"
	"github.com/cbodonnell/twenty48/pkg/log"
)

var ErrNotReady = errors.New("game manager has not been constructed yet")

// Scheduler runs a callback once, on the next frame of the render loop.
type Scheduler interface {
	RequestAnimationFrame(callback func())
}

// GameManagerFactory constructs the game manager once the render loop is running.
type GameManagerFactory func() (*game.GameManager, error)

// App is the application context shared by the render loop and the debug surfaces.
type App struct {
	factory GameManagerFactory

	bootstrapOnce sync.Once
	ready         chan struct{}

	lock        sync.RWMutex
	gameManager *game.GameManager
	err         error
}

// NewAppOptions contains options for creating a new App.
type NewAppOptions struct {
	Factory GameManagerFactory
}

func NewApp(opts NewAppOptions) *App {
	return &App{
		factory: opts.Factory,
		ready:   make(chan struct{}),
	}
}

// Bootstrap schedules construction of the game manager on the next frame.
// Only the first call has any effect.
func (a *App) Bootstrap(s Scheduler) {
	a.bootstrapOnce.Do(func() {
		s.RequestAnimationFrame(a.construct)
	})
}

func (a *App) construct() {
	defer close(a.ready)

	if a.factory == nil {
		a.setErr(errors.New("no game manager factory configured"))
		return
	}

	gm, err := a.factory()
	if err != nil {
		a.setErr(fmt.Errorf("failed to create game manager: %v", err))
		return
	}
	a.SetGameManager(gm)
	log.Debug("Game manager constructed")
}

func (a *App) setErr(err error) {
	log.Error("Bootstrap failed: %v", err)
	a.lock.Lock()
	defer a.lock.Unlock()
	a.err = err
}

// Ready is closed once the bootstrap callback has run, whether or not construction succeeded.
func (a *App) Ready() <-chan struct{} {
	return a.ready
}

// Err returns the construction error, if any.
func (a *App) Err() error {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.err
}

// GameManager returns the constructed game manager, or nil before bootstrap completes.
func (a *App) GameManager() *game.GameManager {
	a.lock.RLock()
	defer a.lock.RUnlock()
	return a.gameManager
}

// SetGameManager replaces the game manager held in the context.
func (a *App) SetGameManager(gm *game.GameManager) {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.gameManager = gm
}

// GetBoard returns the current board as a flat array.
func (a *App) GetBoard() (game.Board, error) {
	gm := a.GameManager()
	if gm == nil {
		return game.Board{}, ErrNotReady
	}
	return game.ExtractBoard(gm.Serialize()), nil
}

// PrintBoard writes the current board as a table to w.
func (a *App) PrintBoard(w io.Writer) error {
	gm := a.GameManager()
	if gm == nil {
		return ErrNotReady
	}
	return game.PrintBoard(w, gm.Serialize())
}
