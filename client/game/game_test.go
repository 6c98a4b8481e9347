package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/cbodonnell/twenty48/client/objects"
	"github.com/cbodonnell/twenty48/pkg/app"
	gamepkg "github.com/cbodonnell/twenty48/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingScene struct {
	updates int
}

func (s *countingScene) Init() error { return nil }
func (s *countingScene) Destroy() error { return nil }
func (s *countingScene) Update() error { s.updates++; return nil }
func (s *countingScene) Draw(screen *ebiten.Image) {}
func (s *countingScene) GetRoot() objects.GameObject { return nil }

type nopInput struct{}

func (nopInput) ReadEvents() ([]gamepkg.InputEvent, error) { return nil, nil }

type nopActuator struct{}

func (nopActuator) Actuate(*gamepkg.Grid, gamepkg.Metadata) error { return nil }
func (nopActuator) ContinueGame() {}

type nopStorage struct{}

func (nopStorage) BestScore() int { return 0 }
func (nopStorage) SetBestScore(int) error { return nil }
func (nopStorage) GameState() (*gamepkg.Serialized, error) { return nil, nil }
func (nopStorage) SetGameState(*gamepkg.Serialized) error { return nil }
func (nopStorage) ClearGameState() error { return nil }
func (nopStorage) RecordResult(*gamepkg.Result) error { return nil }

func TestGame_BootstrapsOnFirstUpdate(t *testing.T) {
	calls := 0
	a := app.NewApp(app.NewAppOptions{Factory: func() (*gamepkg.GameManager, error) {
		calls++
		return gamepkg.NewGameManager(gamepkg.NewGameManagerOptions{
			Size:           gamepkg.DefaultSize,
			InputManager:   nopInput{},
			Actuator:       nopActuator{},
			StorageManager: nopStorage{},
			Rand:           rand.New(rand.NewSource(1)),
		})
	}})
	scene := &countingScene{}

	g, err := NewGame(NewGameOptions{App: a, Scene: scene})
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
	assert.Nil(t, a.GameManager())

	require.NoError(t, g.Update())
	assert.Equal(t, 1, calls)
	require.NotNil(t, a.GameManager())

	require.NoError(t, g.Update())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, scene.updates)

	board, err := a.GetBoard()
	require.NoError(t, err)
	tiles := 0
	for _, v := range board {
		if v > 0 {
			tiles++
		}
	}
	assert.Equal(t, gamepkg.StartTiles, tiles)
}

func TestGame_ConstructionFailureStopsTheLoop(t *testing.T) {
	a := app.NewApp(app.NewAppOptions{Factory: func() (*gamepkg.GameManager, error) {
		return nil, errors.New("storage unavailable")
	}})
	g, err := NewGame(NewGameOptions{App: a, Scene: &countingScene{}})
	require.NoError(t, err)

	err = g.Update()
	assert.ErrorContains(t, err, "storage unavailable")
	assert.Nil(t, a.GameManager())
}

func TestNewGame_Validation(t *testing.T) {
	_, err := NewGame(NewGameOptions{Scene: &countingScene{}})
	assert.Error(t, err)

	_, err = NewGame(NewGameOptions{App: app.NewApp(app.NewAppOptions{})})
	assert.Error(t, err)
}

func TestGame_FrameCallbacksRunOnce(t *testing.T) {
	g := &Game{}
	first, second, nested := 0, 0, 0

	g.RequestAnimationFrame(func() { first++ })
	g.RequestAnimationFrame(func() {
		second++
		g.RequestAnimationFrame(func() { nested++ })
	})

	g.runFrameCallbacks()
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 0, nested, "callbacks requested during a frame wait for the next one")

	g.runFrameCallbacks()
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, nested)

	g.runFrameCallbacks()
	assert.Equal(t, 1, nested)
}
