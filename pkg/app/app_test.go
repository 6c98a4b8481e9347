package app

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/cbodonnell/twenty48/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameScheduler struct {
	callbacks []func()
}

func (s *frameScheduler) RequestAnimationFrame(callback func()) {
	s.callbacks = append(s.callbacks, callback)
}

func (s *frameScheduler) frame() {
	callbacks := s.callbacks
	s.callbacks = nil
	for _, cb := range callbacks {
		cb()
	}
}

type nopInput struct{}

func (nopInput) ReadEvents() ([]game.InputEvent, error) { return nil, nil }

type nopActuator struct{}

func (nopActuator) Actuate(*game.Grid, game.Metadata) error { return nil }
func (nopActuator) ContinueGame() {}

type staticStorage struct {
	state *game.Serialized
}

func (s *staticStorage) BestScore() int { return 0 }
func (s *staticStorage) SetBestScore(int) error { return nil }
func (s *staticStorage) GameState() (*game.Serialized, error) { return s.state, nil }
func (s *staticStorage) SetGameState(st *game.Serialized) error { s.state = st; return nil }
func (s *staticStorage) ClearGameState() error { s.state = nil; return nil }
func (s *staticStorage) RecordResult(*game.Result) error { return nil }

func newFactory(calls *int, storage game.StorageManager) GameManagerFactory {
	return func() (*game.GameManager, error) {
		*calls++
		return game.NewGameManager(game.NewGameManagerOptions{
			Size:           game.DefaultSize,
			InputManager:   nopInput{},
			Actuator:       nopActuator{},
			StorageManager: storage,
			Rand:           rand.New(rand.NewSource(1)),
		})
	}
}

func TestBootstrap_RunsOnceAfterFrame(t *testing.T) {
	calls := 0
	a := NewApp(NewAppOptions{Factory: newFactory(&calls, &staticStorage{})})
	s := &frameScheduler{}

	a.Bootstrap(s)
	a.Bootstrap(s)
	assert.Equal(t, 0, calls, "construction must wait for the frame")
	assert.Nil(t, a.GameManager())
	require.Len(t, s.callbacks, 1)

	select {
	case <-a.Ready():
		t.Fatal("ready before the frame fired")
	default:
	}

	s.frame()
	s.frame()
	assert.Equal(t, 1, calls)
	assert.NotNil(t, a.GameManager())
	assert.NoError(t, a.Err())

	select {
	case <-a.Ready():
	default:
		t.Fatal("ready not closed after the frame fired")
	}
}

func TestBootstrap_ConstructionFailure(t *testing.T) {
	a := NewApp(NewAppOptions{Factory: func() (*game.GameManager, error) {
		return nil, errors.New("boom")
	}})
	s := &frameScheduler{}
	a.Bootstrap(s)
	s.frame()

	assert.ErrorContains(t, a.Err(), "boom")
	assert.Nil(t, a.GameManager())
	_, err := a.GetBoard()
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestHelpers_BeforeBootstrap(t *testing.T) {
	a := NewApp(NewAppOptions{})
	_, err := a.GetBoard()
	assert.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, a.PrintBoard(&bytes.Buffer{}), ErrNotReady)
}

func TestHelpers(t *testing.T) {
	grid := game.NewGrid(game.DefaultSize)
	grid.InsertTile(game.NewTile(game.Position{X: 0, Y: 0}, 2))
	grid.InsertTile(game.NewTile(game.Position{X: 1, Y: 2}, 4))
	storage := &staticStorage{state: &game.Serialized{Grid: grid.Serialize(), Score: 8}}

	calls := 0
	a := NewApp(NewAppOptions{Factory: newFactory(&calls, storage)})
	s := &frameScheduler{}
	a.Bootstrap(s)
	s.frame()
	require.NoError(t, a.Err())

	board, err := a.GetBoard()
	require.NoError(t, err)
	assert.Equal(t, game.Board{0: 2, 9: 4}, board)

	before := a.GameManager().Serialize()
	buf := &bytes.Buffer{}
	require.NoError(t, a.PrintBoard(buf))
	assert.Contains(t, buf.String(), "score: 8")
	assert.Equal(t, before, a.GameManager().Serialize())

	again, err := a.GetBoard()
	require.NoError(t, err)
	assert.Equal(t, board, again)
}
