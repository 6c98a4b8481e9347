package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/cbodonnell/twenty48/pkg/log"
)

const (
	// DefaultSize is the standard board dimension.
	DefaultSize = 4
	// StartTiles is the number of tiles placed on a fresh board.
	StartTiles = 2
	// WinningValue is the tile value that wins the game.
	WinningValue = 2048
	// FourProbability is the chance that a spawned tile is a 4 rather than a 2.
	FourProbability = 0.1
)

var (
	ErrInvalidSize         = errors.New("board size must be at least 2")
	ErrMissingCollaborator = errors.New("input manager, actuator and storage manager are required")
	ErrInvalidDirection    = errors.New("invalid direction")
)

type GameManager struct {
	size           int
	inputManager   InputManager
	actuator       Actuator
	storageManager StorageManager
	rng            *rand.Rand

	grid        *Grid
	score       int
	over        bool
	won         bool
	keepPlaying bool
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	Size           int
	InputManager   InputManager
	Actuator       Actuator
	StorageManager StorageManager
	// Rand is the tile spawn source. A time seeded source is used when nil.
	Rand *rand.Rand
}

// NewGameManager creates a GameManager, restores the stored game if there is one
// and actuates the initial state.
func NewGameManager(opts NewGameManagerOptions) (*GameManager, error) {
	if opts.Size < 2 {
		return nil, ErrInvalidSize
	}
	if opts.InputManager == nil || opts.Actuator == nil || opts.StorageManager == nil {
		return nil, ErrMissingCollaborator
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	gm := &GameManager{
		size:           opts.Size,
		inputManager:   opts.InputManager,
		actuator:       opts.Actuator,
		storageManager: opts.StorageManager,
		rng:            rng,
	}
	if err := gm.setup(); err != nil {
		return nil, fmt.Errorf("failed to set up game: %v", err)
	}
	return gm, nil
}

func (gm *GameManager) setup() error {
	previousState, err := gm.storageManager.GameState()
	if err != nil {
		log.Warn("Failed to load previous game state, starting a new game: %v", err)
		previousState = nil
	}

	if previousState != nil && previousState.Grid.Size == gm.size {
		log.Debug("Restoring previous game with score %d", previousState.Score)
		gm.grid = NewGridFromState(previousState.Grid)
		gm.score = previousState.Score
		gm.over = previousState.Over
		gm.won = previousState.Won
		gm.keepPlaying = previousState.KeepPlaying
	} else {
		gm.grid = NewGrid(gm.size)
		gm.score = 0
		gm.over = false
		gm.won = false
		gm.keepPlaying = false
		gm.addStartTiles()
	}

	return gm.actuate()
}

func (gm *GameManager) addStartTiles() {
	for i := 0; i < StartTiles; i++ {
		gm.addRandomTile()
	}
}

func (gm *GameManager) addRandomTile() {
	pos, ok := gm.grid.RandomAvailableCell(gm.rng)
	if !ok {
		return
	}
	value := 2
	if gm.rng.Float64() < FourProbability {
		value = 4
	}
	gm.grid.InsertTile(NewTile(pos, value))
}

// Update processes all pending input events.
func (gm *GameManager) Update() error {
	events, err := gm.inputManager.ReadEvents()
	if err != nil {
		return fmt.Errorf("failed to read input events: %v", err)
	}
	for _, event := range events {
		switch event.Type {
		case InputEventMove:
			if _, err := gm.Move(event.Direction); err != nil {
				if errors.Is(err, ErrInvalidDirection) {
					log.Warn("Ignoring move event: %v", err)
					continue
				}
				return fmt.Errorf("failed to move %s: %v", event.Direction, err)
			}
		case InputEventRestart:
			if err := gm.Restart(); err != nil {
				return fmt.Errorf("failed to restart: %v", err)
			}
		case InputEventKeepPlaying:
			gm.KeepPlaying()
		default:
			log.Error("unhandled input event type: %v", event.Type)
		}
	}
	return nil
}

// Restart abandons the current game and starts a new one.
func (gm *GameManager) Restart() error {
	if !gm.over && gm.score > 0 {
		if err := gm.storageManager.RecordResult(gm.result()); err != nil {
			log.Error("Failed to record abandoned game: %v", err)
		}
	}
	if err := gm.storageManager.ClearGameState(); err != nil {
		return fmt.Errorf("failed to clear game state: %v", err)
	}
	gm.actuator.ContinueGame()
	return gm.setup()
}

// KeepPlaying lets the player continue after reaching the winning tile.
func (gm *GameManager) KeepPlaying() {
	gm.keepPlaying = true
	gm.actuator.ContinueGame()
}

// IsGameTerminated is true when the game is over, or won and not continued.
func (gm *GameManager) IsGameTerminated() bool {
	return gm.over || (gm.won && !gm.keepPlaying)
}

func (gm *GameManager) actuate() error {
	bestScore := gm.storageManager.BestScore()
	if bestScore < gm.score {
		if err := gm.storageManager.SetBestScore(gm.score); err != nil {
			return fmt.Errorf("failed to save best score: %v", err)
		}
		bestScore = gm.score
	}

	if gm.over {
		if err := gm.storageManager.RecordResult(gm.result()); err != nil {
			log.Error("Failed to record game result: %v", err)
		}
		if err := gm.storageManager.ClearGameState(); err != nil {
			return fmt.Errorf("failed to clear game state: %v", err)
		}
	} else {
		if err := gm.storageManager.SetGameState(gm.Serialize()); err != nil {
			return fmt.Errorf("failed to save game state: %v", err)
		}
	}

	return gm.actuator.Actuate(gm.grid, Metadata{
		Score:       gm.score,
		Over:        gm.over,
		Won:         gm.won,
		KeepPlaying: gm.keepPlaying,
		BestScore:   bestScore,
		Terminated:  gm.IsGameTerminated(),
	})
}

func (gm *GameManager) result() *Result {
	return &Result{
		Score:   gm.score,
		MaxTile: gm.grid.MaxTile(),
		Won:     gm.won,
		Over:    gm.over,
	}
}

// Serialize returns a snapshot of the current game.
func (gm *GameManager) Serialize() *Serialized {
	return &Serialized{
		Grid:        gm.grid.Serialize(),
		Score:       gm.score,
		Over:        gm.over,
		Won:         gm.won,
		KeepPlaying: gm.keepPlaying,
	}
}

func (gm *GameManager) Score() int {
	return gm.score
}

func (gm *GameManager) Size() int {
	return gm.size
}

func (gm *GameManager) prepareTiles() {
	gm.grid.EachCell(func(_ Position, tile *Tile) {
		if tile != nil {
			tile.merged = false
		}
	})
}

func (gm *GameManager) moveTile(tile *Tile, pos Position) {
	gm.grid.cells[tile.X][tile.Y] = nil
	gm.grid.cells[pos.X][pos.Y] = tile
	tile.Position = pos
}

// Move slides every tile in dir, merging equal neighbours once per move.
// It reports whether anything moved.
func (gm *GameManager) Move(dir Direction) (bool, error) {
	if !dir.Valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}
	if gm.IsGameTerminated() {
		return false, nil
	}

	vector := dir.vector()
	xs, ys := gm.buildTraversals(vector)
	moved := false

	gm.prepareTiles()

	for _, x := range xs {
		for _, y := range ys {
			cell := Position{X: x, Y: y}
			tile := gm.grid.CellContent(cell)
			if tile == nil {
				continue
			}

			farthest, next := gm.findFarthestPosition(cell, vector)
			nextTile := gm.grid.CellContent(next)

			if nextTile != nil && nextTile.Value == tile.Value && !nextTile.merged {
				merged := NewTile(next, tile.Value*2)
				merged.merged = true

				gm.grid.InsertTile(merged)
				gm.grid.RemoveTile(tile)
				tile.Position = next

				gm.score += merged.Value
				if merged.Value == WinningValue {
					gm.won = true
				}
			} else {
				gm.moveTile(tile, farthest)
			}

			if cell != tile.Position {
				moved = true
			}
		}
	}

	if !moved {
		return false, nil
	}

	gm.addRandomTile()
	if !gm.movesAvailable() {
		gm.over = true
	}
	if err := gm.actuate(); err != nil {
		return true, err
	}
	return true, nil
}

// buildTraversals orders the positions so that tiles farthest in the
// direction of travel are moved first.
func (gm *GameManager) buildTraversals(vector Position) ([]int, []int) {
	xs := make([]int, gm.size)
	ys := make([]int, gm.size)
	for i := 0; i < gm.size; i++ {
		xs[i] = i
		ys[i] = i
	}
	if vector.X == 1 {
		reverse(xs)
	}
	if vector.Y == 1 {
		reverse(ys)
	}
	return xs, ys
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func (gm *GameManager) findFarthestPosition(cell, vector Position) (farthest, next Position) {
	var previous Position
	for {
		previous = cell
		cell = previous.add(vector)
		if !gm.grid.WithinBounds(cell) || !gm.grid.CellAvailable(cell) {
			break
		}
	}
	return previous, cell
}

func (gm *GameManager) movesAvailable() bool {
	return gm.grid.CellsAvailable() || gm.tileMatchesAvailable()
}

func (gm *GameManager) tileMatchesAvailable() bool {
	for x := 0; x < gm.size; x++ {
		for y := 0; y < gm.size; y++ {
			tile := gm.grid.CellContent(Position{X: x, Y: y})
			if tile == nil {
				continue
			}
			for _, dir := range Directions {
				other := gm.grid.CellContent(tile.Position.add(dir.vector()))
				if other != nil && other.Value == tile.Value {
					return true
				}
			}
		}
	}
	return false
}
