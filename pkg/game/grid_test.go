package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid(t *testing.T) {
	g := NewGrid(4)
	assert.Equal(t, 4, g.Size())
	assert.Len(t, g.AvailableCells(), 16)
	assert.True(t, g.CellsAvailable())

	tile := NewTile(Position{X: 2, Y: 1}, 8)
	g.InsertTile(tile)
	assert.True(t, g.CellOccupied(Position{X: 2, Y: 1}))
	assert.Same(t, tile, g.CellContent(Position{X: 2, Y: 1}))
	assert.Len(t, g.AvailableCells(), 15)
	assert.Equal(t, 8, g.MaxTile())

	assert.Nil(t, g.CellContent(Position{X: -1, Y: 0}))
	assert.Nil(t, g.CellContent(Position{X: 0, Y: 4}))
	assert.False(t, g.WithinBounds(Position{X: 4, Y: 0}))

	g.RemoveTile(tile)
	assert.True(t, g.CellAvailable(Position{X: 2, Y: 1}))
}

func TestGrid_RandomAvailableCell(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g := NewGrid(2)
	for i := 0; i < 4; i++ {
		pos, ok := g.RandomAvailableCell(rng)
		assert.True(t, ok)
		assert.True(t, g.CellAvailable(pos))
		g.InsertTile(NewTile(pos, 2))
	}
	_, ok := g.RandomAvailableCell(rng)
	assert.False(t, ok)
	assert.False(t, g.CellsAvailable())
}

func TestNewGridFromState(t *testing.T) {
	g := NewGrid(3)
	g.InsertTile(NewTile(Position{X: 0, Y: 2}, 2))
	g.InsertTile(NewTile(Position{X: 2, Y: 0}, 32))

	restored := NewGridFromState(g.Serialize())
	assert.Equal(t, g.Serialize(), restored.Serialize())
	assert.Equal(t, Position{X: 2, Y: 0}, restored.CellContent(Position{X: 2, Y: 0}).Position)
}

func TestParseDirection(t *testing.T) {
	for _, dir := range Directions {
		parsed, err := ParseDirection(dir.String())
		assert.NoError(t, err)
		assert.Equal(t, dir, parsed)
	}
	parsed, err := ParseDirection("A")
	assert.NoError(t, err)
	assert.Equal(t, DirectionLeft, parsed)

	_, err = ParseDirection("diagonal")
	assert.Error(t, err)
}

func TestDirection_Valid(t *testing.T) {
	for _, dir := range Directions {
		assert.True(t, dir.Valid(), dir.String())
	}
	assert.False(t, Direction(-1).Valid())
	assert.False(t, Direction(4).Valid())
	assert.False(t, Direction(7).Valid())
}
