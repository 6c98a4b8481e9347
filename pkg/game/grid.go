package game

import (
	"math/rand"
)

// Position is a grid coordinate. X is the column and Y is the row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Tile is an occupied grid cell.
type Tile struct {
	Position
	Value int

	// merged is set when the tile was produced by a merge during the current move
	merged bool
}

func NewTile(pos Position, value int) *Tile {
	return &Tile{
		Position: pos,
		Value:    value,
	}
}

// Grid is a square board of tiles indexed as cells[x][y].
type Grid struct {
	size  int
	cells [][]*Tile
}

func NewGrid(size int) *Grid {
	cells := make([][]*Tile, size)
	for x := range cells {
		cells[x] = make([]*Tile, size)
	}
	return &Grid{
		size:  size,
		cells: cells,
	}
}

// NewGridFromState rebuilds a grid from its serialized form.
// Cells outside the declared size are ignored.
func NewGridFromState(state SerializedGrid) *Grid {
	g := NewGrid(state.Size)
	for x := 0; x < state.Size && x < len(state.Cells); x++ {
		for y := 0; y < state.Size && y < len(state.Cells[x]); y++ {
			if value, ok := state.Cells[x][y].Value(); ok {
				g.cells[x][y] = NewTile(Position{X: x, Y: y}, value)
			}
		}
	}
	return g
}

func (g *Grid) Size() int {
	return g.size
}

// EachCell calls fn for every position, column by column.
func (g *Grid) EachCell(fn func(pos Position, tile *Tile)) {
	for x := 0; x < g.size; x++ {
		for y := 0; y < g.size; y++ {
			fn(Position{X: x, Y: y}, g.cells[x][y])
		}
	}
}

func (g *Grid) AvailableCells() []Position {
	var available []Position
	g.EachCell(func(pos Position, tile *Tile) {
		if tile == nil {
			available = append(available, pos)
		}
	})
	return available
}

// RandomAvailableCell returns a random empty position, or false when the grid is full.
func (g *Grid) RandomAvailableCell(rng *rand.Rand) (Position, bool) {
	available := g.AvailableCells()
	if len(available) == 0 {
		return Position{}, false
	}
	return available[rng.Intn(len(available))], true
}

func (g *Grid) CellsAvailable() bool {
	return len(g.AvailableCells()) > 0
}

func (g *Grid) CellAvailable(pos Position) bool {
	return !g.CellOccupied(pos)
}

func (g *Grid) CellOccupied(pos Position) bool {
	return g.CellContent(pos) != nil
}

// CellContent returns the tile at pos, or nil when the cell is empty or out of bounds.
func (g *Grid) CellContent(pos Position) *Tile {
	if !g.WithinBounds(pos) {
		return nil
	}
	return g.cells[pos.X][pos.Y]
}

func (g *Grid) InsertTile(tile *Tile) {
	g.cells[tile.X][tile.Y] = tile
}

func (g *Grid) RemoveTile(tile *Tile) {
	g.cells[tile.X][tile.Y] = nil
}

func (g *Grid) WithinBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.size && pos.Y >= 0 && pos.Y < g.size
}

// MaxTile returns the largest tile value on the grid.
func (g *Grid) MaxTile() int {
	highest := 0
	g.EachCell(func(_ Position, tile *Tile) {
		if tile != nil && tile.Value > highest {
			highest = tile.Value
		}
	})
	return highest
}

func (g *Grid) Serialize() SerializedGrid {
	cells := make([][]Cell, g.size)
	for x := 0; x < g.size; x++ {
		cells[x] = make([]Cell, g.size)
		for y := 0; y < g.size; y++ {
			if tile := g.cells[x][y]; tile != nil {
				cells[x][y] = OccupiedCell(tile.Value)
			}
		}
	}
	return SerializedGrid{
		Size:  g.size,
		Cells: cells,
	}
}
