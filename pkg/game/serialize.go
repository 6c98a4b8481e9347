package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Cell is a serialized grid cell: either empty or occupied by a positive tile value.
// The zero value is an empty cell.
type Cell struct {
	value int
}

func EmptyCell() Cell {
	return Cell{}
}

// OccupiedCell returns a cell holding value. Non-positive values yield an empty cell.
func OccupiedCell(value int) Cell {
	if value <= 0 {
		return Cell{}
	}
	return Cell{value: value}
}

// Value returns the tile value and whether the cell is occupied.
func (c Cell) Value() (int, bool) {
	return c.value, c.value > 0
}

func (c Cell) IsEmpty() bool {
	return c.value <= 0
}

// Serialized is a snapshot of a game.
type Serialized struct {
	Grid        SerializedGrid `json:"grid"`
	Score       int            `json:"score"`
	Over        bool           `json:"over"`
	Won         bool           `json:"won"`
	KeepPlaying bool           `json:"keepPlaying"`
}

// SerializedGrid holds cells indexed as Cells[x][y].
type SerializedGrid struct {
	Size  int      `json:"size"`
	Cells [][]Cell `json:"cells"`
}

// Copy returns a deep copy of the snapshot.
func (s *Serialized) Copy() *Serialized {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Grid.Cells = make([][]Cell, len(s.Grid.Cells))
	for x := range s.Grid.Cells {
		cp.Grid.Cells[x] = append([]Cell(nil), s.Grid.Cells[x]...)
	}
	return &cp
}

type tileJSON struct {
	Position Position `json:"position"`
	Value    int      `json:"value"`
}

func (g SerializedGrid) MarshalJSON() ([]byte, error) {
	cells := make([][]*tileJSON, len(g.Cells))
	for x := range g.Cells {
		cells[x] = make([]*tileJSON, len(g.Cells[x]))
		for y, cell := range g.Cells[x] {
			if value, ok := cell.Value(); ok {
				cells[x][y] = &tileJSON{
					Position: Position{X: x, Y: y},
					Value:    value,
				}
			}
		}
	}
	return json.Marshal(struct {
		Size  int           `json:"size"`
		Cells [][]*tileJSON `json:"cells"`
	}{
		Size:  g.Size,
		Cells: cells,
	})
}

func (c Cell) MarshalJSON() ([]byte, error) {
	if value, ok := c.Value(); ok {
		return json.Marshal(struct {
			Value int `json:"value"`
		}{Value: value})
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes null or {"value": n}. Anything else, including a
// non-numeric, fractional or negative value, decodes to an empty cell.
func (c *Cell) UnmarshalJSON(b []byte) error {
	*c = Cell{}
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var raw struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	var value float64
	if err := json.Unmarshal(raw.Value, &value); err != nil {
		return nil
	}
	if value != math.Trunc(value) || value > math.MaxInt32 {
		return nil
	}
	*c = OccupiedCell(int(value))
	return nil
}

// DecodeSerialized parses a JSON snapshot.
func DecodeSerialized(b []byte) (*Serialized, error) {
	s := &Serialized{}
	if err := json.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("failed to decode serialized game: %v", err)
	}
	return s, nil
}
