package game

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptySerialized() *Serialized {
	return &Serialized{Grid: NewGrid(BoardSize).Serialize()}
}

func TestExtractBoard(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Serialized)
		want  Board
	}{
		{
			name:  "empty grid",
			setup: func(s *Serialized) {},
			want:  Board{},
		},
		{
			name: "single 2 at row 0 column 0",
			setup: func(s *Serialized) {
				s.Grid.Cells[0][0] = OccupiedCell(2)
			},
			want: Board{0: 2},
		},
		{
			name: "single 4 at row 1 column 2",
			setup: func(s *Serialized) {
				s.Grid.Cells[1][2] = OccupiedCell(4)
			},
			want: Board{9: 4},
		},
		{
			name: "last cell",
			setup: func(s *Serialized) {
				s.Grid.Cells[3][3] = OccupiedCell(2048)
			},
			want: Board{15: 2048},
		},
		{
			name: "explicit empty cells stay zero",
			setup: func(s *Serialized) {
				s.Grid.Cells[2][1] = OccupiedCell(0)
				s.Grid.Cells[0][3] = EmptyCell()
				s.Grid.Cells[3][0] = OccupiedCell(8)
			},
			want: Board{3: 8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := emptySerialized()
			tt.setup(s)
			assert.Equal(t, tt.want, ExtractBoard(s))
		})
	}
}

func TestExtractBoard_ColumnMajorIndex(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		s := emptySerialized()
		for r := 0; r < BoardSize; r++ {
			for c := 0; c < BoardSize; c++ {
				if rng.Intn(2) == 0 {
					s.Grid.Cells[r][c] = OccupiedCell(1 << (1 + rng.Intn(11)))
				}
			}
		}

		board := ExtractBoard(s)
		require.Len(t, board, 16)
		for r := 0; r < BoardSize; r++ {
			for c := 0; c < BoardSize; c++ {
				want, ok := s.Grid.Cells[r][c].Value()
				if !ok {
					want = 0
				}
				assert.Equal(t, want, board[4*c+r])
			}
		}
		assert.Equal(t, board, ExtractBoard(s), "extraction is idempotent")
	}
}

func TestExtractBoard_MalformedInput(t *testing.T) {
	assert.Equal(t, Board{}, ExtractBoard(nil))

	short := &Serialized{Grid: SerializedGrid{Size: 4, Cells: [][]Cell{
		{OccupiedCell(2)},
		nil,
	}}}
	assert.Equal(t, Board{0: 2}, ExtractBoard(short))

	// Tiles with a non-numeric value decode to empty cells.
	raw := `{"grid":{"size":4,"cells":[
		[{"position":{"x":0,"y":0},"value":"2"},null,null,null],
		[null,{"position":{"x":1,"y":1},"value":4},null,null],
		[null,null,{"value":true},null],
		[null,null,null,{"position":{"x":3,"y":3}}]
	]},"score":0,"over":false,"won":false,"keepPlaying":false}`
	s := &Serialized{}
	require.NoError(t, json.Unmarshal([]byte(raw), s))
	assert.Equal(t, Board{5: 4}, ExtractBoard(s))
}

func TestExtractBoard_FromGameManager(t *testing.T) {
	storage := &fakeStorage{state: stateFromCells([][]int{
		{2, 0, 0, 0},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 8},
	}, 0)}
	gm, _, _ := newTestManager(t, storage)

	board := ExtractBoard(gm.Serialize())
	assert.Equal(t, Board{0: 2, 9: 4, 15: 8}, board)
}

func TestBoard_String(t *testing.T) {
	board := Board{0: 2, 5: 16, 15: 2048}
	want := "+------+------+------+------+\n" +
		"|    2 |      |      |      |\n" +
		"+------+------+------+------+\n" +
		"|      |   16 |      |      |\n" +
		"+------+------+------+------+\n" +
		"|      |      |      |      |\n" +
		"+------+------+------+------+\n" +
		"|      |      |      | 2048 |\n" +
		"+------+------+------+------+\n"
	assert.Equal(t, want, board.String())
}
