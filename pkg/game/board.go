package game

import (
	"fmt"
	"strings"
)

const (
	// BoardSize is the dimension of the flat board view.
	BoardSize = 4
	// BoardCells is the length of a flat board.
	BoardCells = BoardSize * BoardSize
)

// Board is a flat view of a 4x4 grid. 0 marks an empty cell.
type Board [BoardCells]int

// ExtractBoard flattens a snapshot: the cell at Cells[r][c] is written to
// index 4*c+r. Missing, empty or out-of-range cells stay 0.
func ExtractBoard(s *Serialized) Board {
	var out Board
	if s == nil {
		return out
	}
	cells := s.Grid.Cells
	for r := 0; r < BoardSize && r < len(cells); r++ {
		for c := 0; c < BoardSize && c < len(cells[r]); c++ {
			if value, ok := cells[r][c].Value(); ok {
				out[BoardSize*c+r] = value
			}
		}
	}
	return out
}

// Rows returns the board as rows of four values, row i holding indexes 4*i..4*i+3.
func (b Board) Rows() [BoardSize][BoardSize]int {
	var rows [BoardSize][BoardSize]int
	for i := 0; i < BoardSize; i++ {
		for j := 0; j < BoardSize; j++ {
			rows[i][j] = b[BoardSize*i+j]
		}
	}
	return rows
}

func (b Board) String() string {
	line := "+------+------+------+------+"
	sb := &strings.Builder{}
	sb.WriteString(line + "\n")
	for _, row := range b.Rows() {
		sb.WriteString("|")
		for _, v := range row {
			if v == 0 {
				sb.WriteString("      |")
			} else {
				fmt.Fprintf(sb, "%5d |", v)
			}
		}
		sb.WriteString("\n" + line + "\n")
	}
	return sb.String()
}
