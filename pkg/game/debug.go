package game

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// PrintBoard writes s as a table: one row per outer cell index, one column per
// inner index, followed by the score and flags. s is not modified.
func PrintBoard(w io.Writer, s *Serialized) error {
	if s == nil {
		_, err := fmt.Fprintln(w, "no game")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "(index)\t")
	for i := 0; i < s.Grid.Size; i++ {
		fmt.Fprintf(tw, "%d\t", i)
	}
	fmt.Fprintln(tw)

	for i, column := range s.Grid.Cells {
		fmt.Fprintf(tw, "%d\t", i)
		for _, cell := range column {
			v := "."
			if value, ok := cell.Value(); ok {
				v = strconv.Itoa(value)
			}
			fmt.Fprintf(tw, "%s\t", v)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write board table: %v", err)
	}

	_, err := fmt.Fprintf(w, "score: %d  over: %t  won: %t  keepPlaying: %t\n", s.Score, s.Over, s.Won, s.KeepPlaying)
	return err
}
