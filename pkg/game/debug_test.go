package game

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBoard(t *testing.T) {
	s := emptySerialized()
	s.Grid.Cells[0][0] = OccupiedCell(2)
	s.Grid.Cells[1][2] = OccupiedCell(128)
	s.Score = 12

	buf := &bytes.Buffer{}
	require.NoError(t, PrintBoard(buf, s))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"(index)", "0", "1", "2", "3"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0", "2", ".", ".", "."}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1", ".", ".", "128", "."}, strings.Fields(lines[2]))
	assert.Equal(t, "score: 12  over: false  won: false  keepPlaying: false", lines[5])
}

func TestPrintBoard_NoMutation(t *testing.T) {
	gm, _, _ := newTestManager(t, &fakeStorage{})
	before := gm.Serialize()

	require.NoError(t, PrintBoard(&bytes.Buffer{}, gm.Serialize()))

	assert.Equal(t, before, gm.Serialize())
}

func TestPrintBoard_Nil(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, PrintBoard(buf, nil))
	assert.Equal(t, "no game\n", buf.String())
}
