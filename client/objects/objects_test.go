package objects

import (
	"testing"

	"github.com/cbodonnell/twenty48/pkg/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(objs []GameObject) []string {
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		out = append(out, o.GetID())
	}
	return out
}

func TestBaseObject_Children(t *testing.T) {
	root := NewBaseObject("root", nil)
	a := NewBaseObject("a", nil)
	b := NewBaseObject("b", nil)

	require.NoError(t, root.AddChild("a", a))
	require.NoError(t, root.AddChild("b", b))
	assert.Error(t, root.AddChild("a", NewBaseObject("a", nil)))
	assert.Equal(t, []string{"a", "b"}, ids(root.GetChildren()))
	assert.Same(t, b, root.GetChild("b"))

	require.NoError(t, a.RemoveFromParent())
	assert.Equal(t, []string{"b"}, ids(root.GetChildren()))
	assert.Nil(t, root.GetChild("a"))
	assert.Nil(t, a.GetParent())
	assert.Same(t, b, root.GetChild("b"))

	assert.Error(t, root.RemoveChild("a"))
	assert.NoError(t, root.RemoveFromParent())
}

func TestSortedZIndexObject(t *testing.T) {
	root := NewSortedZIndexObject("root")
	require.NoError(t, root.AddChild("top", NewBaseObject("top", &NewBaseObjectOpts{ZIndex: 10})))
	require.NoError(t, root.AddChild("bottom", NewBaseObject("bottom", &NewBaseObjectOpts{ZIndex: -1})))
	require.NoError(t, root.AddChild("middle-1", NewBaseObject("middle-1", nil)))
	require.NoError(t, root.AddChild("middle-2", NewBaseObject("middle-2", nil)))
	assert.Equal(t, []string{"bottom", "middle-1", "middle-2", "top"}, ids(root.GetChildren()))

	require.NoError(t, root.RemoveChild("middle-1"))
	assert.Equal(t, []string{"bottom", "middle-2", "top"}, ids(root.GetChildren()))
	assert.Same(t, root, root.GetChild("top").GetParent())
}

func TestTextEffect_Expires(t *testing.T) {
	root := NewSortedZIndexObject("root")
	effect := NewTextEffect("effect", NewTextEffectOptions{Text: "+4", TTL: 20})
	require.NoError(t, root.AddChild("effect", effect))

	for i := 0; i < 5 && len(root.GetChildren()) > 0; i++ {
		require.NoError(t, UpdateTree(root))
	}
	assert.Empty(t, root.GetChildren())
}

func TestTileColors(t *testing.T) {
	bg, fg := TileColors(2)
	assert.Equal(t, tileColors[2], bg)
	assert.Equal(t, darkText, fg)

	bg, fg = TileColors(2048)
	assert.Equal(t, tileColors[2048], bg)
	assert.Equal(t, lightText, fg)

	bg, _ = TileColors(8192)
	assert.Equal(t, superTileColor, bg)
}

func TestBoardObject_Actuate(t *testing.T) {
	board := NewBoardObject("board", NewBoardObjectOptions{Size: 4})
	require.NoError(t, InitTree(board))

	grid := game.NewGrid(4)
	grid.InsertTile(game.NewTile(game.Position{X: 3, Y: 0}, 8))
	require.NoError(t, board.Actuate(grid, game.Metadata{Score: 0}))
	assert.Equal(t, 8, board.cells[3][0])
	assert.Equal(t, "", board.Message())
	children := len(board.GetChildren())

	require.NoError(t, board.Actuate(grid, game.Metadata{Score: 16, BestScore: 16}))
	assert.Len(t, board.GetChildren(), children+1, "score increase adds an effect")

	require.NoError(t, board.Actuate(grid, game.Metadata{Score: 16, Won: true, Terminated: true}))
	assert.Equal(t, "You win!", board.Message())
	assert.Equal(t, "You win!", board.overlay.Text())
	assert.True(t, board.CanKeepPlaying())

	board.ContinueGame()
	assert.Equal(t, "", board.overlay.Text())
	assert.Equal(t, "", board.Message())
	assert.False(t, board.CanKeepPlaying(), "keep going is hidden once the game continues")

	require.NoError(t, board.Actuate(grid, game.Metadata{Score: 16, Over: true, Terminated: true}))
	assert.Equal(t, "Game over!", board.Message())
	assert.False(t, board.CanKeepPlaying())

	require.NoError(t, board.Actuate(game.NewGrid(2), game.Metadata{}))
	assert.Len(t, board.cells, 2)
}
