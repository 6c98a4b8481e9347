package objects

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/cbodonnell/twenty48/client/fonts"
	"github.com/cbodonnell/twenty48/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	TileSize = 106
	TileGap  = 15
)

var (
	boardBackground = color.NRGBA{R: 187, G: 173, B: 160, A: 255}
	emptyCellColor  = color.NRGBA{R: 205, G: 193, B: 180, A: 255}
	darkText        = color.NRGBA{R: 119, G: 110, B: 101, A: 255}
	lightText       = color.NRGBA{R: 249, G: 246, B: 242, A: 255}
	superTileColor  = color.NRGBA{R: 60, G: 58, B: 50, A: 255}

	tileColors = map[int]color.NRGBA{
		2:    {R: 238, G: 228, B: 218, A: 255},
		4:    {R: 237, G: 224, B: 200, A: 255},
		8:    {R: 242, G: 177, B: 121, A: 255},
		16:   {R: 245, G: 149, B: 99, A: 255},
		32:   {R: 246, G: 124, B: 95, A: 255},
		64:   {R: 246, G: 94, B: 59, A: 255},
		128:  {R: 237, G: 207, B: 114, A: 255},
		256:  {R: 237, G: 204, B: 97, A: 255},
		512:  {R: 237, G: 200, B: 80, A: 255},
		1024: {R: 237, G: 197, B: 63, A: 255},
		2048: {R: 237, G: 194, B: 46, A: 255},
	}
)

// TileColors returns the background and text colors of a tile.
func TileColors(value int) (bg color.NRGBA, fg color.NRGBA) {
	bg, ok := tileColors[value]
	if !ok {
		bg = superTileColor
	}
	if value <= 4 {
		return bg, darkText
	}
	return bg, lightText
}

// BoardPixelSize is the width and height of a board with size cells per side.
func BoardPixelSize(size int) float32 {
	return float32(size*TileSize + (size+1)*TileGap)
}

// BoardObject renders the grid and the score header. It is the game's visual actuator.
type BoardObject struct {
	*BaseObject

	x, y float32

	size       int
	cells      [][]int
	score      int
	bestScore  int
	over       bool
	won        bool
	terminated bool
	actuated   bool

	overlay     *TextOverlayObject
	effectCount int
}

var _ game.Actuator = &BoardObject{}

type NewBoardObjectOptions struct {
	// X and Y locate the top left corner of the grid. The score header is drawn above it.
	X, Y float32
	Size int
}

func NewBoardObject(id string, opts NewBoardObjectOptions) *BoardObject {
	size := opts.Size
	if size < 2 {
		size = game.DefaultSize
	}
	cells := make([][]int, size)
	for x := range cells {
		cells[x] = make([]int, size)
	}
	return &BoardObject{
		BaseObject: NewBaseObject(id, nil),
		x:          opts.X,
		y:          opts.Y,
		size:       size,
		cells:      cells,
	}
}

func (o *BoardObject) Init() error {
	if o.overlay != nil {
		return nil
	}
	side := BoardPixelSize(o.size)
	o.overlay = NewTextOverlayObject(o.GetID()+"-overlay", NewTextOverlayObjectOptions{
		X:      o.x,
		Y:      o.y,
		Width:  side,
		Height: side,
	})
	if err := o.AddChild(o.overlay.GetID(), o.overlay); err != nil {
		return fmt.Errorf("failed to add overlay: %v", err)
	}
	return nil
}

// Actuate copies the grid so that drawing never touches game state.
func (o *BoardObject) Actuate(grid *game.Grid, metadata game.Metadata) error {
	if grid.Size() != o.size {
		o.size = grid.Size()
		o.cells = make([][]int, o.size)
		for x := range o.cells {
			o.cells[x] = make([]int, o.size)
		}
	}
	for x := range o.cells {
		for y := range o.cells[x] {
			o.cells[x][y] = 0
		}
	}
	grid.EachCell(func(pos game.Position, tile *game.Tile) {
		if tile != nil {
			o.cells[pos.X][pos.Y] = tile.Value
		}
	})

	if diff := metadata.Score - o.score; o.actuated && diff > 0 {
		if err := o.addScoreEffect(diff); err != nil {
			return err
		}
	}
	o.actuated = true
	o.score = metadata.Score
	o.bestScore = metadata.BestScore
	o.over = metadata.Over
	o.won = metadata.Won
	o.terminated = metadata.Terminated

	if o.overlay != nil {
		o.overlay.SetText(o.Message())
	}
	return nil
}

func (o *BoardObject) ContinueGame() {
	o.terminated = false
	if o.overlay != nil {
		o.overlay.SetText("")
	}
}

// Message is the text shown over a terminated game.
func (o *BoardObject) Message() string {
	switch {
	case !o.terminated:
		return ""
	case o.over:
		return "Game over!"
	case o.won:
		return "You win!"
	}
	return ""
}

// CanKeepPlaying reports whether the game was won and is waiting for the player to continue.
func (o *BoardObject) CanKeepPlaying() bool {
	return o.won && o.terminated && !o.over
}

func (o *BoardObject) Score() int {
	return o.score
}

func (o *BoardObject) addScoreEffect(diff int) error {
	o.effectCount++
	effect := NewTextEffect(fmt.Sprintf("%s-score-%d", o.GetID(), o.effectCount), NewTextEffectOptions{
		Text:  "+" + strconv.Itoa(diff),
		X:     float64(o.x + BoardPixelSize(o.size) - 60),
		Y:     float64(o.y - 60),
		Color: darkText,
		TTL:   600,
	})
	if err := o.AddChild(effect.GetID(), effect); err != nil {
		return fmt.Errorf("failed to add score effect: %v", err)
	}
	return nil
}

func (o *BoardObject) Draw(screen *ebiten.Image) {
	o.drawHeader(screen)

	side := BoardPixelSize(o.size)
	vector.DrawFilledRect(screen, o.x, o.y, side, side, boardBackground, false)
	for x := 0; x < o.size; x++ {
		for y := 0; y < o.size; y++ {
			tx := o.x + float32(TileGap+x*(TileSize+TileGap))
			ty := o.y + float32(TileGap+y*(TileSize+TileGap))
			value := o.cells[x][y]
			if value == 0 {
				vector.DrawFilledRect(screen, tx, ty, TileSize, TileSize, emptyCellColor, false)
				continue
			}
			o.drawTile(screen, tx, ty, value)
		}
	}
}

func (o *BoardObject) drawTile(screen *ebiten.Image, x, y float32, value int) {
	bg, fg := TileColors(value)
	vector.DrawFilledRect(screen, x, y, TileSize, TileSize, bg, false)

	label := strconv.Itoa(value)
	f := fonts.TileFont(len(label))
	drawCentered(screen, label, f, float64(x)+TileSize/2, float64(y)+TileSize/2, fg)
}

func (o *BoardObject) drawHeader(screen *ebiten.Image) {
	titleOp := &ebiten.DrawImageOptions{}
	titleOp.GeoM.Translate(float64(o.x), float64(o.y)-80)
	titleOp.ColorScale.ScaleWithColor(darkText)
	text.DrawWithOptions(screen, "2048", fonts.TTFLargeFont, titleOp)

	right := o.x + BoardPixelSize(o.size)
	o.drawScoreBox(screen, right-200, o.y-120, "SCORE", o.score)
	o.drawScoreBox(screen, right-95, o.y-120, "BEST", o.bestScore)
}

func (o *BoardObject) drawScoreBox(screen *ebiten.Image, x, y float32, label string, value int) {
	const w, h = 95, 55
	vector.DrawFilledRect(screen, x, y, w, h, boardBackground, false)
	drawCentered(screen, label, fonts.TTFSmallFont, float64(x)+w/2, float64(y)+16, emptyCellColor)
	drawCentered(screen, strconv.Itoa(value), fonts.TTFNormalFont, float64(x)+w/2, float64(y)+38, lightText)
}

// drawCentered draws s centered on cx, cy.
func drawCentered(screen *ebiten.Image, s string, f font.Face, cx, cy float64, clr color.Color) {
	bounds, _ := font.BoundString(f, s)
	w := float64((bounds.Max.X - bounds.Min.X) >> 6)
	h := float64((bounds.Max.Y - bounds.Min.Y) >> 6)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(cx-w/2-float64(bounds.Min.X>>6), cy+h/2-float64(bounds.Max.Y>>6))
	op.ColorScale.ScaleWithColor(clr)
	text.DrawWithOptions(screen, s, f, op)
}
