package objects

import (
	"image/color"

	"github.com/cbodonnell/twenty48/client/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// TextOverlayObject dims a rectangle and centers a message on it. It draws nothing while the text is empty.
type TextOverlayObject struct {
	*BaseObject

	text       string
	x, y, w, h float32
	background color.Color
	foreground color.Color
}

type NewTextOverlayObjectOptions struct {
	X, Y, Width, Height float32
	Background          color.Color
	Foreground          color.Color
	ZIndex              int
}

func NewTextOverlayObject(id string, opts NewTextOverlayObjectOptions) *TextOverlayObject {
	bg := opts.Background
	if bg == nil {
		bg = color.NRGBA{R: 238, G: 228, B: 218, A: 186}
	}
	fg := opts.Foreground
	if fg == nil {
		fg = color.NRGBA{R: 119, G: 110, B: 101, A: 255}
	}
	return &TextOverlayObject{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{ZIndex: opts.ZIndex}),
		x:          opts.X,
		y:          opts.Y,
		w:          opts.Width,
		h:          opts.Height,
		background: bg,
		foreground: fg,
	}
}

func (o *TextOverlayObject) SetText(t string) {
	o.text = t
}

func (o *TextOverlayObject) Text() string {
	return o.text
}

func (o *TextOverlayObject) Draw(screen *ebiten.Image) {
	if o.text == "" {
		return
	}
	vector.DrawFilledRect(screen, o.x, o.y, o.w, o.h, o.background, false)

	f := fonts.TTFLargeFont
	bounds, _ := font.BoundString(f, o.text)
	tw := float64((bounds.Max.X - bounds.Min.X) >> 6)
	th := float64((bounds.Max.Y - bounds.Min.Y) >> 6)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(o.x)+float64(o.w)/2-tw/2, float64(o.y)+float64(o.h)/2+th/2)
	op.ColorScale.ScaleWithColor(o.foreground)
	text.DrawWithOptions(screen, o.text, f, op)
}
