package objects

import (
	"fmt"
	"image/color"

	"github.com/cbodonnell/twenty48/client/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// TextEffect is a short lived text that drifts upwards and fades out, used for score additions.
type TextEffect struct {
	*BaseObject

	text  string
	x     float64
	y     float64
	color color.Color
	face  font.Face
	// ttl and lifetime are in milliseconds.
	ttl      int
	lifetime int
}

type NewTextEffectOptions struct {
	// Text is the text to display.
	Text string
	// X is the x-coordinate of the center of the text.
	X float64
	// Y is the y-coordinate of the baseline of the text.
	Y float64
	// Color is the color of the text.
	Color color.Color
	// Face defaults to fonts.TTFNormalFont.
	Face font.Face
	// TTL is the time to live in milliseconds.
	TTL int
	// ZIndex is the z-index of the text effect.
	ZIndex int
}

func NewTextEffect(id string, opts NewTextEffectOptions) *TextEffect {
	clr := opts.Color
	if clr == nil {
		clr = color.White
	}
	face := opts.Face
	if face == nil {
		face = fonts.TTFNormalFont
	}

	baseObjectOpts := &NewBaseObjectOpts{
		ZIndex: opts.ZIndex,
	}

	return &TextEffect{
		BaseObject: NewBaseObject(id, baseObjectOpts),
		text:       opts.Text,
		x:          opts.X,
		y:          opts.Y,
		color:      clr,
		face:       face,
		ttl:        opts.TTL,
		lifetime:   opts.TTL,
	}
}

func (o *TextEffect) Update() error {
	factor := 60 / float64(ebiten.TPS())
	o.y -= 1 * factor
	if o.ttl > 0 {
		o.ttl -= 1000 / ebiten.TPS()
		if o.ttl <= 0 {
			if err := o.RemoveFromParent(); err != nil {
				return fmt.Errorf("failed to remove text effect from parent: %w", err)
			}
		}
	}
	return nil
}

func (o *TextEffect) Draw(screen *ebiten.Image) {
	bounds, _ := font.BoundString(o.face, o.text)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(o.x-float64(bounds.Max.X>>6)/2, o.y)
	op.ColorScale.ScaleWithColor(o.color)
	if o.lifetime > 0 {
		op.ColorScale.ScaleAlpha(float32(o.ttl) / float32(o.lifetime))
	}
	text.DrawWithOptions(screen, o.text, o.face, op)
}
