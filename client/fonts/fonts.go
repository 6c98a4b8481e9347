package fonts

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

func init() {
	if err := loadFonts(); err != nil {
		panic(fmt.Sprintf("Failed to load fonts: %v", err))
	}
}

var MPlusNormalFont font.Face

var TTFSmallFont font.Face
var TTFNormalFont font.Face
var TTFLargeFont font.Face

// Tile faces shrink as the number of digits grows.
var TileFonts map[int]font.Face

const dpi = 72

func loadFonts() error {
	tt, err := opentype.Parse(fonts.MPlus1pRegular_ttf)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	MPlusNormalFont, err = opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    24,
		DPI:     dpi,
		Hinting: font.HintingVertical,
	})
	if err != nil {
		return fmt.Errorf("failed to create font face: %v", err)
	}

	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	TTFSmallFont = newTTFFace(regular, 16)
	TTFNormalFont = newTTFFace(regular, 24)

	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse bold font: %v", err)
	}
	TTFLargeFont = newTTFFace(bold, 48)
	TileFonts = map[int]font.Face{
		1: newTTFFace(bold, 48),
		2: newTTFFace(bold, 48),
		3: newTTFFace(bold, 40),
		4: newTTFFace(bold, 32),
		5: newTTFFace(bold, 26),
	}

	return nil
}

func newTTFFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
}

// TileFont returns the face for a tile showing the given number of digits.
func TileFont(digits int) font.Face {
	if f, ok := TileFonts[digits]; ok {
		return f
	}
	return TileFonts[5]
}
