package scenes

import (
	"fmt"
	"image/color"

	"github.com/cbodonnell/twenty48/client/fonts"
	"github.com/cbodonnell/twenty48/client/objects"
	"github.com/cbodonnell/twenty48/pkg/game"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	ScreenWidth  = 540
	ScreenHeight = 680

	boardX = 20
	boardY = 160
)

var backgroundColor = color.NRGBA{R: 250, G: 248, B: 239, A: 255}

type GameScene struct {
	*BaseScene

	board         *objects.BoardObject
	onNewGame     func()
	onKeepPlaying func()

	ui              *ebitenui.UI
	showKeepPlaying bool
}

type GameSceneOptions struct {
	Size int
	// OnNewGame is called when the new game button is pressed.
	OnNewGame func()
	// OnKeepPlaying is called when the keep going button is pressed.
	OnKeepPlaying func()
}

var _ Scene = &GameScene{}

func NewGameScene(opts GameSceneOptions) (*GameScene, error) {
	size := opts.Size
	if size == 0 {
		size = game.DefaultSize
	}
	return &GameScene{
		BaseScene: NewBaseScene(objects.NewSortedZIndexObject("game-root")),
		board: objects.NewBoardObject("board", objects.NewBoardObjectOptions{
			X:    boardX,
			Y:    boardY,
			Size: size,
		}),
		onNewGame:     opts.OnNewGame,
		onKeepPlaying: opts.OnKeepPlaying,
	}, nil
}

// Actuator renders game state changes into this scene.
func (s *GameScene) Actuator() game.Actuator {
	return s.board
}

func (s *GameScene) Init() error {
	if s.GetRoot().GetChild(s.board.GetID()) == nil {
		if err := s.GetRoot().AddChild(s.board.GetID(), s.board); err != nil {
			return fmt.Errorf("failed to add board: %v", err)
		}
	}
	s.renderUI()
	return s.BaseScene.Init()
}

func (s *GameScene) renderUI() {
	buttonImage := &widget.ButtonImage{
		Idle:    image.NewNineSliceColor(color.NRGBA{R: 143, G: 122, B: 102, A: 255}),
		Hover:   image.NewNineSliceColor(color.NRGBA{R: 159, G: 138, B: 118, A: 255}),
		Pressed: image.NewNineSliceColor(color.NRGBA{R: 119, G: 101, B: 84, A: 255}),
	}
	fontFace := fonts.TTFSmallFont

	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(widget.Insets{
				Top:  105,
				Left: boardX,
			}))),
	)

	newButton := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(buttonImage),
			widget.ButtonOpts.Text(label, fontFace, &widget.ButtonTextColor{
				Idle:     color.NRGBA{R: 249, G: 246, B: 242, A: 255},
				Disabled: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
			}),
			widget.ButtonOpts.TextPadding(widget.Insets{
				Left:   20,
				Right:  20,
				Top:    8,
				Bottom: 8,
			}),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		)
	}

	rootContainer.AddChild(newButton("New Game", s.onNewGame))
	if s.showKeepPlaying {
		rootContainer.AddChild(newButton("Keep going", s.onKeepPlaying))
	}

	s.ui = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (s *GameScene) Update() error {
	if show := s.board.CanKeepPlaying(); show != s.showKeepPlaying {
		s.showKeepPlaying = show
		s.renderUI()
	}
	s.ui.Update()
	return s.BaseScene.Update()
}

func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.BaseScene.Draw(screen)
	s.ui.Draw(screen)
}
