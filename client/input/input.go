package input

import (
	"fmt"
	"image"
	"math"

	"github.com/cbodonnell/twenty48/pkg/game"
	"github.com/cbodonnell/twenty48/pkg/queue"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// SwipeThreshold is the minimum drag distance in pixels that counts as a move.
const SwipeThreshold = 10

var keyDirections = map[ebiten.Key]game.Direction{
	ebiten.KeyArrowUp:    game.DirectionUp,
	ebiten.KeyArrowRight: game.DirectionRight,
	ebiten.KeyArrowDown:  game.DirectionDown,
	ebiten.KeyArrowLeft:  game.DirectionLeft,
	// vim
	ebiten.KeyK: game.DirectionUp,
	ebiten.KeyL: game.DirectionRight,
	ebiten.KeyJ: game.DirectionDown,
	ebiten.KeyH: game.DirectionLeft,
	ebiten.KeyW: game.DirectionUp,
	ebiten.KeyD: game.DirectionRight,
	ebiten.KeyS: game.DirectionDown,
	ebiten.KeyA: game.DirectionLeft,
}

// KeyboardInputManager reads keyboard, touch and mouse input, plus events enqueued by other components.
type KeyboardInputManager struct {
	events      queue.Queue[game.InputEvent]
	touchStarts map[ebiten.TouchID]image.Point
	mouseStart  *image.Point
}

var _ game.InputManager = &KeyboardInputManager{}

type NewKeyboardInputManagerOptions struct {
	// Events receives input from outside the render loop, such as UI buttons and the debug API.
	Events queue.Queue[game.InputEvent]
}

func NewKeyboardInputManager(opts NewKeyboardInputManagerOptions) *KeyboardInputManager {
	events := opts.Events
	if events == nil {
		events = queue.NewInMemoryQueue[game.InputEvent](64)
	}
	return &KeyboardInputManager{
		events:      events,
		touchStarts: make(map[ebiten.TouchID]image.Point),
	}
}

// Emit enqueues an event to be returned by the next ReadEvents.
func (m *KeyboardInputManager) Emit(event game.InputEvent) error {
	return m.events.Enqueue(event)
}

// ReadEvents must be called once per tick from the render loop.
func (m *KeyboardInputManager) ReadEvents() ([]game.InputEvent, error) {
	events := m.readKeys()
	events = append(events, m.readTouches()...)
	events = append(events, m.readMouse()...)

	queued, err := m.events.ReadAllMessages()
	if err != nil {
		return nil, fmt.Errorf("failed to read queued events: %v", err)
	}
	return append(events, queued...), nil
}

func (m *KeyboardInputManager) readKeys() []game.InputEvent {
	var events []game.InputEvent
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		if dir, ok := keyDirections[key]; ok {
			events = append(events, game.MoveEvent(dir))
			continue
		}
		switch key {
		case ebiten.KeyR:
			events = append(events, game.RestartEvent())
		case ebiten.KeyC:
			events = append(events, game.KeepPlayingEvent())
		}
	}
	return events
}

func (m *KeyboardInputManager) readTouches() []game.InputEvent {
	var events []game.InputEvent
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		m.touchStarts[id] = image.Pt(x, y)
	}
	for id, start := range m.touchStarts {
		if !inpututil.IsTouchJustReleased(id) {
			continue
		}
		delete(m.touchStarts, id)
		x, y := inpututil.TouchPositionInPreviousTick(id)
		if dir, ok := SwipeDirection(start, image.Pt(x, y)); ok {
			events = append(events, game.MoveEvent(dir))
		}
	}
	return events
}

func (m *KeyboardInputManager) readMouse() []game.InputEvent {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		start := image.Pt(x, y)
		m.mouseStart = &start
		return nil
	}
	if m.mouseStart == nil || !inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		return nil
	}
	start := *m.mouseStart
	m.mouseStart = nil
	x, y := ebiten.CursorPosition()
	if dir, ok := SwipeDirection(start, image.Pt(x, y)); ok {
		return []game.InputEvent{game.MoveEvent(dir)}
	}
	return nil
}

// SwipeDirection returns the direction of the dominant axis of the drag from start to end.
// Drags shorter than SwipeThreshold on both axes are not swipes.
func SwipeDirection(start, end image.Point) (game.Direction, bool) {
	dx := float64(end.X - start.X)
	dy := float64(end.Y - start.Y)
	if math.Max(math.Abs(dx), math.Abs(dy)) <= SwipeThreshold {
		return 0, false
	}
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return game.DirectionRight, true
		}
		return game.DirectionLeft, true
	}
	if dy > 0 {
		return game.DirectionDown, true
	}
	return game.DirectionUp, true
}
