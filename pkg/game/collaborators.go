package game

type InputEventType int

const (
	InputEventMove InputEventType = iota
	InputEventRestart
	InputEventKeepPlaying
)

func (t InputEventType) String() string {
	switch t {
	case InputEventMove:
		return "move"
	case InputEventRestart:
		return "restart"
	case InputEventKeepPlaying:
		return "keepPlaying"
	}
	return "unknown"
}

// InputEvent is a player intent produced by an InputManager.
type InputEvent struct {
	Type InputEventType `json:"type"`
	// Direction is only meaningful for move events.
	Direction Direction `json:"direction"`
}

func MoveEvent(dir Direction) InputEvent {
	return InputEvent{Type: InputEventMove, Direction: dir}
}

func RestartEvent() InputEvent {
	return InputEvent{Type: InputEventRestart}
}

func KeepPlayingEvent() InputEvent {
	return InputEvent{Type: InputEventKeepPlaying}
}

// InputManager is the source of player input.
type InputManager interface {
	// ReadEvents returns all events received since the previous call.
	ReadEvents() ([]InputEvent, error)
}

// Metadata accompanies every actuation.
type Metadata struct {
	Score       int
	Over        bool
	Won         bool
	KeepPlaying bool
	BestScore   int
	Terminated  bool
}

// Actuator renders the game.
type Actuator interface {
	// Actuate is called with the current grid after every state change.
	Actuate(grid *Grid, metadata Metadata) error
	// ContinueGame clears any game over or win message.
	ContinueGame()
}

// Result summarises a finished or abandoned game.
type Result struct {
	Score   int
	MaxTile int
	Won     bool
	Over    bool
}

// StorageManager persists the best score and the game in progress.
type StorageManager interface {
	BestScore() int
	SetBestScore(score int) error
	// GameState returns the stored game, or nil when there is none.
	GameState() (*Serialized, error)
	SetGameState(state *Serialized) error
	ClearGameState() error
	RecordResult(result *Result) error
}

// MultiActuator forwards every call to each of its actuators in order.
type MultiActuator []Actuator

func (m MultiActuator) Actuate(grid *Grid, metadata Metadata) error {
	for _, a := range m {
		if err := a.Actuate(grid, metadata); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiActuator) ContinueGame() {
	for _, a := range m {
		a.ContinueGame()
	}
}
