package state

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/twenty48/pkg/game"
)

// Actuator publishes every actuation to a StateManager.
type Actuator struct {
	stateManager StateManager
	now          func() time.Time
}

var _ game.Actuator = &Actuator{}

func NewActuator(stateManager StateManager) *Actuator {
	return &Actuator{
		stateManager: stateManager,
		now:          time.Now,
	}
}

func (a *Actuator) Actuate(grid *game.Grid, metadata game.Metadata) error {
	snapshot := &Snapshot{
		Timestamp: a.now().UnixMilli(),
		BestScore: metadata.BestScore,
		State: &game.Serialized{
			Grid:        grid.Serialize(),
			Score:       metadata.Score,
			Over:        metadata.Over,
			Won:         metadata.Won,
			KeepPlaying: metadata.KeepPlaying,
		},
	}
	if err := a.stateManager.Set(context.Background(), snapshot); err != nil {
		return fmt.Errorf("failed to publish snapshot: %v", err)
	}
	return nil
}

func (a *Actuator) ContinueGame() {}
