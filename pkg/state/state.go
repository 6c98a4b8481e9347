package state

import (
	"context"

	"github.com/cbodonnell/twenty48/pkg/game"
)

// Snapshot is the latest published view of the game.
type Snapshot struct {
	// Timestamp is the publish time in milliseconds since the epoch.
	Timestamp int64
	BestScore int
	State     *game.Serialized
}

// Copy returns a deep copy of the snapshot.
func (s *Snapshot) Copy() *Snapshot {
	if s == nil {
		return nil
	}
	return &Snapshot{
		Timestamp: s.Timestamp,
		BestScore: s.BestScore,
		State:     s.State.Copy(),
	}
}

// StateManager provides shared access to the latest game snapshot.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the current snapshot.
	Get(ctx context.Context) (*Snapshot, error)
	// Set sets the current snapshot.
	Set(ctx context.Context, snapshot *Snapshot) error
	// Subscribe returns a channel receiving each new snapshot and a function that ends the subscription.
	Subscribe() (<-chan *Snapshot, func())
}
