package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/twenty48/pkg/game"
	"github.com/cbodonnell/twenty48/pkg/log"
	"github.com/cbodonnell/twenty48/pkg/messages"
	"github.com/cbodonnell/twenty48/pkg/repositories"
	"github.com/cbodonnell/twenty48/pkg/repositories/models"
	"github.com/cbodonnell/twenty48/pkg/state"
	"github.com/cbodonnell/twenty48/pkg/workers"
	"github.com/google/uuid"
)

// Manager serves the game from an in-memory cache and hands every write to the save worker.
type Manager struct {
	lock      sync.RWMutex
	saveChan  chan<- workers.SaveRequest
	bestScore int
	gameState *game.Serialized
	sessionID uuid.UUID
	now       func() time.Time
}

var _ game.StorageManager = &Manager{}

type NewManagerOptions struct {
	Repository repositories.Repository
	SaveChan   chan<- workers.SaveRequest
}

// NewManager loads the best score and any game in progress from the repository.
func NewManager(ctx context.Context, opts NewManagerOptions) (*Manager, error) {
	bestScore, err := opts.Repository.LoadBestScore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load best score: %v", err)
	}

	m := &Manager{
		saveChan:  opts.SaveChan,
		bestScore: bestScore,
		sessionID: uuid.New(),
		now:       time.Now,
	}

	stored, err := opts.Repository.LoadGameState(ctx)
	switch {
	case repositories.IsNotFound(err):
		log.Debug("No stored game, starting session %s", m.sessionID)
	case err != nil:
		return nil, fmt.Errorf("failed to load game state: %v", err)
	default:
		snapshot, err := messages.DeserializeSnapshot(stored.Data)
		if err != nil {
			log.Warn("Discarding unreadable game state: %v", err)
			break
		}
		m.gameState = snapshot.State
		m.sessionID = stored.SessionID
		log.Debug("Loaded game for session %s with score %d", m.sessionID, m.gameState.Score)
	}

	return m, nil
}

// SessionID identifies the current game. A new id is assigned whenever the game state is cleared.
func (m *Manager) SessionID() uuid.UUID {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.sessionID
}

func (m *Manager) BestScore() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.bestScore
}

func (m *Manager) SetBestScore(score int) error {
	m.lock.Lock()
	m.bestScore = score
	m.lock.Unlock()

	m.saveChan <- workers.SaveRequest{
		Type:      workers.SaveRequestBestScore,
		BestScore: score,
	}
	return nil
}

func (m *Manager) GameState() (*game.Serialized, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.gameState.Copy(), nil
}

func (m *Manager) SetGameState(s *game.Serialized) error {
	m.lock.Lock()
	m.gameState = s.Copy()
	snapshot := &state.Snapshot{
		Timestamp: m.now().UnixMilli(),
		BestScore: m.bestScore,
		State:     m.gameState,
	}
	sessionID := m.sessionID
	m.lock.Unlock()

	data, err := messages.SerializeSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode game state: %v", err)
	}

	m.saveChan <- workers.SaveRequest{
		Type: workers.SaveRequestGameState,
		GameState: &models.GameState{
			SessionID: sessionID,
			Timestamp: snapshot.Timestamp,
			Data:      data,
		},
	}
	return nil
}

func (m *Manager) ClearGameState() error {
	m.lock.Lock()
	m.gameState = nil
	m.sessionID = uuid.New()
	m.lock.Unlock()

	m.saveChan <- workers.SaveRequest{
		Type: workers.SaveRequestClearGameState,
	}
	return nil
}

func (m *Manager) RecordResult(result *game.Result) error {
	if result == nil {
		return fmt.Errorf("result is nil")
	}

	m.saveChan <- workers.SaveRequest{
		Type: workers.SaveRequestGameResult,
		Result: &models.GameResult{
			SessionID: m.SessionID(),
			Timestamp: m.now().UnixMilli(),
			Score:     result.Score,
			MaxTile:   result.MaxTile,
			Won:       result.Won,
			Over:      result.Over,
		},
	}
	return nil
}
