package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/cbodonnell/twenty48/pkg/repositories/models"
)

// InMemoryRepository keeps everything in process memory. Nothing survives a restart.
type InMemoryRepository struct {
	lock      sync.RWMutex
	bestScore int
	gameState *models.GameState
	results   []*models.GameResult
	nextID    int64
}

var _ Repository = &InMemoryRepository{}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		nextID: 1,
	}
}

func (r *InMemoryRepository) Close(ctx context.Context) error {
	return nil
}

func (r *InMemoryRepository) LoadBestScore(ctx context.Context) (int, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.bestScore, nil
}

func (r *InMemoryRepository) SaveBestScore(ctx context.Context, score int) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.bestScore = score
	return nil
}

func (r *InMemoryRepository) LoadGameState(ctx context.Context) (*models.GameState, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.gameState == nil {
		return nil, &ErrNotFound{}
	}
	return copyGameState(r.gameState), nil
}

func (r *InMemoryRepository) SaveGameState(ctx context.Context, gameState *models.GameState) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.gameState = copyGameState(gameState)
	return nil
}

func (r *InMemoryRepository) ClearGameState(ctx context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.gameState = nil
	return nil
}

func (r *InMemoryRepository) SaveGameResult(ctx context.Context, result *models.GameResult) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	result.ID = r.nextID
	r.nextID++
	stored := *result
	r.results = append(r.results, &stored)
	return nil
}

func (r *InMemoryRepository) ListGameResults(ctx context.Context, limit int) ([]*models.GameResult, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	results := make([]*models.GameResult, 0, len(r.results))
	for _, result := range r.results {
		cp := *result
		results = append(results, &cp)
	}
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Timestamp != b.Timestamp {
			return a.Timestamp > b.Timestamp
		}
		return a.ID > b.ID
	})
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func copyGameState(gameState *models.GameState) *models.GameState {
	cp := *gameState
	cp.Data = append([]byte(nil), gameState.Data...)
	return &cp
}
