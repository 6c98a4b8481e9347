package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/twenty48/pkg/log"
	"github.com/cbodonnell/twenty48/pkg/repositories"
	"github.com/cbodonnell/twenty48/pkg/repositories/models"
)

const (
	// DefaultSaveInterval is how often a pending game state is written.
	DefaultSaveInterval = 2 * time.Second
	shutdownTimeout     = 5 * time.Second
)

type SaveRequestType int

const (
	SaveRequestBestScore SaveRequestType = iota
	SaveRequestGameState
	SaveRequestClearGameState
	SaveRequestGameResult
)

type SaveRequest struct {
	Type      SaveRequestType
	BestScore int
	GameState *models.GameState
	Result    *models.GameResult
}

type SaveWorker struct {
	repository repositories.Repository
	saveChan   <-chan SaveRequest
	interval   time.Duration

	pending *models.GameState
	done    chan struct{}
}

type NewSaveWorkerOptions struct {
	Repository repositories.Repository
	SaveChan   <-chan SaveRequest
	Interval   time.Duration
}

// NewSaveWorker creates a new SaveWorker.
// The worker writes best scores, results and clears as they arrive
// and writes only the latest game state once per interval.
func NewSaveWorker(opts NewSaveWorkerOptions) *SaveWorker {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultSaveInterval
	}
	return &SaveWorker{
		repository: opts.Repository,
		saveChan:   opts.SaveChan,
		interval:   interval,
		done:       make(chan struct{}),
	}
}

// Start runs until ctx is cancelled, then drains queued requests and flushes the pending game state.
func (w *SaveWorker) Start(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.shutdown()
			return
		case req := <-w.saveChan:
			w.handle(ctx, req)
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

// Done is closed once Start has returned.
func (w *SaveWorker) Done() <-chan struct{} {
	return w.done
}

func (w *SaveWorker) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for {
		select {
		case req := <-w.saveChan:
			w.handle(ctx, req)
		default:
			w.flush(ctx)
			log.Debug("Save worker stopped")
			return
		}
	}
}

func (w *SaveWorker) handle(ctx context.Context, req SaveRequest) {
	switch req.Type {
	case SaveRequestBestScore:
		if err := w.repository.SaveBestScore(ctx, req.BestScore); err != nil {
			log.Error("Failed to save best score: %v", err)
		}
	case SaveRequestGameState:
		w.pending = req.GameState
	case SaveRequestClearGameState:
		w.pending = nil
		if err := w.repository.ClearGameState(ctx); err != nil {
			log.Error("Failed to clear game state: %v", err)
		}
	case SaveRequestGameResult:
		if err := w.repository.SaveGameResult(ctx, req.Result); err != nil {
			log.Error("Failed to save game result: %v", err)
		}
	default:
		log.Warn("Unknown save request type: %d", req.Type)
	}
}

func (w *SaveWorker) flush(ctx context.Context) {
	if w.pending == nil {
		return
	}
	if err := w.repository.SaveGameState(ctx, w.pending); err != nil {
		log.Error("Failed to save game state: %v", err)
		return
	}
	log.Trace("Saved game state for session %s", w.pending.SessionID)
	w.pending = nil
}
