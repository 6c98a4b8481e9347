package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cbodonnell/twenty48/pkg/game"
	"github.com/cbodonnell/twenty48/pkg/log"
	"github.com/cbodonnell/twenty48/pkg/queue"
	"github.com/cbodonnell/twenty48/pkg/repositories"
	"github.com/cbodonnell/twenty48/pkg/state"
	"github.com/gorilla/mux"
)

const (
	DefaultResultsLimit = 10
	MaxResultsLimit     = 100
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}

// currentSnapshot writes an error response and returns nil when no snapshot is available.
func currentSnapshot(w http.ResponseWriter, r *http.Request, stateManager state.StateManager) *state.Snapshot {
	snapshot, err := stateManager.Get(r.Context())
	if err != nil {
		if errors.Is(err, state.ErrNoSnapshot) {
			http.Error(w, "Game not started", http.StatusServiceUnavailable)
			return nil
		}
		log.Error("failed to get snapshot: %v", err)
		http.Error(w, "Failed to get snapshot", http.StatusInternalServerError)
		return nil
	}
	return snapshot
}

func HandleGetBoard(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := currentSnapshot(w, r, stateManager)
		if snapshot == nil {
			return
		}
		writeJSON(w, game.ExtractBoard(snapshot.State))
	}
}

func HandleGetState(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := currentSnapshot(w, r, stateManager)
		if snapshot == nil {
			return
		}
		writeJSON(w, snapshot.State)
	}
}

func HandleGetBoardTable(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := currentSnapshot(w, r, stateManager)
		if snapshot == nil {
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := game.PrintBoard(w, snapshot.State); err != nil {
			log.Error("failed to print board: %v", err)
		}
	}
}

func enqueue(w http.ResponseWriter, inputQueue queue.Queue[game.InputEvent], event game.InputEvent) {
	if err := inputQueue.Enqueue(event); err != nil {
		if errors.Is(err, queue.ErrQueueFull) {
			http.Error(w, "Input queue is full", http.StatusServiceUnavailable)
			return
		}
		log.Error("failed to enqueue %s event: %v", event.Type, err)
		http.Error(w, "Failed to enqueue event", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func HandleMove(inputQueue queue.Queue[game.InputEvent]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dir, err := game.ParseDirection(mux.Vars(r)["direction"])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		enqueue(w, inputQueue, game.MoveEvent(dir))
	}
}

func HandleRestart(inputQueue queue.Queue[game.InputEvent]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enqueue(w, inputQueue, game.RestartEvent())
	}
}

func HandleKeepPlaying(inputQueue queue.Queue[game.InputEvent]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		enqueue(w, inputQueue, game.KeepPlayingEvent())
	}
}

func HandleListResults(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := DefaultResultsLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > MaxResultsLimit {
				http.Error(w, "limit must be between 1 and 100", http.StatusBadRequest)
				return
			}
			limit = n
		}

		results, err := repository.ListGameResults(r.Context(), limit)
		if err != nil {
			log.Error("failed to list results: %v", err)
			http.Error(w, "Failed to list results", http.StatusInternalServerError)
			return
		}
		writeJSON(w, results)
	}
}
