package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/twenty48/pkg/api/handlers"
	"github.com/cbodonnell/twenty48/pkg/api/middleware"
	"github.com/cbodonnell/twenty48/pkg/game"
	"github.com/cbodonnell/twenty48/pkg/log"
	"github.com/cbodonnell/twenty48/pkg/queue"
	"github.com/cbodonnell/twenty48/pkg/repositories"
	"github.com/cbodonnell/twenty48/pkg/state"
	"github.com/gorilla/mux"
)

// APIServer exposes the running game for debugging.
type APIServer struct {
	server *http.Server
}

type NewAPIServerOptions struct {
	Port         int
	StateManager state.StateManager
	Repository   repositories.Repository
	InputQueue   queue.Queue[game.InputEvent]
}

// NewRouter registers the debug API routes.
func NewRouter(opts NewAPIServerOptions) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.NewLoggingMiddleware(), middleware.NewCORSMiddleware())

	r.HandleFunc("/board", handlers.HandleGetBoard(opts.StateManager)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/board/table", handlers.HandleGetBoardTable(opts.StateManager)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/state", handlers.HandleGetState(opts.StateManager)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/moves/{direction}", handlers.HandleMove(opts.InputQueue)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/restart", handlers.HandleRestart(opts.InputQueue)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/keep-playing", handlers.HandleKeepPlaying(opts.InputQueue)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/results", handlers.HandleListResults(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/ws", handlers.HandleSnapshotStream(opts.StateManager)).Methods(http.MethodGet)

	return r
}

// NewAPIServer creates a new http.Server for handling debug API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", opts.Port),
		Handler: NewRouter(opts),
	}
	return &APIServer{
		server: server,
	}
}

// Start starts the APIServer
func (s *APIServer) Start() {
	log.Info("Debug API server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("Debug API server closed")
			return
		}
		log.Error("Debug API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
