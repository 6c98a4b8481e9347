package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	clientgame "github.com/cbodonnell/twenty48/client/game"
	"github.com/cbodonnell/twenty48/client/input"
	"github.com/cbodonnell/twenty48/client/scenes"
	"github.com/cbodonnell/twenty48/pkg/api"
	"github.com/cbodonnell/twenty48/pkg/app"
	"github.com/cbodonnell/twenty48/pkg/game"
	"github.com/cbodonnell/twenty48/pkg/log"
	"github.com/cbodonnell/twenty48/pkg/queue"
	"github.com/cbodonnell/twenty48/pkg/repositories"
	"github.com/cbodonnell/twenty48/pkg/state"
	"github.com/cbodonnell/twenty48/pkg/storage"
	"github.com/cbodonnell/twenty48/pkg/version"
	"github.com/cbodonnell/twenty48/pkg/workers"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	DefaultDatabaseURL = "sqlite://twenty48.db"
	inputQueueSize     = 64
	saveChannelSize    = 100
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level")
	debug := flag.Bool("debug", false, "Enable the debug overlay and the debug API")
	debugPort := flag.Int("debug-port", 8080, "Debug API port")
	seed := flag.Int64("seed", 0, "Tile spawn seed, 0 for a time based seed")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting twenty48 version %s", version.Get())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	databaseURL := os.Getenv("TWENTY48_DATABASE_URL")
	if databaseURL == "" {
		databaseURL = DefaultDatabaseURL
	}
	repository, err := repositories.NewRepository(ctx, databaseURL)
	if err != nil {
		panic(fmt.Sprintf("Failed to open repository: %v", err))
	}
	defer repository.Close(context.Background())

	saveChan := make(chan workers.SaveRequest, saveChannelSize)
	saveWorker := workers.NewSaveWorker(workers.NewSaveWorkerOptions{
		Repository: repository,
		SaveChan:   saveChan,
		Interval:   workers.DefaultSaveInterval,
	})
	go saveWorker.Start(ctx)

	storageManager, err := storage.NewManager(ctx, storage.NewManagerOptions{
		Repository: repository,
		SaveChan:   saveChan,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create storage manager: %v", err))
	}

	inputQueue := queue.NewInMemoryQueue[game.InputEvent](inputQueueSize)
	inputManager := input.NewKeyboardInputManager(input.NewKeyboardInputManagerOptions{
		Events: inputQueue,
	})
	stateManager := state.NewInMemoryStateManager()

	emit := func(event game.InputEvent) func() {
		return func() {
			if err := inputManager.Emit(event); err != nil {
				log.Error("Failed to emit %s event: %v", event.Type, err)
			}
		}
	}
	gameScene, err := scenes.NewGameScene(scenes.GameSceneOptions{
		Size:          game.DefaultSize,
		OnNewGame:     emit(game.RestartEvent()),
		OnKeepPlaying: emit(game.KeepPlayingEvent()),
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game scene: %v", err))
	}

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}

	a := app.NewApp(app.NewAppOptions{
		Factory: func() (*game.GameManager, error) {
			return game.NewGameManager(game.NewGameManagerOptions{
				Size:         game.DefaultSize,
				InputManager: inputManager,
				Actuator: game.MultiActuator{
					gameScene.Actuator(),
					state.NewActuator(stateManager),
				},
				StorageManager: storageManager,
				Rand:           rng,
			})
		},
	})

	if *debug {
		apiServer := api.NewAPIServer(api.NewAPIServerOptions{
			Port:         *debugPort,
			StateManager: stateManager,
			Repository:   repository,
			InputQueue:   inputQueue,
		})
		go apiServer.Start()
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer stopCancel()
			if err := apiServer.Stop(stopCtx); err != nil {
				log.Error("Failed to stop debug API server: %v", err)
			}
		}()
	}

	g, err := clientgame.NewGame(clientgame.NewGameOptions{
		Debug: *debug,
		App:   a,
		Scene: gameScene,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game: %v", err))
	}

	ebiten.SetWindowSize(scenes.ScreenWidth, scenes.ScreenHeight)
	ebiten.SetWindowTitle("2048")
	runErr := ebiten.RunGame(g)

	cancel()
	<-saveWorker.Done()

	if runErr != nil {
		panic(fmt.Sprintf("Failed to run game: %v", runErr))
	}
	log.Info("Goodbye")
}
