package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/cbodonnell/twenty48/pkg/game"
	"github.com/cbodonnell/twenty48/pkg/log"
	"github.com/cbodonnell/twenty48/pkg/messages"
	"github.com/cbodonnell/twenty48/pkg/version"
	"nhooyr.io/websocket"
)

func main() {
	addr := flag.String("addr", "ws://localhost:8080/ws", "Debug API stream address")
	once := flag.Bool("once", false, "Exit after printing the first board")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stderr, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Debug("Starting board watcher version %s", version.Get())

	os.Exit(run(*addr, *once))
}

// run prints snapshots from addr until the stream closes and returns the process exit code.
func run(addr string, once bool) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	conn, _, err := websocket.Dial(ctx, addr, nil)
	if err != nil {
		log.Error("Failed to dial %s: %v", addr, err)
		return 1
	}
	defer conn.Close(websocket.StatusNormalClosure, "")
	conn.SetReadLimit(messages.MessageBufferSize * 4)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() != nil || websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return 0
			}
			log.Error("Failed to read snapshot: %v", err)
			return 1
		}

		snapshot, err := messages.DeserializeSnapshot(data)
		if err != nil {
			log.Warn("Failed to deserialize snapshot: %v", err)
			continue
		}

		fmt.Fprintf(os.Stdout, "best: %d\n", snapshot.BestScore)
		if err := game.PrintBoard(os.Stdout, snapshot.State); err != nil {
			log.Error("Failed to print board: %v", err)
			return 1
		}
		if once {
			return 0
		}
	}
}
