package handlers

import (
	"net/http"

	"github.com/cbodonnell/twenty48/pkg/log"
	"github.com/cbodonnell/twenty48/pkg/messages"
	"github.com/cbodonnell/twenty48/pkg/state"
	"nhooyr.io/websocket"
)

// HandleSnapshotStream sends every published snapshot to the client as a binary message.
func HandleSnapshotStream(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			log.Error("Failed to accept WebSocket connection: %v", err)
			return
		}
		defer conn.CloseNow()
		log.Debug("New WebSocket connection from %s", r.RemoteAddr)

		snapshots, unsubscribe := stateManager.Subscribe()
		defer unsubscribe()

		// the client never sends anything; CloseRead notices when it goes away
		ctx := conn.CloseRead(r.Context())
		for {
			select {
			case <-ctx.Done():
				log.Trace("Connection closed for %s", r.RemoteAddr)
				return
			case snapshot, ok := <-snapshots:
				if !ok {
					conn.Close(websocket.StatusGoingAway, "stream closed")
					return
				}
				b, err := messages.SerializeSnapshot(snapshot)
				if err != nil {
					log.Error("Failed to serialize snapshot: %v", err)
					continue
				}
				if err := conn.Write(ctx, websocket.MessageBinary, b); err != nil {
					log.Trace("Failed to write snapshot to %s: %v", r.RemoteAddr, err)
					return
				}
			}
		}
	}
}
