package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cbodonnell/twenty48/pkg/game"
	"github.com/cbodonnell/twenty48/pkg/messages"
	"github.com/cbodonnell/twenty48/pkg/queue"
	"github.com/cbodonnell/twenty48/pkg/repositories"
	"github.com/cbodonnell/twenty48/pkg/repositories/models"
	"github.com/cbodonnell/twenty48/pkg/state"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
)

type testServer struct {
	*httptest.Server
	stateManager *state.InMemoryStateManager
	repository   *repositories.InMemoryRepository
	inputQueue   *queue.InMemoryQueue[game.InputEvent]
}

func newTestServer(t *testing.T, queueSize int) *testServer {
	ts := &testServer{
		stateManager: state.NewInMemoryStateManager(),
		repository:   repositories.NewInMemoryRepository(),
		inputQueue:   queue.NewInMemoryQueue[game.InputEvent](queueSize),
	}
	ts.Server = httptest.NewServer(NewRouter(NewAPIServerOptions{
		StateManager: ts.stateManager,
		Repository:   ts.repository,
		InputQueue:   ts.inputQueue,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *testServer) publish(t *testing.T, score int) *state.Snapshot {
	grid := game.NewGrid(game.DefaultSize)
	grid.InsertTile(game.NewTile(game.Position{X: 0, Y: 0}, 2))
	grid.InsertTile(game.NewTile(game.Position{X: 1, Y: 2}, 4))
	snapshot := &state.Snapshot{
		Timestamp: time.Now().UnixMilli(),
		State:     &game.Serialized{Grid: grid.Serialize(), Score: score},
	}
	require.NoError(t, ts.stateManager.Set(context.Background(), snapshot))
	return snapshot
}

func (ts *testServer) do(t *testing.T, method, path string) (*http.Response, string) {
	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestBoardEndpoints(t *testing.T) {
	ts := newTestServer(t, 4)

	resp, _ := ts.do(t, http.MethodGet, "/board")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	snapshot := ts.publish(t, 36)

	resp, body := ts.do(t, http.MethodGet, "/board")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	var board game.Board
	require.NoError(t, json.Unmarshal([]byte(body), &board))
	assert.Equal(t, game.Board{0: 2, 9: 4}, board)

	resp, body = ts.do(t, http.MethodGet, "/state")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decoded, err := game.DecodeSerialized([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, snapshot.State, decoded)

	resp, body = ts.do(t, http.MethodGet, "/board/table")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "(index)")
	assert.Contains(t, body, "score: 36")
}

func TestInputEndpoints(t *testing.T) {
	ts := newTestServer(t, 3)

	resp, _ := ts.do(t, http.MethodPost, "/moves/left")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodPost, "/restart")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodPost, "/keep-playing")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/moves/up")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodPost, "/moves/diagonal")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodGet, "/moves/left")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	events, err := ts.inputQueue.ReadAllMessages()
	require.NoError(t, err)
	assert.Equal(t, []game.InputEvent{
		game.MoveEvent(game.DirectionLeft),
		game.RestartEvent(),
		game.KeepPlayingEvent(),
	}, events)
}

func TestResultsEndpoint(t *testing.T) {
	ts := newTestServer(t, 1)
	ctx := context.Background()
	for _, score := range []int{100, 300, 200} {
		require.NoError(t, ts.repository.SaveGameResult(ctx, &models.GameResult{SessionID: uuid.New(), Score: score}))
	}

	resp, body := ts.do(t, http.MethodGet, "/results?limit=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var results []*models.GameResult
	require.NoError(t, json.Unmarshal([]byte(body), &results))
	require.Len(t, results, 2)
	assert.Equal(t, 300, results[0].Score)
	assert.Equal(t, 200, results[1].Score)

	resp, _ = ts.do(t, http.MethodGet, "/results?limit=nope")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = ts.do(t, http.MethodGet, "/results?limit=1000")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSnapshotStream(t *testing.T) {
	ts := newTestServer(t, 1)
	first := ts.publish(t, 4)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	read := func() *state.Snapshot {
		typ, b, err := conn.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, websocket.MessageBinary, typ)
		snapshot, err := messages.DeserializeSnapshot(b)
		require.NoError(t, err)
		return snapshot
	}

	assert.Equal(t, first, read())

	second := ts.publish(t, 8)
	assert.Equal(t, second, read())
}
