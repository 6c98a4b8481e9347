package messages

import (
	"testing"

	"github.com/cbodonnell/twenty48/pkg/game"
	"github.com/cbodonnell/twenty48/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeSnapshot(t *testing.T) {
	grid := game.NewGrid(game.DefaultSize)
	grid.InsertTile(game.NewTile(game.Position{X: 0, Y: 0}, 2))
	grid.InsertTile(game.NewTile(game.Position{X: 3, Y: 1}, 1024))
	grid.InsertTile(game.NewTile(game.Position{X: 2, Y: 3}, 4))

	tests := []struct {
		name     string
		snapshot *state.Snapshot
	}{
		{
			name: "game in progress",
			snapshot: &state.Snapshot{
				Timestamp: 1718000000000,
				BestScore: 5000,
				State:     &game.Serialized{Grid: grid.Serialize(), Score: 1200},
			},
		},
		{
			name: "won and kept playing",
			snapshot: &state.Snapshot{
				Timestamp: 1,
				State: &game.Serialized{
					Grid:        grid.Serialize(),
					Score:       30000,
					Won:         true,
					KeepPlaying: true,
				},
			},
		},
		{
			name: "over on a small board",
			snapshot: &state.Snapshot{
				State: &game.Serialized{Grid: game.NewGrid(2).Serialize(), Over: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := SerializeSnapshot(tt.snapshot)
			require.NoError(t, err)

			got, err := DeserializeSnapshot(b)
			require.NoError(t, err)
			assert.Equal(t, tt.snapshot, got)
			assert.Equal(t, game.ExtractBoard(tt.snapshot.State), game.ExtractBoard(got.State))
		})
	}
}

func TestSerializeSnapshot_Nil(t *testing.T) {
	_, err := SerializeSnapshot(nil)
	assert.Error(t, err)
	_, err = SerializeSnapshot(&state.Snapshot{})
	assert.Error(t, err)
}

func TestDeserializeSnapshot_Invalid(t *testing.T) {
	_, err := DeserializeSnapshot([]byte("not zstd"))
	assert.Error(t, err)

	compressed, err := Compress([]byte{1, 2})
	require.NoError(t, err)
	_, err = DeserializeSnapshot(compressed)
	assert.Error(t, err)
}

func TestCompress(t *testing.T) {
	b, err := Compress([]byte("2048 2048 2048 2048"))
	require.NoError(t, err)
	got, err := Decompress(b)
	require.NoError(t, err)
	assert.Equal(t, "2048 2048 2048 2048", string(got))
}
