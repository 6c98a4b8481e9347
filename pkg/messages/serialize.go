package messages

import (
	"fmt"

	snapshotfb "github.com/cbodonnell/twenty48/flatbuffers/snapshot"
	"github.com/cbodonnell/twenty48/pkg/game"
	"github.com/cbodonnell/twenty48/pkg/state"
	flatbuffers "github.com/google/flatbuffers/go"
)

// SerializeSnapshot encodes a snapshot as a compressed flatbuffer.
func SerializeSnapshot(s *state.Snapshot) ([]byte, error) {
	b, err := SerializeSnapshotFlatbuffer(s)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %v", err)
	}
	return Compress(b)
}

// DeserializeSnapshot decodes the output of SerializeSnapshot.
func DeserializeSnapshot(data []byte) (*state.Snapshot, error) {
	b, err := Decompress(data)
	if err != nil {
		return nil, err
	}

	s, err := DeserializeSnapshotFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize snapshot: %v", err)
	}
	return s, nil
}

func SerializeSnapshotFlatbuffer(s *state.Snapshot) ([]byte, error) {
	if s == nil || s.State == nil {
		return nil, fmt.Errorf("snapshot is nil")
	}
	grid := s.State.Grid

	cells := make([]uint32, grid.Size*grid.Size)
	for x := 0; x < grid.Size && x < len(grid.Cells); x++ {
		for y := 0; y < grid.Size && y < len(grid.Cells[x]); y++ {
			if v, ok := grid.Cells[x][y].Value(); ok {
				cells[x*grid.Size+y] = uint32(v)
			}
		}
	}

	builder := flatbuffers.NewBuilder(0)

	snapshotfb.SnapshotStartCellsVector(builder, len(cells))
	for i := len(cells) - 1; i >= 0; i-- {
		builder.PrependUint32(cells[i])
	}
	cellsOffset := builder.EndVector(len(cells))

	snapshotfb.SnapshotStart(builder)
	snapshotfb.SnapshotAddTimestamp(builder, s.Timestamp)
	snapshotfb.SnapshotAddSize(builder, int32(grid.Size))
	snapshotfb.SnapshotAddScore(builder, int32(s.State.Score))
	snapshotfb.SnapshotAddBestScore(builder, int32(s.BestScore))
	snapshotfb.SnapshotAddOver(builder, s.State.Over)
	snapshotfb.SnapshotAddWon(builder, s.State.Won)
	snapshotfb.SnapshotAddKeepPlaying(builder, s.State.KeepPlaying)
	snapshotfb.SnapshotAddCells(builder, cellsOffset)
	snapshotOffset := snapshotfb.SnapshotEnd(builder)
	snapshotfb.FinishSnapshotBuffer(builder, snapshotOffset)

	return builder.FinishedBytes(), nil
}

func DeserializeSnapshotFlatbuffer(b []byte) (s *state.Snapshot, err error) {
	// the generated accessors panic on truncated buffers
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed snapshot: %v", r)
		}
	}()

	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("buffer too short")
	}

	snapshotFlatbuffer := snapshotfb.GetRootAsSnapshot(b, 0)
	size := int(snapshotFlatbuffer.Size())
	if size < 0 {
		return nil, fmt.Errorf("invalid size %d", size)
	}
	if snapshotFlatbuffer.CellsLength() != size*size {
		return nil, fmt.Errorf("expected %d cells, got %d", size*size, snapshotFlatbuffer.CellsLength())
	}

	cells := make([][]game.Cell, size)
	for x := 0; x < size; x++ {
		cells[x] = make([]game.Cell, size)
		for y := 0; y < size; y++ {
			cells[x][y] = game.OccupiedCell(int(snapshotFlatbuffer.Cells(x*size + y)))
		}
	}

	return &state.Snapshot{
		Timestamp: snapshotFlatbuffer.Timestamp(),
		BestScore: int(snapshotFlatbuffer.BestScore()),
		State: &game.Serialized{
			Grid: game.SerializedGrid{
				Size:  size,
				Cells: cells,
			},
			Score:       int(snapshotFlatbuffer.Score()),
			Over:        snapshotFlatbuffer.Over(),
			Won:         snapshotFlatbuffer.Won(),
			KeepPlaying: snapshotFlatbuffer.KeepPlaying(),
		},
	}, nil
}
