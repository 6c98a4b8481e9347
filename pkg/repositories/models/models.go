package models

import "github.com/google/uuid"

// GameState is the stored game in progress. Data holds an encoded snapshot.
type GameState struct {
	SessionID uuid.UUID `json:"session_id"`
	Timestamp int64     `json:"timestamp"`
	Data      []byte    `json:"-"`
}

type GameResult struct {
	ID        int64     `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Timestamp int64     `json:"timestamp"`
	Score     int       `json:"score"`
	MaxTile   int       `json:"max_tile"`
	Won       bool      `json:"won"`
	Over      bool      `json:"over"`
}
