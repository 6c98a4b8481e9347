package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cbodonnell/twenty48/pkg/repositories/models"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = &SQLiteRepository{}

func NewSQLiteRepository(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// sqlite serializes writers
	db.SetMaxOpenConns(1)

	scripts, err := readMigrations("sqlite")
	if err != nil {
		db.Close()
		return nil, err
	}
	for i, migration := range scripts {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) LoadBestScore(ctx context.Context) (int, error) {
	q := `
	SELECT score FROM best_score WHERE id = 1;
	`
	var score int
	if err := r.db.QueryRowContext(ctx, q).Scan(&score); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to scan best score: %v", err)
	}
	return score, nil
}

func (r *SQLiteRepository) SaveBestScore(ctx context.Context, score int) error {
	q := `
	INSERT OR REPLACE INTO best_score (id, score, updated_at)
	VALUES (1, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, score, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save best score: %v", err)
	}
	return nil
}

func (r *SQLiteRepository) LoadGameState(ctx context.Context) (*models.GameState, error) {
	q := `
	SELECT session_id, timestamp, data FROM game_state WHERE id = 1;
	`
	var sessionID string
	gameState := &models.GameState{}
	if err := r.db.QueryRowContext(ctx, q).Scan(&sessionID, &gameState.Timestamp, &gameState.Data); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan game state: %v", err)
	}

	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session id: %v", err)
	}
	gameState.SessionID = id

	return gameState, nil
}

func (r *SQLiteRepository) SaveGameState(ctx context.Context, gameState *models.GameState) error {
	q := `
	INSERT OR REPLACE INTO game_state (id, session_id, timestamp, data)
	VALUES (1, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q, gameState.SessionID.String(), gameState.Timestamp, gameState.Data)
	if err != nil {
		return fmt.Errorf("failed to save game state: %v", err)
	}
	return nil
}

func (r *SQLiteRepository) ClearGameState(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM game_state;`); err != nil {
		return fmt.Errorf("failed to clear game state: %v", err)
	}
	return nil
}

func (r *SQLiteRepository) SaveGameResult(ctx context.Context, result *models.GameResult) error {
	q := `
	INSERT INTO game_results (session_id, timestamp, score, max_tile, won, game_over)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	res, err := r.db.ExecContext(ctx, q, result.SessionID.String(), result.Timestamp, result.Score, result.MaxTile, result.Won, result.Over)
	if err != nil {
		return fmt.Errorf("failed to insert game result: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get game result id: %v", err)
	}
	result.ID = id

	return nil
}

func (r *SQLiteRepository) ListGameResults(ctx context.Context, limit int) ([]*models.GameResult, error) {
	q := `
	SELECT id, session_id, timestamp, score, max_tile, won, game_over
	FROM game_results
	ORDER BY score DESC, timestamp DESC, id DESC
	LIMIT ?;
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game results: %v", err)
	}
	defer rows.Close()

	results := make([]*models.GameResult, 0)
	for rows.Next() {
		var sessionID string
		result := &models.GameResult{}
		if err := rows.Scan(&result.ID, &sessionID, &result.Timestamp, &result.Score, &result.MaxTile, &result.Won, &result.Over); err != nil {
			return nil, fmt.Errorf("failed to scan game result: %v", err)
		}
		if result.SessionID, err = uuid.Parse(sessionID); err != nil {
			return nil, fmt.Errorf("failed to parse session id: %v", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game results: %v", err)
	}

	return results, nil
}
