package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/twenty48/pkg/log"
	"github.com/cbodonnell/twenty48/pkg/repositories/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = &PostgresRepository{}

// NewPostgresRepository connects to the database and applies the migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (*PostgresRepository, error) {
	pool, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}

	scripts, err := readMigrations("postgres")
	if err != nil {
		pool.Close()
		return nil, err
	}
	for i, migration := range scripts {
		if _, err := pool.Exec(ctx, migration); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &PostgresRepository{
		pool: pool,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = pool.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return pool, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) LoadBestScore(ctx context.Context) (int, error) {
	var score int
	if err := r.pool.QueryRow(ctx, "SELECT score FROM best_score WHERE id = 1").Scan(&score); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to scan best score: %v", err)
	}
	return score, nil
}

func (r *PostgresRepository) SaveBestScore(ctx context.Context, score int) error {
	q := `
	INSERT INTO best_score (id, score, updated_at) VALUES (1, $1, $2)
	ON CONFLICT (id) DO UPDATE SET score = $1, updated_at = $2;
	`
	if _, err := r.pool.Exec(ctx, q, score, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("failed to save best score: %v", err)
	}
	return nil
}

func (r *PostgresRepository) LoadGameState(ctx context.Context) (*models.GameState, error) {
	q := `
	SELECT session_id::text, timestamp, data FROM game_state WHERE id = 1;
	`
	var sessionID string
	gameState := &models.GameState{}
	if err := r.pool.QueryRow(ctx, q).Scan(&sessionID, &gameState.Timestamp, &gameState.Data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

func (r *PostgresRepository) SaveGameState(ctx context.Context, gameState *models.GameState) error {
	q := `
	INSERT INTO game_state (id, session_id, timestamp, data) VALUES (1, $1, $2, $3)
	ON CONFLICT (id) DO UPDATE SET session_id = $1, timestamp = $2, data = $3;
	`
	if _, err := r.pool.Exec(ctx, q, gameState.SessionID.String(), gameState.Timestamp, gameState.Data); err != nil {
		return fmt.Errorf("failed to save game state: %v", err)
	}
	return nil
}

func (r *PostgresRepository) ClearGameState(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM game_state"); err != nil {
		return fmt.Errorf("failed to clear game state: %v", err)
	}
	return nil
}

func (r *PostgresRepository) SaveGameResult(ctx context.Context, result *models.GameResult) error {
	q := `
	INSERT INTO game_results (session_id, timestamp, score, max_tile, won, game_over)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id;
	`
	err := r.pool.QueryRow(ctx, q, result.SessionID.String(), result.Timestamp, result.Score, result.MaxTile, result.Won, result.Over).Scan(&result.ID)
	if err != nil {
		return fmt.Errorf("failed to insert game result: %v", err)
	}
	return nil
}

func (r *PostgresRepository) ListGameResults(ctx context.Context, limit int) ([]*models.GameResult, error) {
	q := `
	SELECT id, session_id::text, timestamp, score, max_tile, won, game_over
	FROM game_results
	ORDER BY score DESC, timestamp DESC, id DESC
	LIMIT $1;
	`
	rows, err := r.pool.Query(ctx, q, limit)
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
