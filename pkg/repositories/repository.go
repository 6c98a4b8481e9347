package repositories

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/url"
	"sort"
	"strings"

	"github.com/cbodonnell/twenty48/pkg/repositories/models"
)

//go:embed migrations
var migrations embed.FS

type Repository interface {
	Close(ctx context.Context) error
	// LoadBestScore returns 0 when no best score has been saved.
	LoadBestScore(ctx context.Context) (int, error)
	SaveBestScore(ctx context.Context, score int) error
	// LoadGameState returns ErrNotFound when there is no game in progress.
	LoadGameState(ctx context.Context) (*models.GameState, error)
	SaveGameState(ctx context.Context, gameState *models.GameState) error
	ClearGameState(ctx context.Context) error
	SaveGameResult(ctx context.Context, result *models.GameResult) error
	// ListGameResults returns up to limit results, highest score first.
	ListGameResults(ctx context.Context, limit int) ([]*models.GameResult, error)
}

// NewRepository opens the repository selected by the scheme of databaseURL:
// sqlite://<path>, postgres:// or postgresql://, and memory://.
func NewRepository(ctx context.Context, databaseURL string) (Repository, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %v", err)
	}

	switch u.Scheme {
	case "sqlite", "sqlite3":
		path := strings.TrimPrefix(databaseURL, u.Scheme+"://")
		if path == "" {
			return nil, fmt.Errorf("sqlite database url has no path")
		}
		repo, err := NewSQLiteRepository(ctx, path)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case "postgres", "postgresql":
		repo, err := NewPostgresRepository(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case "memory":
		return NewInMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}

// readMigrations returns the migration scripts for dialect in file name order.
func readMigrations(dialect string) ([]string, error) {
	dir := "migrations/" + dialect
	entries, err := fs.ReadDir(migrations, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	scripts := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		migrationPath := dir + "/" + entry.Name()
		migration, err := fs.ReadFile(migrations, migrationPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}
		scripts = append(scripts, string(migration))
	}
	return scripts, nil
}
