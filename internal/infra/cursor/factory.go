package cursor

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/sensibot/crmsync/internal/infra/database"
	"github.com/sensibot/crmsync/internal/usecase"
)

const defaultFilePath = "lastRecord.json"

// NewStoreFromDSN picks a cursor backend by DSN scheme:
//
//	""                   → JSON file next to the binary (historical default)
//	file:/var/run/x.json → JSON file
//	memory:              → in-process
//	redis://host:6379/0  → redis key
//	postgres://...       → single-row slot table
func NewStoreFromDSN(dsn string) (usecase.CursorStore, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return NewFileStore(defaultFilePath), nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor DSN: %w", err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "", "file":
		path := parsed.Path
		if parsed.Opaque != "" {
			path = parsed.Opaque
		}
		if path == "" {
			path = defaultFilePath
		}
		return NewFileStore(path), nil

	case "memory", "mem":
		return NewMemoryStore(), nil

	case "redis":
		opts, err := redis.ParseURL(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid redis cursor DSN: %w", err)
		}
		return NewRedisStore(redis.NewClient(opts), ""), nil

	case "postgres", "postgresql":
		db, err := database.NewDBConnection(dsn)
		if err != nil {
			return nil, fmt.Errorf("postgres cursor backend: %w", err)
		}
		repo := database.NewCursorRepository(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			return nil, fmt.Errorf("postgres cursor schema: %w", err)
		}
		return repo, nil

	default:
		return nil, fmt.Errorf("unsupported cursor backend scheme: %s", parsed.Scheme)
	}
}
