package app

import (
	"strings"

	"github.com/shrimpsizemoose/semla/internal/store"
	"github.com/shrimpsizemoose/semla/internal/store/file"
	"github.com/shrimpsizemoose/semla/internal/store/postgres"
	redisstore "github.com/shrimpsizemoose/semla/internal/store/redis"
	"github.com/shrimpsizemoose/semla/internal/store/sqlite"
)

// NewStore picks the backend from the DSN: redis:// and postgres URLs
// go to their servers, file:// keeps three JSON files in a directory,
// anything else is treated as a sqlite path.
func NewStore(dsn, migrationsDir string) (store.EntityStore, error) {
	switch {
	case strings.HasPrefix(dsn, "redis://"):
		return redisstore.NewRedisStore(dsn)
	case strings.HasPrefix(dsn, "postgres"):
		return postgres.NewPostgresStore(dsn, migrationsDir)
	case strings.HasPrefix(dsn, "file://"):
		return file.NewFileStore(strings.TrimPrefix(dsn, "file://"))
	default:
		return sqlite.NewSQLiteStore(dsn, migrationsDir)
	}
}
