package directory

import (
	"context"
	"fmt"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/config"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/database"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/fixture"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
)

// OpenRepository builds the repository for the configured storage backend.
// The SQLite store lives at dbPath. An empty store is seeded from the
// embedded fixture; a populated one is served as is, so data loaded by
// scripts/seed-data.go survives restarts. Callers close it with
// database.Close.
func OpenRepository(ctx context.Context, storage, dbPath string) (Repository, error) {
	businesses, err := fixture.Businesses()
	if err != nil {
		return nil, fmt.Errorf("load fixture: %w", err)
	}

	switch storage {
	case config.StorageMemory, "":
		logger.Info("repository_opened", "storage", config.StorageMemory, "businesses", len(businesses))
		return NewMemoryRepository(businesses), nil

	case config.StorageSQLite:
		if err := database.InitDatabase(dbPath); err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		existing, err := database.CountBusinesses(ctx, database.DB)
		if err != nil {
			return nil, fmt.Errorf("inspect database: %w", err)
		}
		var seeded int64
		if existing == 0 {
			if seeded, err = database.SeedBusinesses(ctx, database.DB, businesses); err != nil {
				return nil, fmt.Errorf("seed database: %w", err)
			}
		}
		logger.Info("repository_opened", "storage", config.StorageSQLite, "path", dbPath,
			"existing", existing, "seeded", seeded)
		return NewSQLiteRepository(database.DB), nil

	default:
		return nil, fmt.Errorf("unknown storage %q", storage)
	}
}
