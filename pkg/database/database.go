package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

// Open creates the parent directory if needed, opens the sqlite file and
// applies the schema.
func Open(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info("database_ready", "path", dbPath)
	return db, nil
}

// InitDatabase opens dbPath into the package-level DB handle.
func InitDatabase(dbPath string) error {
	db, err := Open(dbPath)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

func createTables(db *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS businesses (
        id TEXT PRIMARY KEY,
        position INTEGER NOT NULL,
        name TEXT NOT NULL,
        type TEXT NOT NULL,
        rating REAL NOT NULL,
        review_count INTEGER NOT NULL DEFAULT 0,
        address TEXT,
        lat REAL NOT NULL,
        lng REAL NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_businesses_position ON businesses(position);
    CREATE INDEX IF NOT EXISTS idx_businesses_type ON businesses(type);
    `

	_, err := db.Exec(schema)
	return err
}

// CountBusinesses reports how many rows the businesses table holds.
func CountBusinesses(ctx context.Context, db *sql.DB) (int64, error) {
	var n int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM businesses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count businesses: %w", err)
	}
	return n, nil
}

// SeedBusinesses replaces the whole table with businesses. The slice index is
// stored as position so listings keep the given order.
func SeedBusinesses(ctx context.Context, db *sql.DB, businesses []models.Business) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM businesses`); err != nil {
		return 0, fmt.Errorf("clear businesses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO businesses (
			id, position, name, type, rating, review_count, address, lat, lng
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for i, b := range businesses {
		res, err := stmt.ExecContext(ctx, b.ID, i, b.Name, string(b.Type), b.Rating, b.ReviewCount, b.Address, b.Lat, b.Lng)
		if err != nil {
			return 0, fmt.Errorf("seed business %s: %w", b.ID, err)
		}
		n, _ := res.RowsAffected()
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return inserted, nil
}

func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
