package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
)

// SQLiteRepository reads businesses from the businesses table. The table is
// seeded once at startup and never written afterwards.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectBusinessColumns = `
	SELECT
		id, name, type, rating, review_count, address, lat, lng
	FROM businesses
`

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Business, error) {
	rows, err := r.db.QueryContext(ctx, selectBusinessColumns+` ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query businesses: %w", err)
	}
	defer rows.Close()

	businesses := []models.Business{}
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}
	return businesses, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (models.Business, error) {
	if id == "" {
		return models.Business{}, fmt.Errorf("id is required")
	}

	b, err := scanBusiness(r.db.QueryRowContext(ctx, selectBusinessColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Business{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return models.Business{}, fmt.Errorf("query business: %w", err)
	}
	return b, nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBusiness(s rowScanner) (models.Business, error) {
	var b models.Business
	var typ string
	var address sql.NullString
	if err := s.Scan(&b.ID, &b.Name, &typ, &b.Rating, &b.ReviewCount, &address, &b.Lat, &b.Lng); err != nil {
		return models.Business{}, err
	}
	b.Type = models.Category(typ)
	b.Address = address.String
	return b, nil
}
