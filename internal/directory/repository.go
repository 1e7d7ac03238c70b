package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
)

var ErrNotFound = errors.New("business not found")

// Repository is a read-only source of the business list. List must return the
// businesses in fixture order.
type Repository interface {
	List(ctx context.Context) ([]models.Business, error)

	Get(ctx context.Context, id string) (models.Business, error)

	Ping(ctx context.Context) error
}

type MemoryRepository struct {
	mu         sync.RWMutex
	businesses []models.Business
	byID       map[string]int
}

func NewMemoryRepository(businesses []models.Business) *MemoryRepository {
	r := &MemoryRepository{
		businesses: append([]models.Business(nil), businesses...),
		byID:       make(map[string]int, len(businesses)),
	}
	for i, b := range r.businesses {
		r.byID[b.ID] = i
	}
	return r
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.Business, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Business, len(r.businesses))
	copy(out, r.businesses)
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (models.Business, error) {
	if id == "" {
		return models.Business{}, fmt.Errorf("id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return models.Business{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r.businesses[i], nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
