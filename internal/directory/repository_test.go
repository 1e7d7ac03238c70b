package directory

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/config"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/database"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/fixture"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
	"github.com/google/go-cmp/cmp"
)

func setupSQLiteRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	logger.Init(logger.INFO, false, nil)

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := database.SeedBusinesses(context.Background(), db, fixture.MustBusinesses()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewSQLiteRepository(db)
}

func TestRepositoriesAgreeOnOrderAndContent(t *testing.T) {
	ctx := context.Background()
	want := fixture.MustBusinesses()

	repos := map[string]Repository{
		"memory": NewMemoryRepository(want),
		"sqlite": setupSQLiteRepository(t),
	}

	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			got, err := repo.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("list mismatch (-want +got):\n%s", diff)
			}

			b, err := repo.Get(ctx, want[2].ID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if b != want[2] {
				t.Fatalf("get returned %+v, want %+v", b, want[2])
			}

			if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}

			if err := repo.Ping(ctx); err != nil {
				t.Fatalf("ping: %v", err)
			}
		})
	}
}

var customBusinesses = []models.Business{
	{ID: "custom-1", Name: "Corner Bakery", Type: models.CategoryCafe, Rating: 3.0, ReviewCount: 4, Address: "9 Ninth St", Lat: 37.76, Lng: -122.42},
	{ID: "custom-2", Name: "Night Cinema", Type: models.CategoryEntertainment, Rating: 2.5, ReviewCount: 31, Address: "10 Tenth St", Lat: 37.78, Lng: -122.41},
}

func TestSeedReplacesExistingRows(t *testing.T) {
	logger.Init(logger.INFO, false, nil)
	ctx := context.Background()
	db, err := database.Open(filepath.Join(t.TempDir(), "seed.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	list := fixture.MustBusinesses()
	for i := 0; i < 2; i++ {
		n, err := database.SeedBusinesses(ctx, db, list)
		if err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
		if n != int64(len(list)) {
			t.Fatalf("seed %d: expected %d rows, got %d", i, len(list), n)
		}
	}

	if _, err := database.SeedBusinesses(ctx, db, customBusinesses); err != nil {
		t.Fatalf("custom seed: %v", err)
	}
	got, err := NewSQLiteRepository(db).List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff(customBusinesses, got); diff != "" {
		t.Fatalf("stale rows after reseed (-want +got):\n%s", diff)
	}
}

func TestOpenRepositoryServesPreseededDatabase(t *testing.T) {
	logger.Init(logger.ERROR, false, nil)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "preseeded.db")

	db, err := database.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := database.SeedBusinesses(ctx, db, customBusinesses); err != nil {
		t.Fatalf("seed: %v", err)
	}
	db.Close()

	repo, err := OpenRepository(ctx, config.StorageSQLite, path)
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff(customBusinesses, got); diff != "" {
		t.Fatalf("served data differs from seeded data (-want +got):\n%s", diff)
	}
}

func TestMemoryRepositoryListIsACopy(t *testing.T) {
	repo := NewMemoryRepository(fixture.MustBusinesses())

	first, _ := repo.List(context.Background())
	first[0].Rating = 0

	second, _ := repo.List(context.Background())
	if second[0].Rating == 0 {
		t.Fatal("List exposed internal slice")
	}
}

func TestSQLitePingAfterClose(t *testing.T) {
	logger.Init(logger.INFO, false, nil)
	db, err := database.Open(filepath.Join(t.TempDir(), "closed.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	repo := NewSQLiteRepository(db)
	db.Close()

	if err := repo.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error on closed database")
	}
}

func TestFreshSchemaNeedsNoMigration(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(logger.DEBUG, false, &buf)
	defer logger.Init(logger.INFO, false, nil)

	db, err := database.Open(filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if strings.Contains(buf.String(), "column") {
		t.Fatalf("fresh database was migrated: %s", buf.String())
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('businesses') WHERE name = 'review_count'`).Scan(&n); err != nil {
		t.Fatalf("table info: %v", err)
	}
	if n != 1 {
		t.Fatal("businesses table has no review_count column")
	}
}
