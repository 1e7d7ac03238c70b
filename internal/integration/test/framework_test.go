package integration_test

import (
	"context"
	"net"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/binhbb2204/Business-Directory-Group13/internal/api"
	"github.com/binhbb2204/Business-Directory-Group13/internal/directory"
	dirgrpc "github.com/binhbb2204/Business-Directory-Group13/internal/grpc"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/config"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/database"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// TestEnvironment runs every surface against one SQLite-backed repository.
type TestEnvironment struct {
	Repo       directory.Repository
	HTTP       *httptest.Server
	WSURL      string
	GRPC       *dirgrpc.Client
	cleanup    []func()
	cleanupMux sync.Mutex
}

func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	logger.Init(logger.ERROR, false, nil)
	gin.SetMode(gin.TestMode)

	env := &TestEnvironment{}
	t.Cleanup(env.Cleanup)

	repo, err := directory.OpenRepository(context.Background(), config.StorageSQLite, filepath.Join(t.TempDir(), "integration.db"))
	if err != nil {
		t.Fatalf("Failed to open repository: %v", err)
	}
	env.Repo = repo
	env.AddCleanup(func() { database.Close() })

	t.Setenv("STORAGE", config.StorageSQLite)
	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	srv := api.NewServer(cfg, repo)
	env.HTTP = httptest.NewServer(srv.Router)
	env.WSURL = "ws" + strings.TrimPrefix(env.HTTP.URL, "http") + "/ws"
	env.AddCleanup(srv.Shutdown)
	env.AddCleanup(env.HTTP.Close)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	grpcServer := dirgrpc.NewGRPCServer(repo)
	go grpcServer.Serve(lis)
	env.AddCleanup(grpcServer.Stop)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("grpc dial: %v", err)
	}
	env.GRPC = dirgrpc.NewClient(conn)
	env.AddCleanup(func() { conn.Close() })

	return env
}

func (env *TestEnvironment) AddCleanup(fn func()) {
	env.cleanupMux.Lock()
	defer env.cleanupMux.Unlock()
	env.cleanup = append(env.cleanup, fn)
}

// Cleanup runs registered cleanups in reverse order.
func (env *TestEnvironment) Cleanup() {
	env.cleanupMux.Lock()
	defer env.cleanupMux.Unlock()
	for i := len(env.cleanup) - 1; i >= 0; i-- {
		env.cleanup[i]()
	}
	env.cleanup = nil
}
