package main

import (
	"errors"
	"net"
	"os"
	"testing"
	"time"

	"github.com/binhbb2204/Business-Directory-Group13/internal/directory"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/config"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
)

func newTestOrchestrator(t *testing.T, api, grpc string) *ServerOrchestrator {
	t.Helper()
	logger.Init(logger.ERROR, false, nil)
	t.Setenv("ENABLE_API", api)
	t.Setenv("ENABLE_GRPC", grpc)

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return NewServerOrchestrator(cfg, directory.NewMemoryRepository(nil))
}

func waitResult(t *testing.T, o *ServerOrchestrator) error {
	t.Helper()
	result := make(chan error, 1)
	go func() { result <- o.WaitForShutdown() }()
	select {
	case err := <-result:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForShutdown did not return")
		return nil
	}
}

func TestLateServerFailureEndsWait(t *testing.T) {
	o := newTestOrchestrator(t, "false", "false")
	if err := o.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	boom := errors.New("listener lost")
	o.errChan <- boom
	if err := waitResult(t, o); !errors.Is(err, boom) {
		t.Fatalf("expected server failure, got %v", err)
	}
}

func TestSignalEndsWaitCleanly(t *testing.T) {
	o := newTestOrchestrator(t, "false", "false")
	if err := o.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	o.stopChan <- os.Interrupt
	if err := waitResult(t, o); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
}

func TestStartReportsBindFailure(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer busy.Close()
	_, port, _ := net.SplitHostPort(busy.Addr().String())
	t.Setenv("API_PORT", port)

	o := newTestOrchestrator(t, "true", "false")
	if err := o.Start(); err == nil {
		o.Shutdown()
		t.Fatal("expected bind failure")
	}
}
