package config

import (
	"testing"
)

func TestInitLoadSave(t *testing.T) {
	t.Setenv("BIZDIR_HOME", t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected error before init")
	}
	if err := Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Filters.Category != "all" || cfg.Filters.MaxRating != 3.5 || cfg.Server.HTTPPort != 8080 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	cfg.Server.Host = "example.test"
	cfg.Filters.MaxRating = 3.5
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	again, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.ServerURL() != "http://example.test:8080" || again.Filters.MaxRating != 3.5 {
		t.Fatalf("changes not persisted: %+v", again)
	}
	if again.WebSocketURL() != "ws://example.test:8080/ws" || again.GRPCTarget() != "example.test:50051" {
		t.Fatalf("unexpected derived addresses: %s %s", again.WebSocketURL(), again.GRPCTarget())
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("BIZDIR_HOME", t.TempDir())
	if cfg := LoadOrDefault(); cfg.Server.Host != "localhost" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}
