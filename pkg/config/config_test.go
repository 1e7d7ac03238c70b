package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"API_HOST", "API_PORT", "GRPC_PORT", "STORAGE", "DB_PATH", "MAP_ZOOM", "MAP_TILE_URL"} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.API.URL() != "http://localhost:8080" {
		t.Fatalf("unexpected api url %s", cfg.API.URL())
	}
	if cfg.GRPC.URL() != "localhost:50051" {
		t.Fatalf("unexpected grpc url %s", cfg.GRPC.URL())
	}
	if cfg.Storage != StorageMemory || cfg.Map.Zoom != 13 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("STORAGE", "sqlite")
	t.Setenv("MAP_ZOOM", "15")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.API.ListenAddr() != ":9000" || cfg.Storage != StorageSQLite || cfg.Map.Zoom != 15 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}

	services := cfg.GetDiscoveryResponse()["services"].(map[string]interface{})
	if services["websocket"] != "ws://localhost:9000/ws" {
		t.Fatalf("unexpected websocket url %v", services["websocket"])
	}
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("STORAGE", "postgres")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected storage error")
	}

	t.Setenv("STORAGE", "memory")
	t.Setenv("MAP_ZOOM", "40")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected zoom error")
	}
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	if GetEnvInt("SOME_INT", 7) != 7 {
		t.Fatal("expected default for unparseable value")
	}
}
