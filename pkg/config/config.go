package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Version is reported by every binary and served at /version.
const Version = "1.0.0"

type Service struct {
	Host     string
	Port     string
	Protocol string
}

type MapConfig struct {
	Zoom        int
	TileURL     string
	Attribution string
}

// ServerConfig is everything the directory server reads from its
// environment.
type ServerConfig struct {
	API         Service
	GRPC        Service
	Storage     string
	DBPath      string
	FrontendURL string
	LogLevel    string
	LogFormat   string
	Map         MapConfig
}

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Load reads .env (when present) and then the process environment.
func Load() (*ServerConfig, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*ServerConfig, error) {
	cfg := &ServerConfig{
		API: Service{
			Host:     getEnvOrDefault("API_HOST", "localhost"),
			Port:     getEnvOrDefault("API_PORT", "8080"),
			Protocol: "http",
		},
		GRPC: Service{
			Host:     getEnvOrDefault("GRPC_HOST", "localhost"),
			Port:     getEnvOrDefault("GRPC_PORT", "50051"),
			Protocol: "grpc",
		},
		Storage:     getEnvOrDefault("STORAGE", StorageMemory),
		DBPath:      getEnvOrDefault("DB_PATH", "./data/directory.db"),
		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "text"),
		Map: MapConfig{
			Zoom:        GetEnvInt("MAP_ZOOM", 13),
			TileURL:     os.Getenv("MAP_TILE_URL"),
			Attribution: os.Getenv("MAP_ATTRIBUTION"),
		},
	}

	if cfg.Storage != StorageMemory && cfg.Storage != StorageSQLite {
		return nil, fmt.Errorf("unknown STORAGE %q (want %s or %s)", cfg.Storage, StorageMemory, StorageSQLite)
	}
	if cfg.Map.Zoom < 1 || cfg.Map.Zoom > 19 {
		return nil, fmt.Errorf("MAP_ZOOM must be between 1 and 19, got %d", cfg.Map.Zoom)
	}
	return cfg, nil
}

func (s *Service) URL() string {
	if s.Protocol == "grpc" {
		return fmt.Sprintf("%s:%s", s.Host, s.Port)
	}
	return fmt.Sprintf("%s://%s:%s", s.Protocol, s.Host, s.Port)
}

func (s *Service) ListenAddr() string {
	return ":" + s.Port
}

func (cfg *ServerConfig) GetDiscoveryResponse() map[string]interface{} {
	return map[string]interface{}{
		"services": map[string]interface{}{
			"api":       cfg.API.URL(),
			"websocket": fmt.Sprintf("ws://%s:%s/ws", cfg.API.Host, cfg.API.Port),
			"grpc":      cfg.GRPC.URL(),
		},
		"storage": cfg.Storage,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func GetEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
