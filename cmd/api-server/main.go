package main

import (
	"context"
	"os"

	"github.com/binhbb2204/Business-Directory-Group13/internal/api"
	"github.com/binhbb2204/Business-Directory-Group13/internal/directory"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/config"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/database"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid_configuration", "error", err.Error())
		os.Exit(1)
	}

	logger.Init(logger.LogLevel(cfg.LogLevel), cfg.LogFormat == "json", os.Stdout)
	log := logger.GetLogger().WithContext("component", "api_server")
	log.Info("starting_api_server", "version", config.Version)

	repo, err := directory.OpenRepository(context.Background(), cfg.Storage, cfg.DBPath)
	if err != nil {
		log.Error("failed_to_open_repository", "error", err.Error(), "storage", cfg.Storage)
		os.Exit(1)
	}
	defer database.Close()

	gin.SetMode(gin.ReleaseMode)
	srv := api.NewServer(cfg, repo)
	defer srv.Shutdown()

	log.Info("api_server_listening", "port", cfg.API.Port, "frontend_url", cfg.FrontendURL)
	if err := srv.Router.Run(cfg.API.ListenAddr()); err != nil {
		log.Error("failed_to_start_api_server", "error", err.Error())
		os.Exit(1)
	}
}
