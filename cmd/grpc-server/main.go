package main

import (
	"context"
	"net"
	"os"

	"github.com/binhbb2204/Business-Directory-Group13/internal/directory"
	"github.com/binhbb2204/Business-Directory-Group13/internal/grpc"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/config"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/database"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid_configuration", "error", err.Error())
		os.Exit(1)
	}

	logger.Init(logger.LogLevel(cfg.LogLevel), cfg.LogFormat == "json", os.Stdout)
	log := logger.GetLogger().WithContext("component", "grpc_server")

	repo, err := directory.OpenRepository(context.Background(), cfg.Storage, cfg.DBPath)
	if err != nil {
		log.Error("failed_to_open_repository", "error", err.Error(), "storage", cfg.Storage)
		os.Exit(1)
	}
	defer database.Close()

	lis, err := net.Listen("tcp", cfg.GRPC.ListenAddr())
	if err != nil {
		log.Error("grpc_listen_failed", "error", err.Error(), "port", cfg.GRPC.Port)
		os.Exit(1)
	}

	s := grpc.NewGRPCServer(repo)
	log.Info("grpc_server_listening", "addr", lis.Addr().String(), "service", grpc.ServiceName)
	if err := s.Serve(lis); err != nil {
		log.Error("grpc_serve_failed", "error", err.Error())
		os.Exit(1)
	}
}
