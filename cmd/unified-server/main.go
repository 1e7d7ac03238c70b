package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/binhbb2204/Business-Directory-Group13/internal/api"
	"github.com/binhbb2204/Business-Directory-Group13/internal/directory"
	"github.com/binhbb2204/Business-Directory-Group13/internal/grpc"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/config"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/database"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
	"github.com/gin-gonic/gin"
	grpc_server "google.golang.org/grpc"
)

type ServerOrchestrator struct {
	logger     *logger.Logger
	config     *config.ServerConfig
	repo       directory.Repository
	api        *api.Server
	httpServer *http.Server
	grpcServer *grpc_server.Server
	enableAPI  bool
	enableGRPC bool
	stopChan   chan os.Signal
	errChan    chan error
}

func NewServerOrchestrator(cfg *config.ServerConfig, repo directory.Repository) *ServerOrchestrator {
	return &ServerOrchestrator{
		logger:     logger.GetLogger().WithContext("component", "orchestrator"),
		config:     cfg,
		repo:       repo,
		enableAPI:  getEnvBool("ENABLE_API", true),
		enableGRPC: getEnvBool("ENABLE_GRPC", true),
		stopChan:   make(chan os.Signal, 1),
		errChan:    make(chan error, 2),
	}
}

func (o *ServerOrchestrator) initializeServers() {
	o.logger.Info("initializing_servers")

	if o.enableAPI {
		o.logger.Info("initializing_api_server", "port", o.config.API.Port)
		gin.SetMode(gin.ReleaseMode)
		o.api = api.NewServer(o.config, o.repo)
		o.httpServer = &http.Server{
			Addr:              o.config.API.ListenAddr(),
			Handler:           o.api.Router,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	if o.enableGRPC {
		o.logger.Info("initializing_grpc_server", "port", o.config.GRPC.Port)
		o.grpcServer = grpc.NewGRPCServer(o.repo)
	}

	o.logger.Info("servers_initialized")
}

func (o *ServerOrchestrator) Start() error {
	o.initializeServers()

	if o.httpServer != nil {
		go func() {
			o.logger.Info("starting_http_api_server", "bind", o.httpServer.Addr)
			if err := o.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				o.logger.Error("http_api_server_start_failed", "error", err.Error())
				o.errChan <- fmt.Errorf("HTTP API server: %w", err)
			}
		}()
	}

	if o.grpcServer != nil {
		lis, err := net.Listen("tcp", o.config.GRPC.ListenAddr())
		if err != nil {
			return fmt.Errorf("gRPC listen: %w", err)
		}
		go func() {
			o.logger.Info("starting_grpc_server", "bind", lis.Addr().String())
			if err := o.grpcServer.Serve(lis); err != nil {
				o.logger.Error("grpc_server_start_failed", "error", err.Error())
				o.errChan <- fmt.Errorf("gRPC server: %w", err)
			}
		}()
	}

	select {
	case err := <-o.errChan:
		o.logger.Error("server_start_error", "error", err.Error())
		return err
	case <-time.After(500 * time.Millisecond):
		o.logger.Info("all_servers_started_successfully")
	}

	signal.Notify(o.stopChan, os.Interrupt, syscall.SIGTERM)
	return nil
}

// WaitForShutdown blocks until a signal arrives or a server stops on its own,
// then shuts everything down. A server failure is returned.
func (o *ServerOrchestrator) WaitForShutdown() error {
	select {
	case sig := <-o.stopChan:
		o.logger.Info("shutdown_signal_received", "signal", sig.String())
		o.Shutdown()
		return nil
	case err := <-o.errChan:
		o.logger.Error("server_stopped_unexpectedly", "error", err.Error())
		o.Shutdown()
		return err
	}
}

func (o *ServerOrchestrator) Shutdown() {
	o.logger.Info("orchestrator_shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		if o.httpServer != nil {
			o.logger.Info("stopping_http_api_server")
			if err := o.httpServer.Shutdown(ctx); err != nil {
				o.logger.Warn("http_shutdown_failed", "error", err.Error())
			}
			o.api.Shutdown()
		}

		if o.grpcServer != nil {
			o.logger.Info("stopping_grpc_server")
			o.grpcServer.GracefulStop()
		}

		close(done)
	}()

	select {
	case <-done:
		o.logger.Info("graceful_shutdown_complete")
	case <-ctx.Done():
		o.logger.Warn("shutdown_timeout_forcing_stop")
		if o.grpcServer != nil {
			o.grpcServer.Stop()
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid_configuration", "error", err.Error())
		os.Exit(1)
	}

	logger.Init(logger.LogLevel(cfg.LogLevel), cfg.LogFormat == "json", os.Stdout)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("business_directory_starting", "storage", cfg.Storage)

	repo, err := directory.OpenRepository(context.Background(), cfg.Storage, cfg.DBPath)
	if err != nil {
		log.Error("repository_init_failed", "error", err.Error())
		os.Exit(1)
	}
	defer database.Close()

	orchestrator := NewServerOrchestrator(cfg, repo)
	if err := orchestrator.Start(); err != nil {
		log.Error("orchestrator_start_failed", "error", err.Error())
		os.Exit(1)
	}

	log.Info("business_directory_running",
		"api", orchestrator.enableAPI,
		"grpc", orchestrator.enableGRPC)

	if err := orchestrator.WaitForShutdown(); err != nil {
		log.Error("business_directory_failed", "error", err.Error())
		database.Close()
		os.Exit(1)
	}
	log.Info("business_directory_stopped")
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}
