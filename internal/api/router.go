// Package api assembles the HTTP surface: the directory page and JSON
// routes, the live session socket, health probes and metrics.
package api

import (
	"net/http"

	"github.com/binhbb2204/Business-Directory-Group13/internal/directory"
	"github.com/binhbb2204/Business-Directory-Group13/internal/health"
	"github.com/binhbb2204/Business-Directory-Group13/internal/mapview"
	"github.com/binhbb2204/Business-Directory-Group13/internal/websocket"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/config"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server bundles the router with the live session server it mounts at /ws.
type Server struct {
	Router *gin.Engine
	WS     *websocket.Server
}

func NewServer(cfg *config.ServerConfig, repo directory.Repository) *Server {
	overlay := mapview.NewOverlay(cfg.Map.Zoom, cfg.Map.TileURL, cfg.Map.Attribution)

	directoryHandler := directory.NewHandler(repo, overlay)
	healthHandler := health.NewHandler(repo)
	metricsHandler := metrics.NewHandler()
	wsServer := websocket.NewServer(websocket.NewHandler(repo, overlay))

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(corsConfig))

	router.SetHTMLTemplate(directory.PageTemplate())

	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/readyz", healthHandler.Readyz)
	router.GET("/metrics", metricsHandler.Metrics)
	router.GET("/services", func(c *gin.Context) {
		c.JSON(http.StatusOK, cfg.GetDiscoveryResponse())
	})
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "business-directory", "version": config.Version})
	})
	router.GET("/ws", wsServer.HandleWebSocket)

	directoryHandler.Register(router)

	return &Server{Router: router, WS: wsServer}
}

func (s *Server) Shutdown() {
	s.WS.Shutdown()
}
