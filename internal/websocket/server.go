package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	pingPeriod     = 30 * time.Second
	pongWait       = 60 * time.Second
	writeWait      = 10 * time.Second
	maxMessageSize = 16 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Server struct {
	manager *Manager
	handler *Handler
}

func NewServer(handler *Handler) *Server {
	manager := NewManager()
	go manager.Run()

	return &Server{
		manager: manager,
		handler: handler,
	}
}

// HandleWebSocket upgrades the request into a viewer session and sends its
// first snapshot.
func (s *Server) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("ws_upgrade_failed", "error", err.Error())
		return
	}

	client := NewClient(conn, s.manager, s.handler)
	s.manager.Register(client)

	if err := s.handler.sendSnapshot(context.Background(), client, nil); err != nil {
		client.sendError(ErrCodeSnapshotFailure, "failed to compute results")
	}

	go client.WritePump()
	go client.ReadPump()
}

func (s *Server) Manager() *Manager {
	return s.manager
}

func (s *Server) SessionCount() int {
	return s.manager.GetClientCount()
}

func (s *Server) Shutdown() {
	s.manager.Stop()
}
