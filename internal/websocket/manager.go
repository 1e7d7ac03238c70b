package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/binhbb2204/Business-Directory-Group13/internal/directory"
	"github.com/binhbb2204/Business-Directory-Group13/internal/location"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/metrics"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	rateLimit  = 20
	rateWindow = 10 * time.Second
	sendBuffer = 64
)

// Client is one viewer session. Its ViewState is replaced wholesale on every
// transition and never shared with other sessions.
type Client struct {
	ID          string
	Conn        *websocket.Conn
	Send        chan []byte
	Manager     *Manager
	Handler     *Handler
	LastActive  time.Time
	ConnectedAt time.Time

	state      directory.ViewState
	locator    *location.Once
	seq        int64
	closed     bool
	rateTokens int
	rateLast   time.Time
	mu         sync.Mutex
}

func NewClient(conn *websocket.Conn, manager *Manager, handler *Handler) *Client {
	now := time.Now()
	return &Client{
		ID:          uuid.New().String(),
		Conn:        conn,
		Send:        make(chan []byte, sendBuffer),
		Manager:     manager,
		Handler:     handler,
		LastActive:  now,
		ConnectedAt: now,
		state:       directory.NewViewState(),
		locator:     location.NewOnce(nil),
		rateTokens:  rateLimit,
		rateLast:    now,
	}
}

func (c *Client) State() directory.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) update(fn func(directory.ViewState) directory.ViewState) {
	c.mu.Lock()
	c.state = fn(c.state)
	c.mu.Unlock()
}

func (c *Client) nextSeq() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// enqueue hands data to the write pump without blocking. It reports false when
// the session is closed or its buffer is full.
func (c *Client) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

func (c *Client) sendError(code, message string) {
	data, err := json.Marshal(ErrorMessage{
		Type:      MessageTypeError,
		Error:     message,
		Code:      code,
		Timestamp: time.Now(),
	})
	if err != nil {
		return
	}
	c.enqueue(data)
}

// Manager tracks live sessions.
type Manager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client.ID] = client
			metrics.SetActiveSessions(int64(len(m.clients)))
			m.mu.Unlock()
			logger.Info("ws_session_opened", "session_id", client.ID)

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client.ID]; ok {
				delete(m.clients, client.ID)
				client.close()
			}
			metrics.SetActiveSessions(int64(len(m.clients)))
			m.mu.Unlock()
			logger.Info("ws_session_closed", "session_id", client.ID,
				"duration_ms", time.Since(client.ConnectedAt).Milliseconds())

		case <-m.stop:
			m.mu.Lock()
			for id, client := range m.clients {
				client.close()
				delete(m.clients, id)
			}
			metrics.SetActiveSessions(0)
			m.mu.Unlock()
			return
		}
	}
}

// Stop closes every session and ends Run.
func (m *Manager) Stop() {
	close(m.stop)
}

func (m *Manager) Register(c *Client) {
	select {
	case m.register <- c:
	case <-m.stop:
	}
}

func (m *Manager) Unregister(c *Client) {
	select {
	case m.unregister <- c:
	case <-m.stop:
	}
}

func (m *Manager) GetClient(id string) (*Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	client, ok := m.clients[id]
	return client, ok
}

func (m *Manager) GetClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) SessionIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.clients))
	for id := range m.clients {
		ids = append(ids, id)
	}
	return ids
}

func (c *Client) ReadPump() {
	defer func() {
		c.Manager.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		c.UpdateActivity()
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("ws_read_failed", "error", err.Error(), "session_id", c.ID)
			}
			break
		}
		c.UpdateActivity()

		if !c.consumeRateToken() {
			c.sendError(ErrCodeRateLimited, "rate limit exceeded")
			continue
		}

		if c.Handler == nil {
			continue
		}
		if err := c.Handler.HandleClientMessage(context.Background(), c, message); err != nil {
			logger.Debug("ws_frame_rejected", "error", err.Error(), "session_id", c.ID)
		}
	}
}

func (c *Client) consumeRateToken() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	if now.Sub(c.rateLast) >= rateWindow {
		c.rateTokens = rateLimit
		c.rateLast = now
	}
	if c.rateTokens <= 0 {
		return false
	}
	c.rateTokens--
	return true
}

func (c *Client) UpdateActivity() {
	c.mu.Lock()
	c.LastActive = time.Now()
	c.mu.Unlock()
}

func (c *Client) GetLastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.LastActive
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
