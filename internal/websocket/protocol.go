package websocket

import (
	"time"

	"github.com/binhbb2204/Business-Directory-Group13/internal/directory"
	"github.com/binhbb2204/Business-Directory-Group13/internal/mapview"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
)

type MessageType string

const (
	MessageTypeSetCategory  MessageType = "set_category"
	MessageTypeSetMaxRating MessageType = "set_max_rating"
	MessageTypeLocation     MessageType = "location"
	MessageTypeRelocate     MessageType = "relocate"
	MessageTypeReset        MessageType = "reset"
	MessageTypeSnapshot     MessageType = "snapshot"
	MessageTypeError        MessageType = "error"
)

// ClientMessage is a frame sent by the browser. Only the fields relevant to
// Type are read.
type ClientMessage struct {
	Type      MessageType `json:"type"`
	Category  string      `json:"category,omitempty"`
	MaxRating *float64    `json:"max_rating,omitempty"`
	Lat       *float64    `json:"lat,omitempty"`
	Lng       *float64    `json:"lng,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// ServerMessage carries a full recomputation of the session's view.
type ServerMessage struct {
	ID         string                   `json:"id"`
	Type       MessageType              `json:"type"`
	SessionID  string                   `json:"session_id"`
	Seq        int64                    `json:"seq"`
	State      directory.ViewState      `json:"state"`
	Businesses []models.Business        `json:"businesses"`
	Count      int                      `json:"count"`
	Scene      *mapview.Scene           `json:"scene,omitempty"`
	Location   *models.LocationResponse `json:"location,omitempty"`
	Timestamp  time.Time                `json:"timestamp"`
}

type ErrorMessage struct {
	Type      MessageType `json:"type"`
	Error     string      `json:"error"`
	Code      string      `json:"code"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	ErrCodeBadFrame        = "bad_frame"
	ErrCodeInvalidFilter   = "invalid_filter"
	ErrCodeAlreadyLocated  = "location_already_resolved"
	ErrCodeRateLimited     = "rate_limited"
	ErrCodeUnknownType     = "unknown_type"
	ErrCodeSnapshotFailure = "snapshot_failed"
)
