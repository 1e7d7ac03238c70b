package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/binhbb2204/Business-Directory-Group13/internal/directory"
	"github.com/binhbb2204/Business-Directory-Group13/internal/location"
	"github.com/binhbb2204/Business-Directory-Group13/internal/mapview"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/logger"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/metrics"
	"github.com/binhbb2204/Business-Directory-Group13/pkg/models"
	"github.com/google/uuid"
)

// Handler applies client frames to a session's ViewState and answers with a
// fresh snapshot.
type Handler struct {
	repo    directory.Repository
	overlay *mapview.Overlay
}

func NewHandler(repo directory.Repository, overlay *mapview.Overlay) *Handler {
	if overlay == nil {
		overlay = mapview.NewOverlay(0, "", "")
	}
	return &Handler{repo: repo, overlay: overlay}
}

// FrameError is a client-side mistake reported back on the socket.
type FrameError struct {
	Code    string
	Message string
}

func (e *FrameError) Error() string { return e.Code + ": " + e.Message }

func (h *Handler) HandleClientMessage(ctx context.Context, client *Client, data []byte) error {
	start := time.Now()
	metrics.RecordEventProcessed()

	loc, err := h.apply(ctx, client, data)
	if err == nil {
		err = h.sendSnapshot(ctx, client, loc)
	}

	metrics.RecordLatency(time.Since(start).Microseconds())
	if err != nil {
		metrics.RecordEventFailed()
		var ferr *FrameError
		if errors.As(err, &ferr) {
			client.sendError(ferr.Code, ferr.Message)
		} else {
			client.sendError(ErrCodeSnapshotFailure, "failed to compute results")
		}
	}
	return err
}

// apply runs the transition a frame asks for. A location frame also returns
// the resolved position so the snapshot can report it.
func (h *Handler) apply(ctx context.Context, client *Client, data []byte) (*models.LocationResponse, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, &FrameError{Code: ErrCodeBadFrame, Message: "frame is not valid json"}
	}

	switch msg.Type {
	case MessageTypeSetCategory:
		c, err := models.ParseCategory(msg.Category)
		if err != nil {
			return nil, &FrameError{Code: ErrCodeInvalidFilter, Message: err.Error()}
		}
		client.update(func(s directory.ViewState) directory.ViewState { return s.WithCategory(c) })

	case MessageTypeSetMaxRating:
		if msg.MaxRating == nil {
			return nil, &FrameError{Code: ErrCodeInvalidFilter, Message: "max_rating is required"}
		}
		t, err := directory.ParseMaxRating(*msg.MaxRating)
		if err != nil {
			return nil, &FrameError{Code: ErrCodeInvalidFilter, Message: err.Error()}
		}
		client.update(func(s directory.ViewState) directory.ViewState { return s.WithMaxRating(t) })

	case MessageTypeLocation:
		if client.locator.Done() {
			return nil, &FrameError{Code: ErrCodeAlreadyLocated, Message: "send relocate before reporting a new position"}
		}
		client.locator.Refresh(location.Report{Lat: msg.Lat, Lng: msg.Lng, Error: msg.Error})
		result := client.locator.Resolve(ctx)
		client.update(func(s directory.ViewState) directory.ViewState { return s.WithLocation(result.Coordinate) })
		resp := result.Response()
		return &resp, nil

	case MessageTypeRelocate:
		client.locator.Refresh(nil)

	case MessageTypeReset:
		client.update(func(s directory.ViewState) directory.ViewState { return s.Reset() })

	default:
		return nil, &FrameError{Code: ErrCodeUnknownType, Message: fmt.Sprintf("unknown message type %q", msg.Type)}
	}
	return nil, nil
}

// Snapshot recomputes the visible list from scratch for the given state.
func (h *Handler) Snapshot(ctx context.Context, state directory.ViewState) (ServerMessage, error) {
	all, err := h.repo.List(ctx)
	if err != nil {
		return ServerMessage{}, fmt.Errorf("list businesses: %w", err)
	}

	visible := state.Visible(all)
	metrics.IncrementFilterEvaluations()

	p := mapview.NewLeafletProvider()
	if err := h.overlay.Render(p, visible, state.Location); err != nil {
		return ServerMessage{}, fmt.Errorf("render map: %w", err)
	}
	scene := p.Scene()

	return ServerMessage{
		ID:         uuid.New().String(),
		Type:       MessageTypeSnapshot,
		State:      state,
		Businesses: visible,
		Count:      len(visible),
		Scene:      &scene,
		Timestamp:  time.Now(),
	}, nil
}

func (h *Handler) sendSnapshot(ctx context.Context, client *Client, loc *models.LocationResponse) error {
	msg, err := h.Snapshot(ctx, client.State())
	if err != nil {
		metrics.IncrementSnapshotFails()
		logger.Warn("snapshot_failed", "session_id", client.ID, "error", err.Error())
		return err
	}
	msg.SessionID = client.ID
	msg.Seq = client.nextSeq()
	msg.Location = loc

	data, err := json.Marshal(msg)
	if err != nil {
		metrics.IncrementSnapshotFails()
		return err
	}
	if !client.enqueue(data) {
		metrics.IncrementSnapshotFails()
		return fmt.Errorf("session %s send buffer full", client.ID)
	}
	metrics.IncrementSnapshots()
	return nil
}
