package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/pkg/logger"
	"github.com/urbancabz/booking-system/pkg/metrics"
	"github.com/urbancabz/booking-system/pkg/wshub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// AdminFeed upgrades admin dashboard connections and keeps them registered
// in the connection hub until they drop. Lifecycle events are pushed to every
// connected admin through the hub.
type AdminFeed struct {
	connections *wshub.ConnectionHub
	log         logger.Logger
}

func NewAdminFeed(connections *wshub.ConnectionHub, log logger.Logger) *AdminFeed {
	return &AdminFeed{
		connections: connections,
		log:         log,
	}
}

// Subscribe godoc
// @Summary      Live booking feed
// @Description  Upgrades to a WebSocket that streams booking lifecycle events
// @Tags         Admin
// @Security     BearerAuth
// @Success      101
// @Router       /admin/ws [get]
func (h *AdminFeed) Subscribe(w http.ResponseWriter, r *http.Request) {
	user := models.UserFromContext(r.Context())
	if user.IsAnonymous() {
		errorResponse(w, http.StatusUnauthorized, "authorization required")
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error(r.Context(), "websocket upgrade failed", err)
		return
	}

	conn := wshub.NewConn(r.Context(), user.ID, wsConn)
	if err := h.connections.Add(conn); err != nil {
		h.log.Error(r.Context(), "failed to register websocket connection", err)
		conn.Close()
		return
	}

	metrics.WebSocketConnectionsGauge.WithLabelValues("booking-system").Inc()
	defer func() {
		h.connections.Delete(user.ID)
		metrics.WebSocketConnectionsGauge.WithLabelValues("booking-system").Dec()
	}()

	h.log.Info(r.Context(), "admin websocket connected", "user_id", user.ID.String())

	// The feed is push-only. Reading drains control frames and returns
	// when the peer goes away.
	err = conn.Listen(func(msg any) error { return nil })
	h.log.Info(r.Context(), "admin websocket disconnected", "user_id", user.ID.String(), "reason", err.Error())
}

// Push broadcasts one lifecycle event to every connected admin.
func (h *AdminFeed) Push(ctx context.Context, event models.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}

	h.connections.Broadcast(msg)
	return nil
}
