package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/meetocure/patient-dashboard/internal/dashboard"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4 * 1024
)

// upgrader keeps gorilla's same-origin check: the connection carries the
// session cookie, so only pages served by this host may open it.
var upgrader = websocket.Upgrader{}

type clientMessage struct {
	Type string `json:"type"`
}

// LiveDashboardHandler mounts a dashboard for the lifetime of a websocket
// connection and pushes the view on every state change. A {"type":"navigate"}
// message re-syncs the city without refetching the lists.
func (h *APIHandler) LiveDashboardHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.WarnContext(c.Request.Context(), "Websocket upgrade failed", "origin", c.GetHeader("Origin"), "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	d := h.newDashboard(c)
	changes, unsubscribe := d.Subscribe()
	defer unsubscribe()
	d.Mount(ctx)
	defer d.Unmount()

	navigate := make(chan struct{}, 1)
	go readPump(ctx, conn, navigate, cancel)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if err := writeView(conn, d); err != nil {
		slog.DebugContext(ctx, "Websocket write failed", "error", err)
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			if err := writeView(conn, d); err != nil {
				slog.DebugContext(ctx, "Websocket write failed", "error", err)
				return
			}
		case <-navigate:
			d.SyncCity(ctx)
			if err := writeView(conn, d); err != nil {
				slog.DebugContext(ctx, "Websocket write failed", "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeView(conn *websocket.Conn, d *dashboard.Dashboard) error {
	payload, err := json.Marshal(dashboard.BuildView(d.Snapshot()))
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// readPump handles client messages until the connection fails, then cancels
// the connection context.
func readPump(ctx context.Context, conn *websocket.Conn, navigate chan<- struct{}, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.DebugContext(ctx, "Websocket closed unexpectedly", "error", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		var msg clientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			slog.DebugContext(ctx, "Ignoring invalid websocket message", "error", err)
			continue
		}
		if msg.Type == "navigate" {
			select {
			case navigate <- struct{}{}:
			default:
			}
		}
	}
}
