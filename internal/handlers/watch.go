package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"learning_platform/internal/metrics"
	"learning_platform/internal/models"
	"learning_platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000
)

// Frame types pushed to watchers.
const (
	frameModule  = "module"
	frameDeleted = "deleted"
	frameError   = "error"
)

type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// upgrader accepts the origins CORS accepts. Requests without an Origin
// header are not browsers and are let through.
func (h *Handler) upgrader() *websocket.Upgrader {
	allowed := map[string]bool{}
	for _, o := range h.cors.AllowedOrigins {
		allowed[o] = true
	}
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || len(allowed) == 0 || allowed["*"] || allowed[origin]
		},
	}
}

// @Summary      Watch module
// @Description  Websocket. Pushes the module on connect and whenever it changes, polled every interval_ms (default 1000, max 10000). Sends a "deleted" frame and closes when the module is removed.
// @Tags         modules
// @Param        moduleId     path   string  true   "Module ID"
// @Param        interval_ms  query  int     false  "Poll interval in milliseconds"
// @Success      101
// @Failure      404  {object}  errorResponse
// @Router       /modules/{moduleId}/watch [get]
// @Security     BearerAuth
func (h *Handler) watchModule(c *gin.Context) {
	ctx := c.Request.Context()
	moduleID := c.Param("moduleId")
	interval := h.parseInterval(c)

	// Unknown ids get a plain HTTP 404 instead of an upgraded socket.
	m, err := h.services.Modules.Get(ctx, moduleID)
	if err != nil {
		h.respondError(c, err, "watch_module_lookup_failed", "module_id", moduleID)
		return
	}

	conn, err := h.upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	metrics.WatchOpened()
	defer metrics.WatchClosed()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	if err := writeFrame(conn, wsEnvelope{Type: frameModule, Data: m}); err != nil {
		h.log.Infow("ws_write_failed_initial", "err", err)
		return
	}
	last := m.UpdatedAt

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-ticker.C:
			next, changed, err := h.pollModule(ctx, moduleID, last)
			switch {
			case errors.Is(err, service.ErrNotFound):
				_ = writeFrame(conn, wsEnvelope{Type: frameDeleted, Data: gin.H{"id": moduleID}})
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "module deleted"),
					time.Now().Add(writeWait))
				return
			case err != nil:
				h.log.Errorw("ws_poll_failed", "err", err, "module_id", moduleID)
				if werr := writeFrame(conn, wsEnvelope{Type: frameError, Error: "failed to load module"}); werr != nil {
					return
				}
			case changed:
				last = next.UpdatedAt
				if err := writeFrame(conn, wsEnvelope{Type: frameModule, Data: next}); err != nil {
					h.log.Infow("ws_write_failed", "err", err)
					return
				}
			}
		}
	}
}

func (h *Handler) pollModule(ctx context.Context, id string, since time.Time) (models.Module, bool, error) {
	m, err := h.services.Modules.Get(ctx, id)
	if err != nil {
		return models.Module{}, false, err
	}
	return m, !m.UpdatedAt.Equal(since), nil
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
