package infra

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pitchside/platform/internal/domain"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsSendBuffer = 32
)

// LiveHub manages WebSocket connections grouped per session, so everyone
// watching a match receives events as coaches record them.
type LiveHub struct {
	mu       sync.RWMutex
	rooms    map[uuid.UUID]map[string]*liveConn // sessionID -> connID -> conn
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

type liveConn struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
}

// LiveMessage is the payload sent to live viewers.
type LiveMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// NewLiveHub creates a hub. Origin checks are delegated to the CORS layer.
func NewLiveHub(logger *slog.Logger) *LiveHub {
	return &LiveHub{
		rooms: make(map[uuid.UUID]map[string]*liveConn),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Serve upgrades an HTTP request to a WebSocket and attaches the viewer to
// the session room until the connection drops.
func (h *LiveHub) Serve(w http.ResponseWriter, r *http.Request, sessionID uuid.UUID) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "session_id", sessionID, "error", err)
		return
	}

	conn := &liveConn{
		id:   uuid.NewString(),
		ws:   ws,
		send: make(chan []byte, wsSendBuffer),
	}
	h.join(sessionID, conn)
	h.logger.Debug("live viewer attached", "session_id", sessionID, "conn_id", conn.id)

	go h.writePump(conn)
	h.readPump(sessionID, conn)
}

func (h *LiveHub) join(sessionID uuid.UUID, conn *liveConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[sessionID] == nil {
		h.rooms[sessionID] = make(map[string]*liveConn)
	}
	h.rooms[sessionID][conn.id] = conn
}

func (h *LiveHub) leave(sessionID uuid.UUID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[sessionID]; ok {
		if conn, ok := conns[connID]; ok {
			delete(conns, connID)
			close(conn.send)
		}
		if len(conns) == 0 {
			delete(h.rooms, sessionID)
		}
	}
}

// readPump discards inbound frames (the live feed is one-way) and tears the
// connection down on error or close.
func (h *LiveHub) readPump(sessionID uuid.UUID, conn *liveConn) {
	defer func() {
		h.leave(sessionID, conn.id)
		_ = conn.ws.Close()
	}()

	conn.ws.SetReadLimit(512)
	_ = conn.ws.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := conn.ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *LiveHub) writePump(conn *liveConn) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.ws.Close()
	}()

	for {
		select {
		case payload, ok := <-conn.send:
			_ = conn.ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = conn.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// publish fans a message out to every viewer of a session.
func (h *LiveHub) publish(sessionID uuid.UUID, event string, data any) {
	payload, err := json.Marshal(LiveMessage{Event: event, Data: data})
	if err != nil {
		h.logger.Error("ws marshal error", "session_id", sessionID, "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.rooms[sessionID] {
		select {
		case conn.send <- payload:
		default:
			h.logger.Warn("ws send buffer full", "conn_id", conn.id, "session_id", sessionID)
		}
	}
}

// BroadcastEvent pushes a freshly recorded match event and the score it
// produced to everyone watching the session.
func (h *LiveHub) BroadcastEvent(sessionID uuid.UUID, event *domain.MatchEvent, score domain.Score) {
	h.publish(sessionID, "match.event", map[string]any{
		"event": event,
		"score": score,
	})
}

// BroadcastTimer pushes the latest timer state to everyone watching.
func (h *LiveHub) BroadcastTimer(sessionID uuid.UUID, state any) {
	h.publish(sessionID, "match.timer", state)
}

// ViewerCount returns the number of attached viewers for a session.
func (h *LiveHub) ViewerCount(sessionID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[sessionID])
}

func (h *LiveHub) totalViewers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	count := 0
	for _, conns := range h.rooms {
		count += len(conns)
	}
	return count
}

// Shutdown closes all connections gracefully.
func (h *LiveHub) Shutdown(_ context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sessionID, conns := range h.rooms {
		for _, conn := range conns {
			close(conn.send)
		}
		delete(h.rooms, sessionID)
	}
}
