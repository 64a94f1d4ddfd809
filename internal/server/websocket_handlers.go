package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/placepix/placepix/internal/stats"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, you should check against allowed origins
		return true
	},
}

// StatsMessage is one update pushed over the live stats stream.
type StatsMessage struct {
	Type     string          `json:"type"`
	Snapshot *stats.Snapshot `json:"snapshot"`
	Time     string          `json:"time"`
}

// statsLiveHandler streams stats snapshots over a WebSocket connection at a
// fixed interval until the client disconnects.
func (s *Server) statsLiveHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("Live stats connection established", "remote_addr", r.RemoteAddr)

	s.streamStats(conn)
}

// streamStats pushes snapshots until the connection closes. The reader
// goroutine exists only to surface client disconnects and answer control
// frames; clients are not expected to send data.
func (s *Server) streamStats(conn *websocket.Conn) {
	// Set read deadline to prevent hanging connections
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					slog.Error("WebSocket error", "error", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(s.liveInterval)
	defer ticker.Stop()
	pinger := time.NewTicker(30 * time.Second)
	defer pinger.Stop()

	// Send an immediate snapshot so clients do not wait a full interval.
	if !s.sendSnapshot(conn) {
		return
	}

	for {
		select {
		case <-done:
			return
		case <-pinger.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		case <-ticker.C:
			if !s.sendSnapshot(conn) {
				return
			}
		}
	}
}

// sendSnapshot writes one stats snapshot, reporting whether the connection
// is still usable.
func (s *Server) sendSnapshot(conn *websocket.Conn) bool {
	snap := s.store.Snapshot()
	msg := StatsMessage{
		Type:     "stats",
		Snapshot: &snap,
		Time:     time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("Failed to marshal stats snapshot", "error", err)
		return false
	}

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return false
	}

	websocketMessagesTotal.Inc()
	return true
}
