package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialStatsLive(t *testing.T, mux *http.ServeMux) *websocket.Conn {
	t.Helper()

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/stats/live"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func readStatsMessage(t *testing.T, conn *websocket.Conn) StatsMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg StatsMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestStatsLiveSendsInitialSnapshot(t *testing.T) {
	_, mux := newTestServer(t)
	conn := dialStatsLive(t, mux)

	msg := readStatsMessage(t, conn)
	assert.Equal(t, "stats", msg.Type)
	require.NotNil(t, msg.Snapshot)
	assert.Empty(t, msg.Snapshot.RecentPaths)
}

func TestStatsLiveReflectsNewRequests(t *testing.T) {
	_, mux := newTestServer(t)
	conn := dialStatsLive(t, mux)

	// Drain the initial snapshot, then generate traffic.
	readStatsMessage(t, conn)
	doRequest(mux, http.MethodGet, "/img/100/200")

	// The next periodic snapshot includes the new request.
	deadline := time.Now().Add(2 * time.Second)
	for {
		msg := readStatsMessage(t, conn)
		if len(msg.Snapshot.RecentPaths) > 0 {
			assert.Equal(t, "/img/100/200", msg.Snapshot.RecentPaths[0])
			return
		}
		require.True(t, time.Now().Before(deadline), "snapshot never reflected the request")
	}
}

func TestStatsLiveClientDisconnect(t *testing.T) {
	_, mux := newTestServer(t)
	conn := dialStatsLive(t, mux)

	readStatsMessage(t, conn)
	require.NoError(t, conn.Close())
	// The server side notices the close and stops streaming; nothing to
	// assert beyond the absence of a panic or hang.
	time.Sleep(100 * time.Millisecond)
}
