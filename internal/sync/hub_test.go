package sync

import (
	"bufio"
	"encoding/json"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTCPSubscriberReceivesBroadcast(t *testing.T) {
	hub := NewHub()
	srv := NewServer("127.0.0.1:0", hub, zerolog.Nop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(ln) }()
	defer srv.Close()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	rd := bufio.NewReader(conn)
	welcome, err := rd.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, welcome, `"welcome"`)

	require.Eventually(t, func() bool { return hub.Stats().TCPClients == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastJSON(FavoriteEvent{Type: EventFavoriteAdded, MovieID: "42", Count: 1, At: time.Now().UTC()})

	line, err := rd.ReadString('\n')
	require.NoError(t, err)
	var ev FavoriteEvent
	require.NoError(t, json.Unmarshal([]byte(line), &ev))
	assert.Equal(t, EventFavoriteAdded, ev.Type)
	assert.Equal(t, "42", ev.MovieID)
}

func TestServerCloseStopsServe(t *testing.T) {
	srv := NewServer("127.0.0.1:0", NewHub(), zerolog.Nop())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	require.Eventually(t, func() bool {
		srv.mu.Lock()
		defer srv.mu.Unlock()
		return srv.ln != nil
	}, time.Second, 10*time.Millisecond)
	require.NoError(t, srv.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Close")
	}
}

func TestWebsocketSubscriber(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	r.GET("/ws", WSHandler(hub, zerolog.Nop()))
	ts := httptest.NewServer(r)
	defer ts.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer ws.Close()
	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))

	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), "websocket")

	require.Eventually(t, func() bool { return hub.Stats().WSClients == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastJSON(ThemeEvent{Type: EventTheme, DarkMode: true})
	_, msg, err = ws.ReadMessage()
	require.NoError(t, err)

	var ev ThemeEvent
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, EventTheme, ev.Type)
	assert.True(t, ev.DarkMode)
}
