package websocket

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"warehouse/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticParser struct {
	tokens map[string]uuid.UUID
}

func (p staticParser) ParseToken(token string) (uuid.UUID, string, error) {
	id, ok := p.tokens[token]
	if !ok {
		return uuid.Nil, "", errors.New("bad token")
	}
	return id, "qc_inspector", nil
}

func TestServeWsDeliversOnlyToRecipient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(logger.Discard())
	go hub.Run()
	t.Cleanup(hub.Stop)

	alice, bob := uuid.New(), uuid.New()
	parser := staticParser{tokens: map[string]uuid.UUID{"a": alice, "b": bob}}

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { ServeWs(hub, parser, c) })
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token="

	_, resp, err := websocket.DefaultDialer.Dial(wsURL+"nope", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	connA, _, err := websocket.DefaultDialer.Dial(wsURL+"a", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = connA.Close() })
	connB, _, err := websocket.DefaultDialer.Dial(wsURL+"b", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = connB.Close() })

	// registration is asynchronous, so keep sending until the first message lands
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = hub.SendToUser(alice, map[string]string{"type": "ping"})
			}
		}
	}()

	_ = connA.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := connA.ReadMessage()
	close(stop)
	require.NoError(t, err)
	assert.Contains(t, string(msg), "ping")

	_ = connB.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = connB.ReadMessage()
	assert.Error(t, err)
}

func TestStoppedHubRefusesClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(logger.Discard())
	go hub.Run()
	hub.Stop()

	added := make(chan bool, 1)
	go func() { added <- hub.add(&Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 1)}) }()
	select {
	case ok := <-added:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("add blocked on a stopped hub")
	}

	id := uuid.New()
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { ServeWs(hub, staticParser{tokens: map[string]uuid.UUID{"a": id}}, c) })
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws?token=a", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		assert.False(t, netErr.Timeout(), "server kept the connection open")
	}
}
