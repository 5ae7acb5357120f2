package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mro-inventory/internal/middleware"
)

var testSecret = []byte("ws-secret")

type staticPermissions map[string][]string

func (p staticPermissions) CodesForRole(_ context.Context, role string) ([]string, error) {
	return p[role], nil
}

func newServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub(zap.NewNop())
	go hub.Run(ctx)

	auth := middleware.NewAuthorizer(testSecret, staticPermissions{
		"technician": {"inventory.read"},
		"guest":      {},
	}, time.Minute)

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { ServeWs(ctx, hub, auth, c) })
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func token(t *testing.T, role string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "role": role}).SignedString(testSecret)
	require.NoError(t, err)
	return s
}

func wsURL(srv *httptest.Server, tok string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + tok
}

func TestServeWsRejectsMissingToken(t *testing.T) {
	_, srv := newServer(t)

	_, resp, err := gorillaws.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServeWsRejectsRoleWithoutRead(t *testing.T) {
	_, srv := newServer(t)

	_, resp, err := gorillaws.DefaultDialer.Dial(wsURL(srv, token(t, "guest")), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPublishReachesClient(t *testing.T) {
	hub, srv := newServer(t)

	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL(srv, token(t, "technician")), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish("inventory_doc_posted", map[string]interface{}{"doc_no": "RCV-000001"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var got Event
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "inventory_doc_posted", got.Event)
	assert.Equal(t, "RCV-000001", got.Data["doc_no"])
}

func TestPublishDoesNotBlockWithoutRunLoop(t *testing.T) {
	hub := NewHub(nil)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.Publish("inventory_doc_posted", nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked")
	}
}
