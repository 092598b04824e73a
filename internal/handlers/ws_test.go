package handlers

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/types"
)

func newWebSocketTestServer(t *testing.T, userID uint) *httptest.Server {
	t.Helper()

	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ws", func(ctx *gin.Context) {
		user := models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleUser}
		user.ID = userID
		ctx.Set(types.ContextUserKey, user)
		WebSocket(ctx)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	return server
}

func dialWebSocket(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	header := http.Header{"Origin": []string{"http://localhost:3000"}}

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}

	return conn
}

func TestWebSocketDeliversNotifications(t *testing.T) {
	server := newWebSocketTestServer(t, 7)

	conn := dialWebSocket(t, server)
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}

	var welcome map[string]string
	if err := conn.ReadJSON(&welcome); err != nil {
		t.Fatalf("Failed to read welcome message: %v", err)
	}
	if welcome["type"] != "connected" {
		t.Errorf("welcome type = %q, want connected", welcome["type"])
	}

	// The connection is registered before the welcome message is
	// written, so a broadcast after reading it must arrive.
	BroadcastNotification(7, types.NotificationResponse{ID: 1, UserID: 7, Message: "hello"})

	var pushed struct {
		Type         string                     `json:"type"`
		Notification types.NotificationResponse `json:"notification"`
	}
	if err := conn.ReadJSON(&pushed); err != nil {
		t.Fatalf("Failed to read pushed notification: %v", err)
	}
	if pushed.Type != "notification" {
		t.Errorf("push type = %q, want notification", pushed.Type)
	}
	if pushed.Notification.Message != "hello" || pushed.Notification.UserID != 7 {
		t.Errorf("pushed notification = %+v, want the broadcast payload", pushed.Notification)
	}
}

func TestWebSocketBroadcastSkipsOtherUsers(t *testing.T) {
	server := newWebSocketTestServer(t, 7)

	conn := dialWebSocket(t, server)
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}

	var welcome map[string]string
	if err := conn.ReadJSON(&welcome); err != nil {
		t.Fatalf("Failed to read welcome message: %v", err)
	}

	BroadcastNotification(8, types.NotificationResponse{ID: 1, UserID: 8, Message: "not for you"})

	if err := conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}
	var unexpected map[string]interface{}
	if err := conn.ReadJSON(&unexpected); err == nil {
		t.Errorf("received %+v, want nothing on another user's stream", unexpected)
	}
}

func TestWebSocketStopsPingerOnDisconnect(t *testing.T) {
	server := newWebSocketTestServer(t, 9)

	before := runtime.NumGoroutine()

	conn := dialWebSocket(t, server)
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}
	var welcome map[string]string
	if err := conn.ReadJSON(&welcome); err != nil {
		t.Fatalf("Failed to read welcome message: %v", err)
	}
	conn.Close()

	// The handler and its ping goroutine must both wind down once the
	// client hangs up; the goroutine count returns to the pre-dial
	// baseline instead of holding a pinger per dead connection.
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= before {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Errorf("goroutines = %d after disconnect, want at most the pre-dial %d", runtime.NumGoroutine(), before)
}
