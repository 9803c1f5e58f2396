package websocket

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"wallpaper-admin/internal/middleware"
	"wallpaper-admin/pkg/jwt"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// chanRelay 用内存通道模拟 Redis 发布订阅
type chanRelay struct {
	ch chan []byte
}

func (r *chanRelay) PublishEvent(_ context.Context, data []byte) error {
	r.ch <- data
	return nil
}

func (r *chanRelay) SubscribeEvents(ctx context.Context) <-chan []byte {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case d := <-r.ch:
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// newEventServer 启动一个事件流服务，withAdmin 为 false 时不注入管理员身份
func newEventServer(t *testing.T, hub *Hub, withAdmin bool) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/events", func(c *gin.Context) {
		if withAdmin {
			middleware.SetCurrentAdmin(c, &jwt.AdminClaims{Profile: jwt.Profile{ID: "admin-1", Email: "a@example.com"}})
		}
		c.Next()
	}, NewHandler(hub, nil).ServeEvents)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL + "/events"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServeEventsRequiresAdmin(t *testing.T) {
	url := newEventServer(t, NewHub(testLogger(), nil), false)

	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestConnectAndBroadcast(t *testing.T) {
	hub := NewHub(testLogger(), nil)
	url := newEventServer(t, hub, true)

	first := dial(t, url)
	second := dial(t, url)

	for _, conn := range []*websocket.Conn{first, second} {
		msg := readMessage(t, conn)
		if msg.Type != TypeConnected {
			t.Fatalf("first message type = %q", msg.Type)
		}
		payload := msg.Payload.(map[string]interface{})
		if payload["adminId"] != "admin-1" {
			t.Errorf("payload = %v", payload)
		}
	}
	if hub.ClientCount() != 2 {
		t.Fatalf("clients = %d, want 2", hub.ClientCount())
	}

	hub.Publish(context.Background(), "wallpaper:created", map[string]string{"_id": "w1"})

	for _, conn := range []*websocket.Conn{first, second} {
		msg := readMessage(t, conn)
		if msg.Type != "wallpaper:created" {
			t.Fatalf("type = %q", msg.Type)
		}
		if msg.MessageID == "" {
			t.Error("message id should be set")
		}
		if msg.Payload.(map[string]interface{})["_id"] != "w1" {
			t.Errorf("payload = %v", msg.Payload)
		}
	}
}

func TestHeartbeat(t *testing.T) {
	hub := NewHub(testLogger(), nil)
	conn := dial(t, newEventServer(t, hub, true))
	readMessage(t, conn)

	if err := conn.WriteJSON(NewMessageWithID(TypeHeartbeat, nil, "hb-1")); err != nil {
		t.Fatal(err)
	}
	msg := readMessage(t, conn)
	if msg.Type != TypePong || msg.MessageID != "hb-1" {
		t.Fatalf("got %+v", msg)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(t, conn); msg.Type != TypeError {
		t.Fatalf("type = %q, want error", msg.Type)
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	hub := NewHub(testLogger(), nil)
	conn := dial(t, newEventServer(t, hub, true))
	readMessage(t, conn)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	// 没有连接时发布不应阻塞
	hub.Publish(context.Background(), "admin:deleted", nil)
}

func TestRelayDelivery(t *testing.T) {
	relay := &chanRelay{ch: make(chan []byte, 8)}
	hub := NewHub(testLogger(), relay)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	conn := dial(t, newEventServer(t, hub, true))
	readMessage(t, conn)

	// 模拟其他实例发布的事件
	other, _ := json.Marshal(NewMessage("wallpaper:deleted", map[string]string{"_id": "w2"}))
	relay.ch <- other

	if msg := readMessage(t, conn); msg.Type != "wallpaper:deleted" {
		t.Fatalf("type = %q", msg.Type)
	}

	hub.Publish(ctx, "wallpaper:updated", nil)
	if msg := readMessage(t, conn); msg.Type != "wallpaper:updated" {
		t.Fatalf("type = %q", msg.Type)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("hub did not stop")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("clients = %d after shutdown", hub.ClientCount())
	}
}

func TestCheckOrigin(t *testing.T) {
	check := checkOrigin([]string{"https://admin.example.com"})

	cases := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://admin.example.com", true},
		{"https://evil.example.com", false},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/events", nil)
		if tc.origin != "" {
			r.Header.Set("Origin", tc.origin)
		}
		if got := check(r); got != tc.want {
			t.Errorf("origin %q: got %v, want %v", tc.origin, got, tc.want)
		}
	}

	if !checkOrigin(nil)(httptest.NewRequest(http.MethodGet, "/events", nil)) {
		t.Error("empty allow list should accept any origin")
	}
}
