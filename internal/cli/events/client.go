// Package events 订阅管理端的实时事件推送
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// 消息类型常量
const (
	TypeHeartbeat = "heartbeat"
	TypeConnected = "connected"
	TypePong      = "pong"
	TypeError     = "error"
)

// EventsPath 事件推送的 WebSocket 路径
const EventsPath = "/api/v1/admin/events"

// heartbeatInterval 心跳间隔
const heartbeatInterval = 30 * time.Second

// Message WebSocket 消息结构
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	MessageID string          `json:"message_id,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// Client 事件订阅客户端
type Client struct {
	url       string
	token     string
	conn      *websocket.Conn
	sendChan  chan []byte
	done      chan struct{}
	mu        sync.Mutex
	isRunning bool
	onMessage func(*Message)
}

// NewClient 创建事件订阅客户端
// serverURL: HTTP 服务器地址（如 http://localhost:3001）
// token: access_token
func NewClient(serverURL, token string) *Client {
	wsURL := strings.TrimRight(serverURL, "/")
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)

	return &Client{
		url:      wsURL + EventsPath,
		token:    token,
		sendChan: make(chan []byte, 16),
		done:     make(chan struct{}),
	}
}

// URL 连接地址
func (c *Client) URL() string {
	return c.url
}

// OnMessage 设置消息回调，在读协程中调用
func (c *Client) OnMessage(handler func(*Message)) {
	c.onMessage = handler
}

// Connect 连接服务器并启动读写协程
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return fmt.Errorf("客户端已在运行")
	}
	c.mu.Unlock()

	header := http.Header{}
	header.Set("Cookie", "access_token="+c.token)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.url, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("连接失败 (HTTP %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("连接失败: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.isRunning = true
	c.done = make(chan struct{})
	c.mu.Unlock()

	go c.readPump()
	go c.writePump()
	return nil
}

// Done 连接关闭时关闭
func (c *Client) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Disconnect 断开连接
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		return
	}
	c.isRunning = false
	close(c.done)

	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
}

// SendHeartbeat 发送一次心跳，服务端以相同 message_id 回复 pong
func (c *Client) SendHeartbeat() (string, error) {
	id := uuid.NewString()
	data, err := json.Marshal(&Message{Type: TypeHeartbeat, MessageID: id, Timestamp: time.Now().UnixMilli()})
	if err != nil {
		return "", err
	}

	select {
	case c.sendChan <- data:
		return id, nil
	case <-c.Done():
		return "", fmt.Errorf("连接已关闭")
	default:
		return "", fmt.Errorf("发送缓冲区已满")
	}
}

// readPump 读取消息
func (c *Client) readPump() {
	defer c.Disconnect()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if c.onMessage != nil {
			c.onMessage(&msg)
		}
	}
}

// writePump 发送消息和定时心跳
func (c *Client) writePump() {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	done := c.Done()
	for {
		select {
		case <-done:
			return

		case data := <-c.sendChan:
			if err := c.write(data); err != nil {
				c.Disconnect()
				return
			}

		case <-ticker.C:
			if _, err := c.SendHeartbeat(); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isRunning {
		return fmt.Errorf("连接已关闭")
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}
