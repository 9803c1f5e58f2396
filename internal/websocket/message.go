// Package websocket 提供管理端实时事件推送
// 服务端在资源变更时向所有已连接的管理员广播事件
package websocket

import (
	"time"
)

// MessageType 消息类型常量
const (
	// 客户端 → 服务端
	TypeHeartbeat = "heartbeat" // 心跳

	// 服务端 → 客户端
	TypeConnected = "connected" // 连接建立
	TypePong      = "pong"      // 心跳响应
	TypeError     = "error"     // 错误消息
)

// Message WebSocket 消息结构
// 所有消息都使用这个统一的结构
type Message struct {
	Type      string      `json:"type"`                 // 消息类型
	Payload   interface{} `json:"payload"`              // 消息内容
	Timestamp int64       `json:"timestamp"`            // 时间戳（毫秒）
	MessageID string      `json:"message_id,omitempty"` // 消息ID，用于追踪
}

// NewMessage 创建新消息
func NewMessage(msgType string, payload interface{}) *Message {
	return &Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewMessageWithID 创建带消息ID的新消息
func NewMessageWithID(msgType string, payload interface{}, messageID string) *Message {
	msg := NewMessage(msgType, payload)
	msg.MessageID = messageID
	return msg
}

// ConnectedPayload 连接建立后发送给客户端的内容
type ConnectedPayload struct {
	AdminID string `json:"adminId"`
	Clients int    `json:"clients"` // 当前在线连接数（含自身）
}

// ErrorPayload 错误消息 Payload
type ErrorPayload struct {
	Message string `json:"message"`
}
