package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"wallpaper-admin/pkg/util"
)

// Relay 跨实例的事件中继
// 启用 Redis 时由 cache.RedisCache 实现
type Relay interface {
	PublishEvent(ctx context.Context, data []byte) error
	SubscribeEvents(ctx context.Context) <-chan []byte
}

// Hub 是 WebSocket 连接的中心管理器
// 负责：
// 1. 管理所有管理员连接
// 2. 将事件广播给每个连接
type Hub struct {
	// 当前在线的客户端集合
	clients map[*Client]struct{}

	// 互斥锁，保护并发访问
	mu sync.RWMutex

	relay Relay
	log   *logrus.Entry
}

// NewHub 创建 Hub 实例
// 参数:
//   - log: 日志
//   - relay: 事件中继，为 nil 时只在本实例内广播
func NewHub(log *logrus.Entry, relay Relay) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		relay:   relay,
		log:     log.WithField("component", "hub"),
	}
}

// Run 启动 Hub 的主循环，阻塞到 ctx 取消
// 有中继时把收到的事件转发给本实例的连接；退出时关闭所有连接
func (h *Hub) Run(ctx context.Context) {
	if h.relay != nil {
		events := h.relay.SubscribeEvents(ctx)
		for data := range events {
			h.broadcast(data)
		}
	}
	<-ctx.Done()

	h.mu.Lock()
	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
	h.mu.Unlock()
}

// Publish 发布一个事件
// 有中继时经中继发送，由各实例的 Run 负责投递；中继失败时退回本地广播
func (h *Hub) Publish(ctx context.Context, eventType string, payload interface{}) {
	data, err := json.Marshal(NewMessageWithID(eventType, payload, util.GenerateUUID()))
	if err != nil {
		h.log.WithError(err).WithField("event", eventType).Error("failed to encode event")
		return
	}

	if h.relay != nil {
		err := h.relay.PublishEvent(ctx, data)
		if err == nil {
			return
		}
		h.log.WithError(err).WithField("event", eventType).Warn("relay publish failed, broadcasting locally")
	}
	h.broadcast(data)
}

// Register 注册客户端
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	h.log.WithField("admin_id", client.adminID).Info("admin client registered")
}

// Unregister 注销客户端并关闭其发送通道
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()

	if ok {
		h.log.WithField("admin_id", client.adminID).Info("admin client unregistered")
	}
	client.Close()
}

// ClientCount 当前在线连接数
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcast 向所有连接投递已序列化的消息
func (h *Hub) broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		client.enqueue(data)
	}
}
