// Package service 提供业务逻辑层的实现
// 服务层封装具体的业务逻辑，协调 Repository 和事件推送
package service

import (
	"context"
)

// 管理端事件类型
const (
	EventWallpaperCreated    = "wallpaper:created"
	EventWallpaperUpdated    = "wallpaper:updated"
	EventWallpaperDeleted    = "wallpaper:deleted"
	EventWallpaperDownloaded = "wallpaper:downloaded"
	EventAdminDeleted        = "admin:deleted"
)

// EventPublisher 发布资源变更事件
// 由 websocket.Hub 实现
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{})
}

// nopPublisher 未配置推送时使用
type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, interface{}) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// IDPayload 只携带资源 ID 的事件内容
type IDPayload struct {
	ID string `json:"_id"`
}

// DownloadPayload 下载次数变更事件内容
type DownloadPayload struct {
	ID            string `json:"_id"`
	DownloadCount int64  `json:"downloadCount"`
}
