// Package cache 提供 Redis 操作的封装
// 处理登录限流计数和跨实例的管理端事件广播
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wallpaper-admin/internal/config"
)

// EventsChannel 管理端事件的发布订阅频道
const EventsChannel = "wallpaper:events"

// RedisCache 封装 Redis 客户端，提供业务相关的缓存操作
type RedisCache struct {
	client *redis.Client // Redis 客户端实例
}

// NewRedisCache 创建 RedisCache 实例
// 参数:
//   - cfg: Redis 连接配置
//
// 返回:
//   - *RedisCache: 缓存实例
//   - error: 连接错误
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// Close 关闭 Redis 连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping 检查 Redis 连接
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// ==================== 限流 ====================
// 固定窗口计数：窗口内第一次请求创建 Key 并设置过期时间，缺少过期时间的 Key 会被补设

// Allow 记录一次请求并判断是否超出限制
// 参数:
//   - ctx: 上下文
//   - key: 限流对象的 Key，如 "ratelimit:login:127.0.0.1"
//   - limit: 窗口内允许的最大请求数
//   - window: 窗口长度
//
// 返回:
//   - bool: 是否允许本次请求
//   - error: Redis 操作错误
func (c *RedisCache) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return true, err
	}
	// 没有过期时间的 Key 补设窗口：新建的 Key，或上次设置过期失败的 Key
	// 已有过期时间时不延长窗口
	if ttl.Val() < 0 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return true, err
		}
	}
	return incr.Val() <= int64(limit), nil
}

// ==================== 事件广播 ====================

// PublishEvent 发布管理端事件
// 参数:
//   - ctx: 上下文
//   - data: 已序列化的事件
func (c *RedisCache) PublishEvent(ctx context.Context, data []byte) error {
	return c.client.Publish(ctx, EventsChannel, data).Err()
}

// SubscribeEvents 订阅管理端事件
// 返回的通道在 ctx 取消后关闭
func (c *RedisCache) SubscribeEvents(ctx context.Context) <-chan []byte {
	pubsub := c.client.Subscribe(ctx, EventsChannel)
	out := make(chan []byte, 64)

	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
