package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"wallpaper-admin/pkg/apperr"
)

// ErrTooManyLogins 登录尝试次数超限
var ErrTooManyLogins = apperr.TooManyRequests("Too many login attempts, please try again later")

// Limiter 固定窗口限流器，由 cache.RedisCache 实现
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// LoginRateLimit 创建登录限流中间件
// 按客户端 IP 计数，每分钟最多 perMinute 次
// limiter 为 nil 或 perMinute 不大于 0 时不限流；限流器出错时放行并记录警告
func LoginRateLimit(limiter Limiter, perMinute int, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || perMinute <= 0 {
			c.Next()
			return
		}

		key := "ratelimit:login:" + c.ClientIP()
		ok, err := limiter.Allow(c.Request.Context(), key, perMinute, time.Minute)
		if err != nil {
			log.WithError(err).WithField("key", key).Warn("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if !ok {
			c.Error(ErrTooManyLogins)
			c.Abort()
			return
		}

		c.Next()
	}
}
