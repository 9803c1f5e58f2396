package middleware

import (
	"github.com/gin-gonic/gin"

	"wallpaper-admin/pkg/util"
)

// RequestIDHeader 请求 ID 的请求头和响应头名称
const RequestIDHeader = "X-Request-ID"

const requestIDContextKey = "request_id"

// RequestID 为每个请求分配 ID
// 客户端传入的 X-Request-ID 会被沿用，否则生成新的 UUID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = util.GenerateUUID()
		}
		c.Set(requestIDContextKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom 从上下文获取请求 ID，未设置时返回空字符串
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}
