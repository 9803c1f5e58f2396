package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"wallpaper-admin/pkg/response"
)

// Logger 创建请求日志中间件
// 日志行格式: <method> <url> <status> <content-length> - <response-time> ms
// 返回:
//   - gin.HandlerFunc: Gin 中间件函数
func Logger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// 处理器可能改写路径，提前保存
		url := c.Request.URL.RequestURI()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		entry := log.WithFields(logrus.Fields{
			"request_id": RequestIDFrom(c),
			"client_ip":  c.ClientIP(),
		})
		line := formatLogLine(c.Request.Method, url, status, c.Writer.Size(), latency)

		// 根据状态码选择日志级别
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error(line)
		case status >= http.StatusBadRequest:
			entry.Warn(line)
		default:
			entry.Info(line)
		}
	}
}

// formatLogLine 格式化日志行
// 没有写入响应体时长度显示为 "-"
func formatLogLine(method, url string, status, size int, latency time.Duration) string {
	length := "-"
	if size >= 0 {
		length = strconv.Itoa(size)
	}
	ms := float64(latency.Nanoseconds()) / float64(time.Millisecond)
	return fmt.Sprintf("%s %s %d %s - %.3f ms", method, url, status, length, ms)
}

// Recovery 创建 panic 恢复中间件
// 捕获处理器中的 panic，记录调用栈并返回 500
func Recovery(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.WithFields(logrus.Fields{
					"request_id": RequestIDFrom(c),
					"panic":      err,
					"stack":      string(debug.Stack()),
				}).Error("panic recovered")

				if !c.Writer.Written() {
					response.Fail(c, http.StatusInternalServerError, MessageInternalError, nil)
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
