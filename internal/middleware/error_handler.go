package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"wallpaper-admin/pkg/apperr"
	"wallpaper-admin/pkg/jwt"
	"wallpaper-admin/pkg/response"
)

// 错误响应消息
const (
	MessageInternalError = "Something went wrong!"
	MessageInvalidID     = "Invalid ID!"
	MessageInvalidToken  = "Invalid token or token expired, authorization denied"
	MessageExpiredToken  = "Token expired, please login again"
)

// ErrorHandler 创建错误转换中间件
// 处理器通过 c.Error 上报错误，本中间件把最后一个错误转换为统一响应并记录日志
// 必须注册在所有路由之前
func ErrorHandler(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status, message := TranslateError(err)

		entry := log.WithError(err).WithFields(logrus.Fields{
			"request_id": RequestIDFrom(c),
			"method":     c.Request.Method,
			"route":      c.FullPath(),
			"status":     status,
		})
		if status >= http.StatusInternalServerError {
			// pkg/errors 包装的错误带有调用栈
			entry.WithField("stack", fmt.Sprintf("%+v", err)).Error("request failed")
		} else {
			entry.Warn("request failed")
		}

		if c.Writer.Written() {
			return
		}
		response.Fail(c, status, message, nil)
	}
}

// TranslateError 将错误转换为 HTTP 状态码和消息
// 未识别的错误一律视为 500，不向客户端暴露细节
func TranslateError(err error) (int, string) {
	var (
		validation *apperr.ValidationError
		duplicate  *apperr.DuplicateKeyError
		cast       *apperr.CastError
		custom     *apperr.Error
	)

	switch {
	case errors.As(err, &validation):
		if msg := validation.First(); msg != "" {
			return http.StatusBadRequest, msg
		}
		return http.StatusBadRequest, MessageInternalError
	case errors.As(err, &duplicate):
		return http.StatusBadRequest, duplicate.Error()
	case errors.As(err, &cast):
		return http.StatusBadRequest, MessageInvalidID
	case errors.Is(err, jwt.ErrExpiredToken):
		return http.StatusUnauthorized, MessageExpiredToken
	case errors.Is(err, jwt.ErrInvalidToken):
		return http.StatusUnauthorized, MessageInvalidToken
	case errors.As(err, &custom):
		return custom.Status, custom.Message
	}
	return http.StatusInternalServerError, MessageInternalError
}
