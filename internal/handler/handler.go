// Package handler 提供 HTTP 请求处理器
// 处理器负责输入校验和响应组装，业务错误通过 c.Error 交给 ErrorHandler 转换
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallpaper-admin/internal/validator"
	"wallpaper-admin/pkg/response"
)

// invalid 返回 400 和字段错误列表
func invalid(c *gin.Context, message string, issues validator.Issues) {
	response.Fail(c, http.StatusBadRequest, message, issues)
}

// readBody 读取原始请求体，失败时上报错误并返回 false
func readBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.Error(err)
		return nil, false
	}
	return body, true
}
