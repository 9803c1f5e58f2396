// Package response 提供统一的 HTTP 响应格式
// 所有 API 都返回 {success, message?, data?} 结构，便于前端处理
package response

import (
	"math"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
// success: 请求是否成功，始终存在
// message: 提示信息，为空时省略
// data: 响应数据，为假值时省略
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Cookie 响应前写入的 Cookie 指令
type Cookie struct {
	Name     string
	Value    string
	MaxAge   int // 0 表示会话 Cookie，负数表示删除
	Path     string
	HTTPOnly bool
	Secure   bool
}

// JSON 写入统一格式的响应
// 参数:
//   - c: Gin 上下文
//   - success: 是否成功
//   - status: HTTP 状态码，由调用方决定，不根据 success 推断
//   - message: 提示信息
//   - data: 响应数据，nil、false、数值 0、空字符串以及 nil 指针/切片/map 不会出现在响应中
//   - cookies: 在写响应体之前设置的 Cookie
func JSON(c *gin.Context, success bool, status int, message string, data interface{}, cookies ...Cookie) {
	for _, ck := range cookies {
		path := ck.Path
		if path == "" {
			path = "/"
		}
		c.SetCookie(ck.Name, ck.Value, ck.MaxAge, path, "", ck.Secure, ck.HTTPOnly)
	}

	resp := Response{Success: success, Message: message}
	if truthy(data) {
		resp.Data = data
	}
	c.JSON(status, resp)
}

// Success 返回 200 成功响应
func Success(c *gin.Context, message string, data interface{}, cookies ...Cookie) {
	JSON(c, true, http.StatusOK, message, data, cookies...)
}

// Created 返回 201 创建成功响应
func Created(c *gin.Context, message string, data interface{}) {
	JSON(c, true, http.StatusCreated, message, data)
}

// Fail 返回失败响应
// 参数:
//   - c: Gin 上下文
//   - status: HTTP 状态码
//   - message: 错误信息
//   - data: 附加数据（例如字段校验错误列表）
func Fail(c *gin.Context, status int, message string, data interface{}) {
	JSON(c, false, status, message, data)
}

// NotFound 返回 404 路由不存在
func NotFound(c *gin.Context) {
	JSON(c, false, http.StatusNotFound, "404 not found!", nil)
}

// truthy 判断 data 是否应该写入响应
// 空的非 nil 切片和 map 视为真值
func truthy(data interface{}) bool {
	if data == nil {
		return false
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !v.IsNil()
	case reflect.Bool:
		return v.Bool()
	case reflect.String:
		return v.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		return f != 0 && !math.IsNaN(f)
	}
	return true
}
