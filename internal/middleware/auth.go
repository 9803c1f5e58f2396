// Package middleware 提供 HTTP 请求的中间件
// 包括 Cookie 认证、错误转换、CORS 跨域、日志记录和登录限流
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallpaper-admin/pkg/jwt"
	"wallpaper-admin/pkg/response"
)

// AccessTokenCookie 存放 Access Token 的 Cookie 名称
const AccessTokenCookie = "access_token"

const adminContextKey = "admin"

// Auth 创建 Cookie 认证中间件
// 从 access_token Cookie 读取 Token，验证通过后将管理员资料存入上下文
// Token 无效或过期时交给 ErrorHandler 转换为 401
// 参数:
//   - jwtService: JWT 服务实例，用于解析和验证 Token
//
// 返回:
//   - gin.HandlerFunc: Gin 中间件函数
func Auth(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AccessTokenCookie)
		if err != nil || token == "" {
			response.Fail(c, http.StatusUnauthorized, "No access token found", nil)
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		SetCurrentAdmin(c, claims)
		c.Next()
	}
}

// SetCurrentAdmin 将管理员声明存入上下文
func SetCurrentAdmin(c *gin.Context, claims *jwt.AdminClaims) {
	c.Set(adminContextKey, claims)
}

// CurrentAdmin 从上下文获取当前管理员
// 返回:
//   - *jwt.AdminClaims: 管理员声明
//   - bool: 未经过认证中间件时为 false
func CurrentAdmin(c *gin.Context) (*jwt.AdminClaims, bool) {
	v, exists := c.Get(adminContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.AdminClaims)
	return claims, ok && claims != nil
}
