package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallpaper-admin/internal/middleware"
	"wallpaper-admin/internal/service"
	"wallpaper-admin/pkg/response"
)

// AuthHandler 认证请求处理器
// 处理管理员注册、登录、登出和当前身份查询
type AuthHandler struct {
	authService  *service.AuthService
	secureCookie bool // access_token Cookie 是否带 Secure 标记
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

// Register 管理员注册
// @Summary 管理员注册
// @Tags 认证
// @Accept json
// @Produce json
// @Success 201 {object} response.Response{data=service.AdminSummary}
// @Router /api/v1/admin/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	req, issues := parseRegister(body)
	if issues != nil {
		invalid(c, msgInvalidInput, issues)
		return
	}

	summary, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Created(c, "User registered successfully", summary)
}

// Login 管理员登录
// 成功后 Token 写入 HttpOnly 的 access_token Cookie
// @Summary 管理员登录
// @Tags 认证
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=service.AdminSummary}
// @Router /api/v1/admin/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	req, issues := parseLogin(body)
	if issues != nil {
		invalid(c, msgInvalidInput, issues)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, "Login successful", result.Admin, response.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    result.Token,
		HTTPOnly: true,
		Secure:   h.secureCookie,
	})
}

// Logout 登出，清除 access_token Cookie
// 认证是无状态的，服务端不记录 Token
// @Summary 登出
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/admin/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, "Logout successful", nil, response.Cookie{
		Name:     middleware.AccessTokenCookie,
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.secureCookie,
	})
}

// Me 获取当前登录管理员的资料
// @Summary 当前管理员
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response{data=jwt.Profile}
// @Router /api/v1/admin/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "No access token found", nil)
		return
	}
	response.Success(c, "User details retrieved successfully", admin.Profile)
}
