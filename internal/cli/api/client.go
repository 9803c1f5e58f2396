// Package api 封装管理端 REST API 的 HTTP 调用
// 认证通过 access_token Cookie 传递，登录时从响应的 Set-Cookie 中取出
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// AccessTokenCookie 服务端使用的认证 Cookie 名
const AccessTokenCookie = "access_token"

// Client API 客户端
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient 创建 API 客户端
// 参数:
//   - baseURL: 服务器地址，例如 http://localhost:3001
//   - token: access_token，未登录时为空
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Envelope 服务端统一响应结构
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Issue 字段校验错误
type Issue struct {
	Code    string      `json:"code"`
	Path    interface{} `json:"path"`
	Message string      `json:"message"`
}

// APIError 请求失败时的错误
type APIError struct {
	Status  int
	Message string
	Issues  []Issue
}

func (e *APIError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	}
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, fmt.Sprintf("%v: %s", is.Path, is.Message))
	}
	return fmt.Sprintf("%s (HTTP %d): %s", e.Message, e.Status, strings.Join(parts, "; "))
}

// --- 认证 ---

// AdminSummary 登录和注册返回的管理员摘要
type AdminSummary struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Email     string `json:"email"`
}

// Login 登录，返回 access_token 和管理员摘要
func (c *Client) Login(ctx context.Context, email, password string) (string, *AdminSummary, error) {
	body := map[string]string{"email": email, "password": password}
	env, resp, err := c.send(ctx, http.MethodPost, "/api/v1/admin/auth/login", nil, body)
	if err != nil {
		return "", nil, err
	}

	var token string
	for _, ck := range resp.Cookies() {
		if ck.Name == AccessTokenCookie {
			token = ck.Value
		}
	}
	if token == "" {
		return "", nil, fmt.Errorf("login response did not set %s", AccessTokenCookie)
	}

	var admin AdminSummary
	if err := json.Unmarshal(env.Data, &admin); err != nil {
		return "", nil, fmt.Errorf("解析登录响应失败: %w", err)
	}
	c.token = token
	return token, &admin, nil
}

// Logout 登出
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/admin/auth/logout", nil, nil)
	return err
}

// Me 当前管理员资料
func (c *Client) Me(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/v1/admin/auth/me", nil, nil)
}

// --- 管理员 ---

// ListAdmins 分页获取管理员列表
func (c *Client) ListAdmins(ctx context.Context, page, limit int) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/v1/admin/auth", pageQuery(page, limit), nil)
}

// GetAdmin 获取管理员
func (c *Client) GetAdmin(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/v1/admin/auth/"+url.PathEscape(id), nil, nil)
}

// DeleteAdmin 删除管理员
func (c *Client) DeleteAdmin(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/admin/auth/"+url.PathEscape(id), nil, nil)
	return err
}

// --- 壁纸 ---

// WallpaperInput 创建或更新壁纸的请求体
// 更新时只发送非空字段
type WallpaperInput struct {
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	ImageURL       *string  `json:"imageUrl,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	Category       *string  `json:"category,omitempty"`
	WallpaperStyle *string  `json:"wallpaperStyle,omitempty"`
	IsActive       *bool    `json:"isActive,omitempty"`
}

// ListWallpapers 获取壁纸列表，query 原样作为查询参数
func (c *Client) ListWallpapers(ctx context.Context, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/v1/admin/wallpapers", query, nil)
}

// GetWallpaper 获取壁纸详情，服务端会把下载次数加 1
func (c *Client) GetWallpaper(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/v1/admin/wallpapers/"+url.PathEscape(id), nil, nil)
}

// Home 获取首页聚合数据
func (c *Client) Home(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/v1/admin/wallpapers/home", nil, nil)
}

// CreateWallpaper 创建壁纸
func (c *Client) CreateWallpaper(ctx context.Context, in *WallpaperInput) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/api/v1/admin/wallpapers", nil, in)
}

// UpdateWallpaper 更新壁纸
func (c *Client) UpdateWallpaper(ctx context.Context, id string, in *WallpaperInput) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, "/api/v1/admin/wallpapers/"+url.PathEscape(id), nil, in)
}

// DeleteWallpaper 删除壁纸
func (c *Client) DeleteWallpaper(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/admin/wallpapers/"+url.PathEscape(id), nil, nil)
	return err
}

// Download 下载次数加 1，返回新的次数
func (c *Client) Download(ctx context.Context, id string) (int64, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/v1/admin/wallpapers/"+url.PathEscape(id)+"/download", nil, nil)
	if err != nil {
		return 0, err
	}
	var out struct {
		DownloadCount int64 `json:"downloadCount"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return 0, fmt.Errorf("解析响应失败: %w", err)
	}
	return out.DownloadCount, nil
}

// --- 通用请求封装 ---

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (json.RawMessage, error) {
	env, _, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body interface{}) (*Envelope, *http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: c.token})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("读取响应失败: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, nil, fmt.Errorf("解析响应失败 (HTTP %d): %w", resp.StatusCode, err)
	}

	if !env.Success {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Message}
		// 校验失败时 data 是错误列表
		if len(env.Data) > 0 && env.Data[0] == '[' {
			json.Unmarshal(env.Data, &apiErr.Issues)
		}
		return nil, nil, apiErr
	}

	return &env, resp, nil
}
