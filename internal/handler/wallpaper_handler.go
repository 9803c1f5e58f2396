package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallpaper-admin/internal/middleware"
	"wallpaper-admin/internal/service"
	"wallpaper-admin/pkg/response"
	"wallpaper-admin/pkg/util"
)

// WallpaperHandler 壁纸请求处理器
type WallpaperHandler struct {
	wallpaperService *service.WallpaperService
}

// NewWallpaperHandler 创建 WallpaperHandler 实例
func NewWallpaperHandler(wallpaperService *service.WallpaperService) *WallpaperHandler {
	return &WallpaperHandler{
		wallpaperService: wallpaperService,
	}
}

// Create 创建壁纸，创建者为当前管理员
// @Summary 创建壁纸
// @Tags 壁纸
// @Accept json
// @Produce json
// @Success 201 {object} response.Response{data=model.Wallpaper}
// @Router /api/v1/admin/wallpapers [post]
func (h *WallpaperHandler) Create(c *gin.Context) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "No access token found", nil)
		return
	}

	body, ok := readBody(c)
	if !ok {
		return
	}

	req, issues := parseCreateWallpaper(body)
	if issues != nil {
		invalid(c, msgInvalidInput, issues)
		return
	}

	wallpaper, err := h.wallpaperService.Create(c.Request.Context(), admin.Profile.ID, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Created(c, "Wallpaper created successfully", wallpaper)
}

// Update 更新壁纸
// 先检查 ID 格式，再校验请求体
// @Summary 更新壁纸
// @Tags 壁纸
// @Accept json
// @Produce json
// @Param id path string true "壁纸ID"
// @Success 200 {object} response.Response{data=model.Wallpaper}
// @Router /api/v1/admin/wallpapers/{id} [put]
func (h *WallpaperHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !util.IsValidID(id) {
		c.Error(service.ErrInvalidWallpaperID)
		return
	}

	body, ok := readBody(c)
	if !ok {
		return
	}

	patch, issues := parseUpdateWallpaper(body)
	if issues != nil {
		invalid(c, msgInvalidInput, issues)
		return
	}

	wallpaper, err := h.wallpaperService.Update(c.Request.Context(), id, patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, "Wallpaper updated successfully", wallpaper)
}

// Delete 删除壁纸
// @Summary 删除壁纸
// @Tags 壁纸
// @Produce json
// @Param id path string true "壁纸ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/wallpapers/{id} [delete]
func (h *WallpaperHandler) Delete(c *gin.Context) {
	if err := h.wallpaperService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, "Wallpaper deleted successfully", nil)
}

// Get 获取壁纸详情
// 每次查看都会使下载次数加 1，返回的是自增后的值
// @Summary 壁纸详情
// @Tags 壁纸
// @Produce json
// @Param id path string true "壁纸ID"
// @Success 200 {object} response.Response{data=model.Wallpaper}
// @Router /api/v1/admin/wallpapers/{id} [get]
func (h *WallpaperHandler) Get(c *gin.Context) {
	wallpaper, err := h.wallpaperService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, "Wallpaper retrieved successfully", wallpaper)
}

// List 分页获取壁纸列表
// @Summary 壁纸列表
// @Tags 壁纸
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param category query string false "分类或 all"
// @Param wallpaperStyle query string false "风格或 all"
// @Param keyword query string false "关键词"
// @Param sortBy query string false "createdAt / downloadCount / title"
// @Param sortOrder query string false "asc / desc"
// @Param isActive query string false "true / false"
// @Success 200 {object} response.Response{data=service.WallpaperList}
// @Router /api/v1/admin/wallpapers [get]
func (h *WallpaperHandler) List(c *gin.Context) {
	query, issues := parseWallpaperQuery(c.Request.URL.Query())
	if issues != nil {
		invalid(c, msgInvalidQuery, issues)
		return
	}

	list, err := h.wallpaperService.List(c.Request.Context(), query.Filter, query.Page, query.Limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, "Wallpapers retrieved successfully", list)
}

// Home 获取首页聚合数据
// @Summary 首页数据
// @Tags 壁纸
// @Produce json
// @Success 200 {object} response.Response{data=service.HomeData}
// @Router /api/v1/admin/wallpapers/home [get]
func (h *WallpaperHandler) Home(c *gin.Context) {
	home, err := h.wallpaperService.Home(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, "Home screen data retrieved successfully", home)
}

// DownloadCountData 下载计数响应
type DownloadCountData struct {
	DownloadCount int64 `json:"downloadCount"`
}

// IncrementDownload 下载次数加 1
// @Summary 记录一次下载
// @Tags 壁纸
// @Produce json
// @Param id path string true "壁纸ID"
// @Success 200 {object} response.Response{data=DownloadCountData}
// @Router /api/v1/admin/wallpapers/{id}/download [post]
func (h *WallpaperHandler) IncrementDownload(c *gin.Context) {
	count, err := h.wallpaperService.IncrementDownload(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, "Download count incremented successfully", DownloadCountData{DownloadCount: count})
}
