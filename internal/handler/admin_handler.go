package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wallpaper-admin/internal/middleware"
	"wallpaper-admin/internal/service"
	"wallpaper-admin/internal/validator"
	"wallpaper-admin/pkg/response"
)

// AdminHandler 管理员请求处理器
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler 创建 AdminHandler 实例
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// List 分页获取管理员列表
// page 和 limit 无法解析或小于 1 时使用默认值 1 和 10
// @Summary 管理员列表
// @Tags 管理员
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response{data=service.AdminList}
// @Router /api/v1/admin/auth [get]
func (h *AdminHandler) List(c *gin.Context) {
	q := validator.NewQuery(c.Request.URL.Query())
	page := q.PositiveInt("page", service.DefaultPage)
	limit := q.PositiveInt("limit", service.DefaultLimit)

	list, err := h.adminService.List(c.Request.Context(), page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, "Admins retrieved successfully", list)
}

// Get 获取管理员详情
// @Summary 管理员详情
// @Tags 管理员
// @Produce json
// @Param id path string true "管理员ID"
// @Success 200 {object} response.Response{data=model.AdminUser}
// @Router /api/v1/admin/auth/{id} [get]
func (h *AdminHandler) Get(c *gin.Context) {
	admin, err := h.adminService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, "Admin retrieved successfully", admin)
}

// Delete 删除管理员，不能删除自己
// @Summary 删除管理员
// @Tags 管理员
// @Produce json
// @Param id path string true "管理员ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/auth/{id} [delete]
func (h *AdminHandler) Delete(c *gin.Context) {
	current, ok := middleware.CurrentAdmin(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "No access token found", nil)
		return
	}

	if err := h.adminService.Delete(c.Request.Context(), current.Profile.ID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, "Admin deleted successfully", nil)
}
