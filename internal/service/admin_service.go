package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"wallpaper-admin/internal/model"
	"wallpaper-admin/internal/repository"
	"wallpaper-admin/pkg/apperr"
	"wallpaper-admin/pkg/util"
)

// 管理员服务相关错误
var (
	ErrAdminNotFound = apperr.NotFound("Admin not found")
	ErrDeleteSelf    = apperr.BadRequest("You cannot delete your own account")
)

// AdminService 管理员服务
// 处理管理员的查询和删除
type AdminService struct {
	adminRepo *repository.AdminRepository
	events    EventPublisher
}

// NewAdminService 创建 AdminService 实例
// events 为 nil 时不推送事件
func NewAdminService(adminRepo *repository.AdminRepository, events EventPublisher) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		events:    publisherOrNop(events),
	}
}

// AdminList 管理员分页列表
type AdminList struct {
	Admins     []model.AdminUser `json:"admins"`
	Pagination AdminPagination   `json:"pagination"`
}

// List 分页获取管理员列表
// 列表和总数并发查询，任意一个失败则整体失败
// 参数:
//   - page: 页码，小于 1 时为 1
//   - limit: 每页数量，小于 1 时为 10
func (s *AdminService) List(ctx context.Context, page, limit int) (*AdminList, error) {
	page, limit = normalizePage(page, limit)

	var (
		admins []model.AdminUser
		total  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		admins, err = s.adminRepo.List(gctx, pageOffset(page, limit), limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.adminRepo.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pages := totalPages(total, limit)
	return &AdminList{
		Admins: admins,
		Pagination: AdminPagination{
			CurrentPage: page,
			TotalPages:  pages,
			TotalAdmins: total,
			Limit:       limit,
			HasNextPage: page < pages,
			HasPrevPage: page > 1,
		},
	}, nil
}

// Get 根据 ID 获取管理员
// 返回:
//   - error: ID 格式错误返回 *apperr.CastError，不存在返回 ErrAdminNotFound
func (s *AdminService) Get(ctx context.Context, id string) (*model.AdminUser, error) {
	normalized, ok := util.NormalizeID(id)
	if !ok {
		return nil, &apperr.CastError{Kind: "uuid", Value: id}
	}

	admin, err := s.adminRepo.GetByID(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

// Delete 删除管理员
// 先检查是否删除自己，再检查 ID 格式和记录是否存在
// 参数:
//   - currentID: 当前登录的管理员 ID
//   - id: 要删除的管理员 ID
func (s *AdminService) Delete(ctx context.Context, currentID, id string) error {
	normalized, ok := util.NormalizeID(id)
	if currentID == id || (ok && currentID == normalized) {
		return ErrDeleteSelf
	}
	if !ok {
		return &apperr.CastError{Kind: "uuid", Value: id}
	}
	id = normalized

	deleted, err := s.adminRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAdminNotFound
	}

	s.events.Publish(ctx, EventAdminDeleted, IDPayload{ID: id})
	return nil
}
