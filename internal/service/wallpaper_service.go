package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"wallpaper-admin/internal/model"
	"wallpaper-admin/internal/repository"
	"wallpaper-admin/pkg/apperr"
	"wallpaper-admin/pkg/util"
)

// 壁纸服务相关错误
var (
	ErrInvalidWallpaperID = apperr.BadRequest("Invalid wallpaper ID")
	ErrWallpaperNotFound  = apperr.NotFound("Wallpaper not found")
)

// 首页数据的条数
const (
	homeFeaturedLimit = 10
	homeRecentLimit   = 10
	homeCategoryLimit = 3
)

// WallpaperService 壁纸服务
// 处理壁纸的增删改查、下载计数和首页聚合数据
type WallpaperService struct {
	wallpaperRepo *repository.WallpaperRepository
	events        EventPublisher
}

// NewWallpaperService 创建 WallpaperService 实例
// events 为 nil 时不推送事件
func NewWallpaperService(wallpaperRepo *repository.WallpaperRepository, events EventPublisher) *WallpaperService {
	return &WallpaperService{
		wallpaperRepo: wallpaperRepo,
		events:        publisherOrNop(events),
	}
}

// CreateWallpaperRequest 创建壁纸请求（已通过输入校验）
type CreateWallpaperRequest struct {
	Title          string
	Description    string
	ImageURL       string
	Keywords       []string
	Category       string
	WallpaperStyle string
}

// WallpaperPatch 更新壁纸请求
// nil 字段保持原值
type WallpaperPatch struct {
	Title          *string
	Description    *string
	ImageURL       *string
	Keywords       []string
	Category       *string
	WallpaperStyle *string
	IsActive       *bool
}

// apply 将非 nil 字段写入壁纸
func (p *WallpaperPatch) apply(w *model.Wallpaper) {
	if p.Title != nil {
		w.Title = *p.Title
	}
	if p.Description != nil {
		w.Description = *p.Description
	}
	if p.ImageURL != nil {
		w.ImageURL = *p.ImageURL
	}
	if p.Keywords != nil {
		w.Keywords = datatypes.JSONSlice[string](p.Keywords)
	}
	if p.Category != nil {
		w.Category = *p.Category
	}
	if p.WallpaperStyle != nil {
		w.WallpaperStyle = *p.WallpaperStyle
	}
	if p.IsActive != nil {
		w.IsActive = *p.IsActive
	}
}

// Create 创建壁纸，创建者为当前登录的管理员
// 参数:
//   - adminID: 当前管理员 ID
//   - req: 创建请求
//
// 返回:
//   - *model.Wallpaper: 新壁纸，下载次数为 0，默认上架
//   - error: 存储层校验失败返回 *apperr.ValidationError
func (s *WallpaperService) Create(ctx context.Context, adminID string, req *CreateWallpaperRequest) (*model.Wallpaper, error) {
	wallpaper := &model.Wallpaper{
		Title:          req.Title,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		Keywords:       datatypes.JSONSlice[string](req.Keywords),
		Category:       req.Category,
		WallpaperStyle: req.WallpaperStyle,
		AdminID:        adminID,
		IsActive:       true,
	}
	if err := s.wallpaperRepo.Create(ctx, wallpaper); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, EventWallpaperCreated, wallpaper)
	return wallpaper, nil
}

// Update 更新壁纸
// 返回的壁纸不加载创建者信息
func (s *WallpaperService) Update(ctx context.Context, id string, patch *WallpaperPatch) (*model.Wallpaper, error) {
	id, ok := util.NormalizeID(id)
	if !ok {
		return nil, ErrInvalidWallpaperID
	}

	wallpaper, err := s.wallpaperRepo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if wallpaper == nil {
		return nil, ErrWallpaperNotFound
	}

	patch.apply(wallpaper)
	if err := s.wallpaperRepo.Update(ctx, wallpaper); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWallpaperNotFound
		}
		return nil, err
	}

	s.events.Publish(ctx, EventWallpaperUpdated, wallpaper)
	return wallpaper, nil
}

// Delete 删除壁纸
func (s *WallpaperService) Delete(ctx context.Context, id string) error {
	id, ok := util.NormalizeID(id)
	if !ok {
		return ErrInvalidWallpaperID
	}

	deleted, err := s.wallpaperRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrWallpaperNotFound
	}

	s.events.Publish(ctx, EventWallpaperDeleted, IDPayload{ID: id})
	return nil
}

// Get 获取壁纸详情，同时加载创建者信息
// 查看详情计为一次下载，返回自增后的下载次数
func (s *WallpaperService) Get(ctx context.Context, id string) (*model.Wallpaper, error) {
	id, ok := util.NormalizeID(id)
	if !ok {
		return nil, ErrInvalidWallpaperID
	}

	wallpaper, err := s.wallpaperRepo.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if wallpaper == nil {
		return nil, ErrWallpaperNotFound
	}

	count, err := s.increment(ctx, id)
	if err != nil {
		return nil, err
	}
	wallpaper.DownloadCount = count
	return wallpaper, nil
}

// IncrementDownload 下载次数加 1
// 返回:
//   - int64: 自增后的下载次数
func (s *WallpaperService) IncrementDownload(ctx context.Context, id string) (int64, error) {
	id, ok := util.NormalizeID(id)
	if !ok {
		return 0, ErrInvalidWallpaperID
	}
	return s.increment(ctx, id)
}

func (s *WallpaperService) increment(ctx context.Context, id string) (int64, error) {
	count, err := s.wallpaperRepo.IncrementDownloadCount(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrWallpaperNotFound
		}
		return 0, err
	}

	s.events.Publish(ctx, EventWallpaperDownloaded, DownloadPayload{ID: id, DownloadCount: count})
	return count, nil
}

// WallpaperList 壁纸分页列表
type WallpaperList struct {
	Wallpapers []model.Wallpaper   `json:"wallpapers"`
	Pagination WallpaperPagination `json:"pagination"`
}

// List 分页获取壁纸列表，同时加载创建者信息
// 列表和总数并发查询，任意一个失败则整体失败
func (s *WallpaperService) List(ctx context.Context, filter repository.WallpaperFilter, page, limit int) (*WallpaperList, error) {
	page, limit = normalizePage(page, limit)

	var (
		wallpapers []model.Wallpaper
		total      int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		wallpapers, err = s.wallpaperRepo.List(gctx, filter, pageOffset(page, limit), limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.wallpaperRepo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pages := totalPages(total, limit)
	return &WallpaperList{
		Wallpapers: wallpapers,
		Pagination: WallpaperPagination{
			CurrentPage:     page,
			TotalPages:      pages,
			TotalWallpapers: total,
			Limit:           limit,
			HasNextPage:     page < pages,
			HasPrevPage:     page > 1,
		},
	}, nil
}

// CategoryGroup 首页某个分类下的热门壁纸
type CategoryGroup struct {
	Category   string                    `json:"category"`
	Wallpapers []model.CategoryWallpaper `json:"wallpapers"`
}

// HomeStatistics 首页统计信息
type HomeStatistics struct {
	TotalWallpapers     int64    `json:"totalWallpapers"`
	TotalDownloads      int64    `json:"totalDownloads"`
	AvailableCategories []string `json:"availableCategories"`
	AvailableStyles     []string `json:"availableStyles"`
}

// HomeData 首页聚合数据
type HomeData struct {
	Featured   []model.FeaturedWallpaper `json:"featured"`
	Recent     []model.RecentWallpaper   `json:"recent"`
	Categories []CategoryGroup           `json:"categories"`
	Statistics HomeStatistics            `json:"statistics"`
}

// Home 获取首页数据，只统计上架的壁纸
// 所有查询并发执行，任意一个失败则整体失败
// 没有壁纸的分类不出现在结果中，其余分类保持固定顺序
func (s *WallpaperService) Home(ctx context.Context) (*HomeData, error) {
	var (
		featured       []model.FeaturedWallpaper
		recent         []model.RecentWallpaper
		totalCount     int64
		totalDownloads int64
	)
	byCategory := make([][]model.CategoryWallpaper, len(model.Categories))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		featured, err = s.wallpaperRepo.TopDownloaded(gctx, homeFeaturedLimit)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.wallpaperRepo.Recent(gctx, homeRecentLimit)
		return err
	})
	for i, category := range model.Categories {
		g.Go(func() error {
			wallpapers, err := s.wallpaperRepo.TopInCategory(gctx, category, homeCategoryLimit)
			byCategory[i] = wallpapers
			return err
		})
	}
	g.Go(func() error {
		var err error
		totalCount, err = s.wallpaperRepo.CountActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		totalDownloads, err = s.wallpaperRepo.SumActiveDownloads(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	categories := make([]CategoryGroup, 0, len(model.Categories))
	for i, category := range model.Categories {
		if len(byCategory[i]) == 0 {
			continue
		}
		categories = append(categories, CategoryGroup{Category: category, Wallpapers: byCategory[i]})
	}

	return &HomeData{
		Featured:   featured,
		Recent:     recent,
		Categories: categories,
		Statistics: HomeStatistics{
			TotalWallpapers:     totalCount,
			TotalDownloads:      totalDownloads,
			AvailableCategories: model.Categories,
			AvailableStyles:     model.Styles,
		},
	}, nil
}
