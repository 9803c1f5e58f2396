package repository

import (
	"context"
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wallpaper-admin/internal/model"
	"wallpaper-admin/internal/storage"
)

// 列表排序字段到数据库列的映射
var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"downloadCount": "download_count",
	"title":         "title",
}

// WallpaperFilter 壁纸列表的过滤和排序条件
// Category / WallpaperStyle 为空或 "all" 时不过滤
type WallpaperFilter struct {
	Category       string
	WallpaperStyle string
	Keyword        string // 在标题、描述和关键词中做不区分大小写的子串匹配
	IsActive       *bool
	SortBy         string // createdAt / downloadCount / title
	SortOrder      string // asc / desc
}

// WallpaperRepository 壁纸数据访问层
type WallpaperRepository struct {
	db *gorm.DB
}

// NewWallpaperRepository 创建 WallpaperRepository 实例
func NewWallpaperRepository(db *gorm.DB) *WallpaperRepository {
	return &WallpaperRepository{db: db}
}

// Create 创建壁纸
// 返回:
//   - error: 字段校验失败时返回 *apperr.ValidationError
func (r *WallpaperRepository) Create(ctx context.Context, wallpaper *model.Wallpaper) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(wallpaper).Error
	return translateWriteError(err, "")
}

// GetByID 根据 ID 获取壁纸
// 参数:
//   - id: 壁纸 ID
//   - withAdmin: 是否同时加载创建者的 firstName / lastName / email
//
// 返回:
//   - *model.Wallpaper: 壁纸对象，如果未找到返回 nil
//   - error: 数据库错误（不包括记录未找到）
func (r *WallpaperRepository) GetByID(ctx context.Context, id string, withAdmin bool) (*model.Wallpaper, error) {
	var wallpaper model.Wallpaper
	db := r.db.WithContext(ctx)
	if withAdmin {
		db = db.Preload("Admin", selectAdminSummary)
	}
	err := db.Where("id = ?", id).First(&wallpaper).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.WithStack(err)
	}
	return &wallpaper, nil
}

// Update 保存壁纸的所有可编辑字段
// 下载次数和创建时间不会被覆盖，避免与并发的自增操作冲突
// 返回:
//   - error: 记录不存在时返回 ErrNotFound
func (r *WallpaperRepository) Update(ctx context.Context, wallpaper *model.Wallpaper) error {
	result := r.db.WithContext(ctx).
		Model(wallpaper).
		Select("*").
		Omit("id", "download_count", "created_at").
		Updates(wallpaper)
	if result.Error != nil {
		return translateWriteError(result.Error, "")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 删除壁纸
// 返回:
//   - bool: 是否删除了记录
func (r *WallpaperRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Wallpaper{})
	if result.Error != nil {
		return false, pkgerrors.WithStack(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// IncrementDownloadCount 将下载次数加 1 并返回自增后的值
// 自增在数据库中原子完成，并发调用不会丢失计数
// 返回:
//   - int64: 自增后的下载次数
//   - error: 记录不存在时返回 ErrNotFound
func (r *WallpaperRepository) IncrementDownloadCount(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 模型上的保存钩子会校验整条记录，这里只更新一列，跳过钩子
		result := tx.Session(&gorm.Session{SkipHooks: true}).
			Model(&model.Wallpaper{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{"download_count": gorm.Expr("download_count + ?", 1)})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&model.Wallpaper{}).
			Select("download_count").
			Where("id = ?", id).
			Scan(&count).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, pkgerrors.WithStack(err)
	}
	return count, nil
}

// List 分页获取壁纸列表，同时加载创建者信息
// 参数:
//   - filter: 过滤和排序条件
//   - offset: 跳过的记录数
//   - limit: 返回的最大记录数
func (r *WallpaperRepository) List(ctx context.Context, filter WallpaperFilter, offset, limit int) ([]model.Wallpaper, error) {
	wallpapers := make([]model.Wallpaper, 0, prealloc(limit))

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	desc := !strings.EqualFold(filter.SortOrder, "asc")

	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Preload("Admin", selectAdminSummary).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&wallpapers).Error
	if err != nil {
		return nil, pkgerrors.WithStack(err)
	}
	return wallpapers, nil
}

// Count 统计满足过滤条件的壁纸数量
func (r *WallpaperRepository) Count(ctx context.Context, filter WallpaperFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&model.Wallpaper{}), filter).Count(&count).Error
	return count, pkgerrors.WithStack(err)
}

// TopDownloaded 获取下载次数最多的上架壁纸
func (r *WallpaperRepository) TopDownloaded(ctx context.Context, limit int) ([]model.FeaturedWallpaper, error) {
	out := make([]model.FeaturedWallpaper, 0, limit)
	err := r.active(ctx).
		Select("id", "title", "image_url", "category", "wallpaper_style", "download_count").
		Order("download_count DESC").
		Limit(limit).
		Find(&out).Error
	return out, pkgerrors.WithStack(err)
}

// Recent 获取最新上架的壁纸
func (r *WallpaperRepository) Recent(ctx context.Context, limit int) ([]model.RecentWallpaper, error) {
	out := make([]model.RecentWallpaper, 0, limit)
	err := r.active(ctx).
		Select("id", "title", "image_url", "category", "wallpaper_style", "created_at").
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, pkgerrors.WithStack(err)
}

// TopInCategory 获取某个分类下载次数最多的上架壁纸
func (r *WallpaperRepository) TopInCategory(ctx context.Context, category string, limit int) ([]model.CategoryWallpaper, error) {
	out := make([]model.CategoryWallpaper, 0, limit)
	err := r.active(ctx).
		Select("id", "title", "image_url", "wallpaper_style", "download_count").
		Where("category = ?", category).
		Order("download_count DESC").
		Limit(limit).
		Find(&out).Error
	return out, pkgerrors.WithStack(err)
}

// CountActive 统计上架壁纸数量
func (r *WallpaperRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.active(ctx).Count(&count).Error
	return count, pkgerrors.WithStack(err)
}

// SumActiveDownloads 统计上架壁纸的下载总数，没有壁纸时为 0
func (r *WallpaperRepository) SumActiveDownloads(ctx context.Context) (int64, error) {
	var total int64
	err := r.active(ctx).Select("COALESCE(SUM(download_count), 0)").Scan(&total).Error
	return total, pkgerrors.WithStack(err)
}

func (r *WallpaperRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Wallpaper{}).Where("is_active = ?", true)
}

// applyFilter 添加过滤条件
func (r *WallpaperRepository) applyFilter(db *gorm.DB, filter WallpaperFilter) *gorm.DB {
	if filter.Category != "" && filter.Category != model.FilterAll {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.WallpaperStyle != "" && filter.WallpaperStyle != model.FilterAll {
		db = db.Where("wallpaper_style = ?", filter.WallpaperStyle)
	}
	if filter.Keyword != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Keyword)) + "%"
		lower := storage.LowerFunc(db)
		db = db.Where(
			"("+lower+"(title) LIKE ? ESCAPE '!' OR "+lower+"(description) LIKE ? ESCAPE '!' OR "+keywordMatch(db, lower)+")",
			pattern, pattern, pattern,
		)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	return db
}

// keywordMatch 返回逐个匹配关键词数组元素的 SQL 条件，带一个 LIKE 模式参数
func keywordMatch(db *gorm.DB, lower string) string {
	switch db.Dialector.Name() {
	case storage.DriverMySQL:
		return "EXISTS (SELECT 1 FROM JSON_TABLE(wallpapers.keywords, '$[*]' COLUMNS (kw TEXT PATH '$')) AS k WHERE " +
			lower + "(k.kw) LIKE ? ESCAPE '!')"
	case storage.DriverPostgres:
		return "EXISTS (SELECT 1 FROM jsonb_array_elements_text(wallpapers.keywords::jsonb) AS k(kw) WHERE " +
			lower + "(k.kw) LIKE ? ESCAPE '!')"
	default:
		return "EXISTS (SELECT 1 FROM json_each(wallpapers.keywords) AS k WHERE " +
			lower + "(k.value) LIKE ? ESCAPE '!')"
	}
}

// escapeLike 转义 LIKE 模式中的通配符，转义字符为 "!"
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

// selectAdminSummary 预加载创建者时只查询展示需要的列
func selectAdminSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "first_name", "last_name", "email")
}
