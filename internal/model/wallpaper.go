package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"wallpaper-admin/pkg/apperr"
	"wallpaper-admin/pkg/util"
)

// imageURLPattern 存储层使用的基础 URL 校验规则
var imageURLPattern = regexp.MustCompile(`^(https?://)?([\da-z.-]+)\.([a-z.]{2,6})([/\w .-]*)*/?$`)

// 字段长度限制
const (
	TitleMinLen       = 3
	TitleMaxLen       = 200
	DescriptionMinLen = 10
	DescriptionMaxLen = 1000
	KeywordsMin       = 1
	KeywordsMax       = 20
)

// Wallpaper 壁纸模型
// 对应数据库表 wallpapers
type Wallpaper struct {
	// ID 壁纸唯一标识（UUID），创建时生成
	ID string `gorm:"primaryKey;size:36" json:"_id"`

	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"size:1000;not null" json:"description"`
	ImageURL    string `gorm:"size:2048;not null" json:"imageUrl"`

	// Keywords 关键词列表，以 JSON 数组存储
	Keywords datatypes.JSONSlice[string] `gorm:"not null" json:"keywords"`

	// Category 与 WallpaperStyle 组成联合索引，对应列表页的常用过滤条件
	Category       string `gorm:"size:50;not null;index:idx_wallpapers_category_style,priority:1" json:"category"`
	WallpaperStyle string `gorm:"size:20;not null;index:idx_wallpapers_category_style,priority:2" json:"wallpaperStyle"`

	// DownloadCount 下载次数，只能通过自增操作修改
	DownloadCount int64 `gorm:"not null;default:0;index:idx_wallpapers_download_count,sort:desc" json:"downloadCount"`

	// AdminID 创建者 ID，关联 admin_users.id
	AdminID string `gorm:"size:36;not null;index" json:"adminId"`

	// IsActive 是否上架，新建时由服务层置为 true
	// 没有 default 标签：带默认值的零值字段在 INSERT 时会被 GORM 跳过
	IsActive bool `gorm:"not null" json:"isActive"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_wallpapers_created_at,sort:desc" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Admin 创建者（多对一关系），Preload 后才有值
	Admin *AdminUser `gorm:"foreignKey:AdminID;references:ID" json:"-"`
}

// TableName 指定表名
func (Wallpaper) TableName() string {
	return "wallpapers"
}

// AdminSummary 壁纸列表中展开的创建者信息
type AdminSummary struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// MarshalJSON 序列化壁纸
// 已加载创建者时 adminId 输出为 {_id, firstName, lastName, email}，否则输出原始 ID
func (w Wallpaper) MarshalJSON() ([]byte, error) {
	type alias Wallpaper
	out := struct {
		alias
		AdminID interface{} `json:"adminId"`
	}{alias: alias(w), AdminID: w.AdminID}

	if w.Admin != nil {
		out.AdminID = AdminSummary{
			ID:        w.Admin.ID,
			FirstName: w.Admin.FirstName,
			LastName:  w.Admin.LastName,
			Email:     w.Admin.Email,
		}
	}
	if out.Keywords == nil {
		out.Keywords = datatypes.JSONSlice[string]{}
	}
	return json.Marshal(out)
}

// BeforeSave 保存前清理字段并校验
func (w *Wallpaper) BeforeSave(tx *gorm.DB) error {
	w.Title = strings.TrimSpace(w.Title)
	w.Description = strings.TrimSpace(w.Description)
	w.ImageURL = strings.TrimSpace(w.ImageURL)
	w.Category = strings.TrimSpace(w.Category)
	w.WallpaperStyle = strings.TrimSpace(w.WallpaperStyle)
	return w.Validate()
}

// BeforeCreate 为新记录生成 ID
func (w *Wallpaper) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = util.GenerateUUID()
	}
	return nil
}

// Validate 校验字段
func (w *Wallpaper) Validate() error {
	ve := &apperr.ValidationError{}

	checkLength(ve, "title", w.Title, TitleMinLen, TitleMaxLen)
	checkLength(ve, "description", w.Description, DescriptionMinLen, DescriptionMaxLen)

	if w.ImageURL == "" {
		ve.Add("imageUrl", requiredMessage("imageUrl"))
	} else if !imageURLPattern.MatchString(w.ImageURL) {
		ve.Add("imageUrl", "Please provide a valid URL")
	}

	if len(w.Keywords) < KeywordsMin || len(w.Keywords) > KeywordsMax {
		ve.Add("keywords", "Keywords must contain at least 1 and at most 20 items")
	}

	switch {
	case w.Category == "":
		ve.Add("category", requiredMessage("category"))
	case !IsCategory(w.Category):
		ve.Add("category", enumMessage("category", w.Category))
	}

	if w.DownloadCount < 0 {
		ve.Add("downloadCount", fmt.Sprintf("Path `downloadCount` (%d) is less than minimum allowed value (0).", w.DownloadCount))
	}

	if w.AdminID == "" {
		ve.Add("adminId", requiredMessage("adminId"))
	}

	switch {
	case w.WallpaperStyle == "":
		ve.Add("wallpaperStyle", requiredMessage("wallpaperStyle"))
	case !IsStyle(w.WallpaperStyle):
		ve.Add("wallpaperStyle", enumMessage("wallpaperStyle", w.WallpaperStyle))
	}

	return ve.OrNil()
}

func checkLength(ve *apperr.ValidationError, path, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		ve.Add(path, requiredMessage(path))
	case n < min:
		ve.Add(path, fmt.Sprintf("Path `%s` is shorter than the minimum allowed length (%d).", path, min))
	case n > max:
		ve.Add(path, fmt.Sprintf("Path `%s` is longer than the maximum allowed length (%d).", path, max))
	}
}

// FeaturedWallpaper 首页热门壁纸投影
type FeaturedWallpaper struct {
	ID             string `json:"_id"`
	Title          string `json:"title"`
	ImageURL       string `json:"imageUrl"`
	Category       string `json:"category"`
	WallpaperStyle string `json:"wallpaperStyle"`
	DownloadCount  int64  `json:"downloadCount"`
}

// RecentWallpaper 首页最新壁纸投影
type RecentWallpaper struct {
	ID             string    `json:"_id"`
	Title          string    `json:"title"`
	ImageURL       string    `json:"imageUrl"`
	Category       string    `json:"category"`
	WallpaperStyle string    `json:"wallpaperStyle"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CategoryWallpaper 首页分类精选投影
type CategoryWallpaper struct {
	ID             string `json:"_id"`
	Title          string `json:"title"`
	ImageURL       string `json:"imageUrl"`
	WallpaperStyle string `json:"wallpaperStyle"`
	DownloadCount  int64  `json:"downloadCount"`
}
