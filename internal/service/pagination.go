package service

import "math"

// 分页默认值
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// AdminPagination 管理员列表分页信息
type AdminPagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalAdmins int64 `json:"totalAdmins"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// WallpaperPagination 壁纸列表分页信息
type WallpaperPagination struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalWallpapers int64 `json:"totalWallpapers"`
	Limit           int   `json:"limit"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPrevPage     bool  `json:"hasPrevPage"`
}

// normalizePage 页码或每页数量小于 1 时使用默认值
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

// pageOffset 计算跳过的记录数，溢出时取 math.MaxInt
func pageOffset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// totalPages 向上取整计算总页数
func totalPages(total int64, limit int) int {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
