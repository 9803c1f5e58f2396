// Package repository 提供数据访问层的实现
// 封装所有与数据库的交互操作
package repository

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"wallpaper-admin/internal/model"
)

// AdminRepository 管理员数据访问层
type AdminRepository struct {
	db *gorm.DB // GORM 数据库连接实例
}

// NewAdminRepository 创建 AdminRepository 实例
// 参数:
//   - db: GORM 数据库连接
//
// 返回:
//   - *AdminRepository: 管理员仓库实例
func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create 创建管理员
// 参数:
//   - ctx: 上下文，用于控制请求生命周期
//   - admin: 管理员对象，ID 字段会被自动填充
//
// 返回:
//   - error: 邮箱重复时返回 *apperr.DuplicateKeyError，字段校验失败时返回 *apperr.ValidationError
func (r *AdminRepository) Create(ctx context.Context, admin *model.AdminUser) error {
	return translateWriteError(r.db.WithContext(ctx).Create(admin).Error, "email")
}

// GetByID 根据 ID 获取管理员
// 返回:
//   - *model.AdminUser: 管理员对象，如果未找到返回 nil
//   - error: 数据库错误（不包括记录未找到）
func (r *AdminRepository) GetByID(ctx context.Context, id string) (*model.AdminUser, error) {
	var admin model.AdminUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.WithStack(err)
	}
	return &admin, nil
}

// GetByEmail 根据邮箱获取管理员，调用方负责将邮箱转换为小写
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var admin model.AdminUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.WithStack(err)
	}
	return &admin, nil
}

// ExistsByEmail 检查邮箱是否已注册
func (r *AdminRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AdminUser{}).Where("email = ?", email).Count(&count).Error
	return count > 0, pkgerrors.WithStack(err)
}

// List 分页获取管理员列表，按创建时间倒序，不查询密码
// 参数:
//   - offset: 跳过的记录数
//   - limit: 返回的最大记录数
func (r *AdminRepository) List(ctx context.Context, offset, limit int) ([]model.AdminUser, error) {
	admins := make([]model.AdminUser, 0, prealloc(limit))
	err := r.db.WithContext(ctx).
		Omit("password").
		Order("created_at DESC").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&admins).Error
	if err != nil {
		return nil, pkgerrors.WithStack(err)
	}
	return admins, nil
}

// Count 统计管理员总数
func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AdminUser{}).Count(&count).Error
	return count, pkgerrors.WithStack(err)
}

// Delete 删除管理员
// 返回:
//   - bool: 是否删除了记录
func (r *AdminRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AdminUser{})
	if result.Error != nil {
		return false, pkgerrors.WithStack(result.Error)
	}
	return result.RowsAffected > 0, nil
}
