// Package model 定义了与数据库表对应的数据结构
// 模型在保存前会清理字符串并执行字段校验，失败时返回 apperr.ValidationError
package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"wallpaper-admin/pkg/apperr"
	"wallpaper-admin/pkg/util"
)

// RoleAdmin 管理员角色，目前唯一的角色
const RoleAdmin = "admin"

// 存储层密码规则使用的特殊字符集合，比注册接口的集合更宽
var (
	passwordLetter  = regexp.MustCompile(`[a-zA-Z]`)
	passwordDigit   = regexp.MustCompile(`\d`)
	passwordSpecial = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// AdminUser 管理员模型
// 对应数据库表 admin_users
type AdminUser struct {
	// ID 管理员唯一标识（UUID），创建时生成
	ID string `gorm:"primaryKey;size:36" json:"_id"`

	// Email 登录邮箱，存储前统一转换为小写，全局唯一
	Email string `gorm:"size:255;uniqueIndex;not null" json:"email"`

	// Password 密码的 bcrypt 哈希值，序列化时忽略
	Password string `gorm:"size:255;not null" json:"-"`

	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`

	// Role 角色，只允许 admin
	Role string `gorm:"size:20" json:"role"`

	// CreatedAt 创建时间，由 GORM 自动填充
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	// UpdatedAt 更新时间，由 GORM 自动更新
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName 指定表名
func (AdminUser) TableName() string {
	return "admin_users"
}

// BeforeSave 保存前清理字段并校验
func (a *AdminUser) BeforeSave(tx *gorm.DB) error {
	a.Email = strings.TrimSpace(a.Email)
	a.Password = strings.TrimSpace(a.Password)
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
	return a.Validate()
}

// BeforeCreate 为新记录生成 ID
func (a *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = util.GenerateUUID()
	}
	return nil
}

// Validate 校验字段
// 密码规则作用于实际存储的值（即哈希值）
func (a *AdminUser) Validate() error {
	ve := &apperr.ValidationError{}

	if a.Email == "" {
		ve.Add("email", requiredMessage("email"))
	}

	switch {
	case a.Password == "":
		ve.Add("password", requiredMessage("password"))
	case len(a.Password) < 6:
		ve.Add("password", "Path `password` is shorter than the minimum allowed length (6).")
	case !passwordLetter.MatchString(a.Password) ||
		!passwordDigit.MatchString(a.Password) ||
		!passwordSpecial.MatchString(a.Password):
		ve.Add("password", "Password must contain at least one letter and one number and one special character.")
	}

	if a.FirstName == "" {
		ve.Add("firstName", requiredMessage("firstName"))
	}
	if a.LastName == "" {
		ve.Add("lastName", requiredMessage("lastName"))
	}
	if a.Role != "" && a.Role != RoleAdmin {
		ve.Add("role", enumMessage("role", a.Role))
	}

	return ve.OrNil()
}

func requiredMessage(path string) string {
	return fmt.Sprintf("Path `%s` is required.", path)
}

func enumMessage(path, value string) string {
	return fmt.Sprintf("`%s` is not a valid enum value for path `%s`.", value, path)
}
