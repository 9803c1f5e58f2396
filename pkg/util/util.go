// Package util 提供通用工具函数
package util

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost bcrypt 计算成本
const PasswordCost = 10

// HashPassword 使用 bcrypt 哈希密码
// bcrypt 自动添加盐值
// 参数:
//   - password: 明文密码
//
// 返回:
//   - string: 密码哈希值
//   - error: 哈希错误
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(bytes), err
}

// CheckPassword 验证密码是否匹配
// 参数:
//   - password: 用户输入的明文密码
//   - hash: 数据库中存储的哈希值
//
// 返回:
//   - bool: 是否匹配
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateUUID 生成 UUID v4
// 格式：xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func GenerateUUID() string {
	return uuid.New().String()
}

// IsValidID 判断字符串是否是合法的记录 ID
func IsValidID(id string) bool {
	_, ok := NormalizeID(id)
	return ok
}

// NormalizeID 校验记录 ID 并转换为存储使用的小写形式
// 只接受 xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx 格式，大小写不敏感
// 返回:
//   - string: 规范化后的 ID
//   - bool: 是否是合法的记录 ID
func NormalizeID(id string) (string, bool) {
	if len(id) != 36 {
		return "", false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// StringPtr 返回字符串的指针
// 用于可选字段的赋值
func StringPtr(s string) *string {
	return &s
}

// BoolPtr 返回 bool 的指针
func BoolPtr(b bool) *bool {
	return &b
}
