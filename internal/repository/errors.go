package repository

import (
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"wallpaper-admin/pkg/apperr"
)

// ErrNotFound 要操作的记录不存在
var ErrNotFound = errors.New("record not found")

// 各数据库唯一约束冲突的错误信息片段
// sqlite 驱动的错误未被 GORM 翻译，需要按信息匹配
var duplicateKeyMarkers = []string{
	"UNIQUE constraint failed",
	"Duplicate entry",
	"duplicate key value",
}

// isDuplicateKey 判断是否是唯一约束冲突
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	for _, marker := range duplicateKeyMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// translateWriteError 将写操作的数据库错误转换为业务错误
// 参数:
//   - err: 数据库返回的错误
//   - uniqueField: 唯一约束冲突时报告的字段名
func translateWriteError(err error, uniqueField string) error {
	if err == nil {
		return nil
	}
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	if uniqueField != "" && isDuplicateKey(err) {
		return &apperr.DuplicateKeyError{Field: uniqueField}
	}
	return pkgerrors.WithStack(err)
}

// maxPrealloc 列表查询预分配容量的上限，limit 来自客户端
const maxPrealloc = 100

func prealloc(limit int) int {
	return max(0, min(limit, maxPrealloc))
}
