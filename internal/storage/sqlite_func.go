package storage

import (
	"database/sql/driver"
	"strings"

	"gorm.io/gorm"
	// 导入时注册名为 "sqlite" 的 database/sql 驱动
	msqlite "modernc.org/sqlite"
)

// SQLiteLowerFunc 按 Unicode 规则转小写的 SQLite 函数
// SQLite 内置的 LOWER 只处理 ASCII 字母
const SQLiteLowerFunc = "unicode_lower"

func init() {
	msqlite.MustRegisterDeterministicScalarFunction(SQLiteLowerFunc, 1, unicodeLower)
}

func unicodeLower(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// LowerFunc 返回当前数据库中做大小写折叠的 SQL 函数名
// mysql 和 postgres 的 LOWER 已按字符集处理非 ASCII 字母
func LowerFunc(db *gorm.DB) string {
	if db.Dialector.Name() == DriverSQLite {
		return SQLiteLowerFunc
	}
	return "LOWER"
}
