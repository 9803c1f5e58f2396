package validator

import (
	"net/url"
	"strconv"
)

// Query 待校验的查询参数
type Query struct {
	values url.Values
	issues Issues
}

// NewQuery 包装查询参数
func NewQuery(values url.Values) *Query {
	return &Query{values: values}
}

// Issues 返回目前收集到的所有错误
func (q *Query) Issues() Issues {
	return q.issues
}

// raw 取单个参数值，重复出现的参数视为数组类型错误
func (q *Query) raw(name string) (string, bool) {
	vals, ok := q.values[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	if len(vals) > 1 {
		q.issues = append(q.issues, typeMismatch("string", "array", name))
		return "", false
	}
	return vals[0], true
}

// PositiveInt 读取正整数参数，缺失、无法解析或小于 1 时返回默认值
func (q *Query) PositiveInt(name string, def int) int {
	s, ok := q.raw(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Enum 读取枚举参数，缺失时返回默认值
func (q *Query) Enum(name, def string, values []string) string {
	s, ok := q.raw(name)
	if !ok {
		return def
	}
	issues := apply(s, []Rule{OneOf(values, "")}, name)
	if len(issues) > 0 {
		q.issues = append(q.issues, issues...)
		return def
	}
	return s
}

// String 读取可选的字符串参数
func (q *Query) String(name string) string {
	s, _ := q.raw(name)
	return s
}

// BoolString 将 "true" / "false" 解析为布尔值，其他取值返回 nil
func (q *Query) BoolString(name string) *bool {
	s, _ := q.raw(name)
	switch s {
	case "true":
		b := true
		return &b
	case "false":
		b := false
		return &b
	}
	return nil
}
