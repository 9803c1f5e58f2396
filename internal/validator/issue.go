// Package validator 校验请求体和查询参数
// 校验不会中断在第一个错误上，而是收集所有字段错误，返回 Issue 列表
package validator

import (
	"fmt"
)

// Issue 错误码
const (
	CodeInvalidType   = "invalid_type"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeInvalidFormat = "invalid_format"
	CodeInvalidValue  = "invalid_value"
)

// Issue 单个字段的校验错误
// Path 对顶层字段是字段名字符串，对嵌套字段（或根对象）是路径数组，如 ["keywords", 2]
type Issue struct {
	Code    string      `json:"code"`
	Path    interface{} `json:"path"`
	Message string      `json:"message"`
}

// Issues 校验错误列表
type Issues []Issue

// Error 实现 error 接口，返回第一条错误
func (is Issues) Error() string {
	if len(is) == 0 {
		return "validation passed"
	}
	return fmt.Sprintf("%v: %s", is[0].Path, is[0].Message)
}

// First 返回第一条错误信息
func (is Issues) First() string {
	if len(is) == 0 {
		return ""
	}
	return is[0].Message
}

func newIssue(code, message string, path ...interface{}) Issue {
	var p interface{} = path
	if len(path) == 1 {
		p = path[0]
	}
	if path == nil {
		p = []interface{}{}
	}
	return Issue{Code: code, Path: p, Message: message}
}

// typeMismatch 生成类型错误，received 为实际收到的 JSON 类型或 undefined
func typeMismatch(expected, received string, path ...interface{}) Issue {
	return newIssue(CodeInvalidType,
		fmt.Sprintf("Invalid input: expected %s, received %s", expected, received), path...)
}
