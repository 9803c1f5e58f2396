// Package apperr 定义业务错误类型
// 各层返回这些错误，由 middleware.ErrorHandler 统一翻译为 HTTP 响应
package apperr

import (
	"fmt"
	"net/http"
	"strings"
)

// Error 带 HTTP 状态码的业务错误
type Error struct {
	Status  int    // HTTP 状态码
	Message string // 返回给客户端的信息
}

func (e *Error) Error() string {
	return e.Message
}

// New 创建业务错误
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// BadRequest 400
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// NotFound 404
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// TooManyRequests 429
func TooManyRequests(message string) *Error {
	return New(http.StatusTooManyRequests, message)
}

// FieldError 单个字段的校验失败
type FieldError struct {
	Field   string
	Message string
}

// ValidationError 模型层校验失败
// Fields 按字段声明顺序排列，翻译时只取第一条
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, ", ")
}

// Add 追加一条字段错误
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// First 返回第一条错误信息，没有错误时返回空字符串
func (e *ValidationError) First() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0].Message
}

// OrNil 没有字段错误时返回 nil
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// DuplicateKeyError 唯一约束冲突
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("Duplicate value entered for %s field, please use another value", e.Field)
}

// CastError 标识符格式不合法
type CastError struct {
	Kind  string // 期望的类型，如 "uuid"
	Value string // 原始值
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cast to %s failed for value %q", e.Kind, e.Value)
}
