package validator

import (
	"fmt"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// engine 字段级校验引擎，注册了自定义的 password 规则
var engine = newEngine()

// passwordSymbols 注册和登录接口允许的特殊字符
const passwordSymbols = "@$!%*#?&"

func newEngine() *playground.Validate {
	v := playground.New()
	_ = v.RegisterValidation("password", func(fl playground.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})
	return v
}

// IsStrongPassword 判断密码是否至少包含一个字母、一个数字和一个 @$!%*#?& 中的字符，
// 且只由这些字符组成
func IsStrongPassword(s string) bool {
	var letter, digit, symbol bool
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return letter && digit && symbol
}

// Rule 一条字段约束
// Tag 是 go-playground/validator 的规则标签，失败时产生 Code 和 Message
type Rule struct {
	Tag     string
	Code    string
	Message string
}

// Min 最小长度
func Min(n int, message string) Rule {
	return Rule{Tag: fmt.Sprintf("min=%d", n), Code: CodeTooSmall, Message: message}
}

// Max 最大长度
func Max(n int, message string) Rule {
	return Rule{Tag: fmt.Sprintf("max=%d", n), Code: CodeTooBig, Message: message}
}

// Email 邮箱格式
func Email(message string) Rule {
	return Rule{Tag: "email", Code: CodeInvalidFormat, Message: message}
}

// URL 链接格式
func URL(message string) Rule {
	return Rule{Tag: "url", Code: CodeInvalidFormat, Message: message}
}

// Password 密码复杂度
func Password(message string) Rule {
	return Rule{Tag: "password", Code: CodeInvalidFormat, Message: message}
}

// OneOf 枚举值
// message 为空时使用默认的 "Invalid option" 信息
func OneOf(values []string, message string) Rule {
	if message == "" {
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = `"` + v + `"`
		}
		message = "Invalid option: expected one of " + strings.Join(quoted, "|")
	}
	return Rule{Tag: "oneof=" + strings.Join(values, " "), Code: CodeInvalidValue, Message: message}
}

// apply 依次执行所有规则，返回失败规则对应的 Issue
func apply(value interface{}, rules []Rule, path ...interface{}) Issues {
	var issues Issues
	for _, r := range rules {
		if err := engine.Var(value, r.Tag); err != nil {
			issues = append(issues, newIssue(r.Code, r.Message, path...))
		}
	}
	return issues
}
